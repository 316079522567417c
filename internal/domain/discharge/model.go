package discharge

import (
	"time"

	"github.com/hospadmin/hospadmin/internal/domain/admission"
	"github.com/hospadmin/hospadmin/internal/domain/doctor"
)

// Discharge closes an admission. The signing doctor may differ from the
// admitting one. DischargedAt is assigned by the store at creation.
type Discharge struct {
	ID           int64     `json:"id"`
	DischargedAt time.Time `json:"dischargedAt"`
	Amount       float64   `json:"amount"`
	Treatment    string    `json:"treatment"`
	AdmissionID  int64     `json:"admissionId"`
	DoctorID     int64     `json:"doctorId"`
	Deleted      bool      `json:"-"`
}

// Row is a discharge joined with its signing doctor.
type Row struct {
	Discharge
	Doctor doctor.Summary `json:"doctor"`
}

// FormData is everything the discharge create/edit form needs.
type FormData struct {
	Admissions []admission.Choice `json:"admissions"`
	Doctors    []doctor.Summary   `json:"doctors"`
}

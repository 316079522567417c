package admission

import (
	"time"

	"github.com/hospadmin/hospadmin/internal/domain/doctor"
	"github.com/hospadmin/hospadmin/internal/domain/patient"
)

// Admission is a patient's hospital stay. AdmittedAt is assigned by the
// store at creation.
type Admission struct {
	ID          int64     `json:"id"`
	AdmittedAt  time.Time `json:"admittedAt"`
	RoomNumber  int       `json:"roomNumber"`
	BedNumber   int       `json:"bedNumber"`
	Diagnosis   string    `json:"diagnosis"`
	Observation string    `json:"observation"`
	PatientID   int64     `json:"patientId"`
	DoctorID    int64     `json:"doctorId"`
	Deleted     bool      `json:"-"`
}

// Row is an admission joined with its patient and attending doctor.
type Row struct {
	Admission
	Patient patient.Summary `json:"patient"`
	Doctor  doctor.Summary  `json:"doctor"`
}

// Choice is the discharge form's per-admission option: an open admission
// with enough context to tell patients apart.
type Choice struct {
	ID                 int64  `json:"id"`
	RoomNumber         int    `json:"roomNumber"`
	BedNumber          int    `json:"bedNumber"`
	PatientNationalID  string `json:"patientNationalId"`
	PatientDisplayName string `json:"patientDisplayName"`
}

// FormData is everything the admission create/edit form needs. RoomNumber
// and BedNumber are set only on create, from the allocation service.
type FormData struct {
	Patients   []patient.Summary `json:"patients"`
	Doctors    []doctor.Summary  `json:"doctors"`
	RoomNumber *int              `json:"roomNumber,omitempty"`
	BedNumber  *int              `json:"bedNumber,omitempty"`
}

package doctor

import "time"

// Doctor is a physician. Specialist doctors are the only ones eligible to
// admit patients; Enabled gates selectability in every form.
type Doctor struct {
	ID              int64   `json:"id"`
	NationalID      string  `json:"nationalId"`
	GivenName       string  `json:"givenName"`
	PaternalSurname string  `json:"paternalSurname"`
	MaternalSurname *string `json:"maternalSurname,omitempty"`
	Specialist      bool    `json:"specialist"`
	Enabled         bool    `json:"enabled"`
	Deleted         bool    `json:"-"`
}

func (d *Doctor) DisplayName() string {
	name := d.GivenName + " " + d.PaternalSurname
	if d.MaternalSurname != nil && *d.MaternalSurname != "" {
		name += " " + *d.MaternalSurname
	}
	return name
}

// Summary is the choice-list row the admission and discharge forms show.
type Summary struct {
	ID          int64  `json:"id"`
	NationalID  string `json:"nationalId"`
	DisplayName string `json:"displayName"`
	Specialist  bool   `json:"specialist"`
}

// OpenAdmissionsRow is a disabled doctor together with how many of their
// admissions are still open.
type OpenAdmissionsRow struct {
	DoctorID       int64  `json:"doctorId"`
	NationalID     string `json:"nationalId"`
	DisplayName    string `json:"displayName"`
	Specialist     bool   `json:"specialist"`
	OpenAdmissions int    `json:"openAdmissions"`
}

// SubstituteDischargeRow is a discharge signed by a doctor other than the
// one who admitted the patient.
type SubstituteDischargeRow struct {
	DischargeID             int64     `json:"dischargeId"`
	DischargedAt            time.Time `json:"dischargedAt"`
	AdmissionID             int64     `json:"admissionId"`
	DischargingDoctorID     int64     `json:"dischargingDoctorId"`
	DischargingDoctorCedula string    `json:"dischargingDoctorNationalId"`
	DischargingDoctorName   string    `json:"dischargingDoctorDisplayName"`
	AdmittingDoctorID       int64     `json:"admittingDoctorId"`
	AdmittingDoctorCedula   string    `json:"admittingDoctorNationalId"`
	AdmittingDoctorName     string    `json:"admittingDoctorDisplayName"`
}

package patient

import "time"

// Patient is a person who can be admitted. MaternalSurname is optional.
type Patient struct {
	ID              int64   `json:"id"`
	NationalID      string  `json:"nationalId"`
	GivenName       string  `json:"givenName"`
	PaternalSurname string  `json:"paternalSurname"`
	MaternalSurname *string `json:"maternalSurname,omitempty"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	Address         string  `json:"address"`
	Deleted         bool    `json:"-"`
}

// DisplayName joins given name and surnames with single spaces, omitting
// the maternal surname when absent.
func (p *Patient) DisplayName() string {
	name := p.GivenName + " " + p.PaternalSurname
	if p.MaternalSurname != nil && *p.MaternalSurname != "" {
		name += " " + *p.MaternalSurname
	}
	return name
}

// Summary is the choice-list row the admission form shows per patient.
type Summary struct {
	ID          int64  `json:"id"`
	NationalID  string `json:"nationalId"`
	DisplayName string `json:"displayName"`
}

// AdmittedRow is one currently-admitted patient: a patient joined with its
// open admission.
type AdmittedRow struct {
	PatientID   int64     `json:"patientId"`
	AdmissionID int64     `json:"admissionId"`
	NationalID  string    `json:"nationalId"`
	DisplayName string    `json:"displayName"`
	AdmittedAt  time.Time `json:"admittedAt"`
}

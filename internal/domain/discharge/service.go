package discharge

import (
	"context"
	"time"

	"github.com/hospadmin/hospadmin/internal/domain/admission"
	"github.com/hospadmin/hospadmin/internal/domain/doctor"
	"github.com/hospadmin/hospadmin/internal/platform/apperr"
	"github.com/hospadmin/hospadmin/pkg/pagination"
)

// maxAmount is the inclusive ceiling for a discharge amount.
const maxAmount = 9999999999999999.99

// AdmissionChoices supplies the discharge form's admission list.
type AdmissionChoices interface {
	Choices(ctx context.Context, pinnedID int64) ([]admission.Choice, error)
}

// DoctorChoices supplies the discharge form's doctor list.
type DoctorChoices interface {
	DischargeChoices(ctx context.Context, pinnedID int64) ([]doctor.Summary, error)
}

// Counter counts created discharges. prometheus.Counter satisfies it.
type Counter interface {
	Inc()
}

type Service struct {
	repo       Repository
	admissions AdmissionChoices
	doctors    DoctorChoices
	created    Counter
}

func NewService(repo Repository, admissions AdmissionChoices, doctors DoctorChoices) *Service {
	return &Service{repo: repo, admissions: admissions, doctors: doctors}
}

// WithCreatedCounter has the service count successful creations on c.
func (s *Service) WithCreatedCounter(c Counter) *Service {
	s.created = c
	return s
}

func validate(d *Discharge) error {
	if d.AdmissionID == 0 {
		return apperr.New(apperr.Validation, "admission id is required")
	}
	if d.DoctorID == 0 {
		return apperr.New(apperr.Validation, "doctor id is required")
	}
	if d.Amount < 0 || d.Amount > maxAmount {
		return apperr.New(apperr.Validation, "amount out of range")
	}
	return nil
}

func (s *Service) List(ctx context.Context, search string, p pagination.Params) ([]Row, int, error) {
	return s.repo.List(ctx, search, p)
}

func (s *Service) InRange(ctx context.Context, from, to time.Time, search string) ([]Row, error) {
	if to.Before(from) {
		return nil, apperr.New(apperr.Validation, "date range end precedes start")
	}
	return s.repo.InRange(ctx, from, to, search)
}

func (s *Service) ByDisabledNonSpecialists(ctx context.Context, search string, p pagination.Params) ([]Row, int, error) {
	return s.repo.ByDisabledNonSpecialists(ctx, search, p)
}

// FormData assembles the discharge form's choice lists: open admissions and
// enabled doctors, each widened to keep an edited record's current choices
// selectable.
func (s *Service) FormData(ctx context.Context, id int64) (*FormData, error) {
	var pinnedAdmission, pinnedDoctor int64
	if id != 0 {
		var err error
		pinnedAdmission, pinnedDoctor, err = s.repo.PinnedRefs(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	admissions, err := s.admissions.Choices(ctx, pinnedAdmission)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.DischargeChoices(ctx, pinnedDoctor)
	if err != nil {
		return nil, err
	}
	return &FormData{Admissions: admissions, Doctors: doctors}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Discharge, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, d *Discharge) error {
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}
	if s.created != nil {
		s.created.Inc()
	}
	return nil
}

func (s *Service) Update(ctx context.Context, d *Discharge) error {
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		if exists, checkErr := s.repo.Exists(ctx, d.ID); checkErr == nil && !exists {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return apperr.New(apperr.Validation, "at least one id is required")
	}
	return s.repo.SoftDelete(ctx, ids)
}

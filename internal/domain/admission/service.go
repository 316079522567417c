package admission

import (
	"context"
	"time"

	"github.com/hospadmin/hospadmin/internal/domain/doctor"
	"github.com/hospadmin/hospadmin/internal/domain/patient"
	"github.com/hospadmin/hospadmin/internal/platform/allocation"
	"github.com/hospadmin/hospadmin/internal/platform/apperr"
	"github.com/hospadmin/hospadmin/pkg/pagination"
)

// PatientChoices supplies the admission form's patient list.
type PatientChoices interface {
	Choices(ctx context.Context, pinnedID int64) ([]patient.Summary, error)
}

// DoctorChoices supplies the admission form's doctor list.
type DoctorChoices interface {
	AdmissionChoices(ctx context.Context, pinnedID int64) ([]doctor.Summary, error)
}

// Allocator picks a free room and bed for a new admission.
type Allocator interface {
	Assign(ctx context.Context) (allocation.Assignment, error)
}

// Counter counts created admissions. prometheus.Counter satisfies it.
type Counter interface {
	Inc()
}

type Service struct {
	repo      Repository
	patients  PatientChoices
	doctors   DoctorChoices
	allocator Allocator
	created   Counter
}

func NewService(repo Repository, patients PatientChoices, doctors DoctorChoices, allocator Allocator) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors, allocator: allocator}
}

// WithCreatedCounter has the service count successful creations on c.
func (s *Service) WithCreatedCounter(c Counter) *Service {
	s.created = c
	return s
}

func validate(a *Admission) error {
	if a.Diagnosis == "" {
		return apperr.New(apperr.Validation, "diagnosis is required")
	}
	if a.PatientID == 0 {
		return apperr.New(apperr.Validation, "patient id is required")
	}
	if a.DoctorID == 0 {
		return apperr.New(apperr.Validation, "doctor id is required")
	}
	if a.RoomNumber <= 0 {
		return apperr.New(apperr.Validation, "room number must be positive")
	}
	if a.BedNumber <= 0 {
		return apperr.New(apperr.Validation, "bed number must be positive")
	}
	return nil
}

func (s *Service) List(ctx context.Context, search string, p pagination.Params) ([]Row, int, error) {
	return s.repo.List(ctx, search, p)
}

func (s *Service) Special(ctx context.Context, from, to time.Time, search string, p pagination.Params) ([]Row, int, error) {
	if to.Before(from) {
		return nil, 0, apperr.New(apperr.Validation, "date range end precedes start")
	}
	return s.repo.Special(ctx, from, to, search, p)
}

// FormData assembles the admission form's choice lists. When id is zero the
// form is for a new admission and a room/bed pair is requested from the
// allocation service; any allocation failure fails the whole call. When id
// names an existing admission its patient and doctor stay selectable even
// if no longer eligible.
func (s *Service) FormData(ctx context.Context, id int64) (*FormData, error) {
	var pinnedPatient, pinnedDoctor int64
	if id != 0 {
		var err error
		pinnedPatient, pinnedDoctor, err = s.repo.PinnedRefs(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	patients, err := s.patients.Choices(ctx, pinnedPatient)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.AdmissionChoices(ctx, pinnedDoctor)
	if err != nil {
		return nil, err
	}

	fd := &FormData{Patients: patients, Doctors: doctors}
	if id == 0 {
		asg, err := s.allocator.Assign(ctx)
		if err != nil {
			return nil, err
		}
		fd.RoomNumber = &asg.Room
		fd.BedNumber = &asg.Bed
	}
	return fd, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Admission, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, a *Admission) error {
	if err := validate(a); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}
	if s.created != nil {
		s.created.Inc()
	}
	return nil
}

func (s *Service) Update(ctx context.Context, a *Admission) error {
	if err := validate(a); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		if exists, checkErr := s.repo.Exists(ctx, a.ID); checkErr == nil && !exists {
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

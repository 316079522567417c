package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type stubRepo struct {
	doctors     map[int64]*Doctor
	substitutes []SubstituteDischargeRow
	updateErr   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{doctors: make(map[int64]*Doctor)}
}

func (s *stubRepo) List(context.Context, string, pagination.Params) ([]Doctor, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) SpecialistsWithoutAdmissions(context.Context, string, pagination.Params) ([]Doctor, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) SubstituteDischarges(_ context.Context, _ string, p pagination.Params) ([]SubstituteDischargeRow, int, error) {
	total := len(s.substitutes)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit()
	if end > total {
		end = total
	}
	return s.substitutes[start:end], total, nil
}

func (s *stubRepo) DisabledWithOpenAdmissions(context.Context, string) ([]OpenAdmissionsRow, error) {
	return nil, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*Doctor, error) {
	if d, ok := s.doctors[id]; ok && !d.Deleted {
		return d, nil
	}
	return nil, ErrNotFound
}

func (s *stubRepo) Exists(_ context.Context, id int64) (bool, error) {
	d, ok := s.doctors[id]
	return ok && !d.Deleted, nil
}

func (s *stubRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = int64(len(s.doctors) + 1)
	s.doctors[d.ID] = d
	return nil
}

func (s *stubRepo) Update(_ context.Context, d *Doctor) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if existing, ok := s.doctors[d.ID]; ok && !existing.Deleted {
		s.doctors[d.ID] = d
		return nil
	}
	return ErrNotFound
}

func (s *stubRepo) SoftDelete(_ context.Context, ids []int64) error {
	for _, id := range ids {
		if d, ok := s.doctors[id]; ok {
			d.Deleted = true
		}
	}
	return nil
}

func (s *stubRepo) AdmissionChoices(context.Context, int64) ([]Summary, error) { return nil, nil }
func (s *stubRepo) DischargeChoices(context.Context, int64) ([]Summary, error) { return nil, nil }

func TestSubstituteDischargesPassThrough(t *testing.T) {
	repo := newStubRepo()
	repo.substitutes = []SubstituteDischargeRow{
		{
			DischargeID:             4,
			DischargedAt:            time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			AdmissionID:             9,
			DischargingDoctorID:     2,
			DischargingDoctorCedula: "22222222",
			DischargingDoctorName:   "Ana Reyes",
			AdmittingDoctorID:       1,
			AdmittingDoctorCedula:   "11111111",
			AdmittingDoctorName:     "Luis Mora",
		},
		{DischargeID: 7, DischargingDoctorID: 3, AdmittingDoctorID: 1},
	}
	svc := NewService(repo)

	rows, total, err := svc.SubstituteDischarges(context.Background(), "", pagination.Params{Page: 0, PageSize: 20})
	if err != nil {
		t.Fatalf("SubstituteDischarges: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total = %d, rows = %d, want 2/2", total, len(rows))
	}
	if rows[0] != repo.substitutes[0] {
		t.Errorf("row altered in transit: %+v", rows[0])
	}
	if rows[0].DischargeID >= rows[1].DischargeID {
		t.Error("rows not ordered by discharge id")
	}
}

func TestSubstituteDischargesWindow(t *testing.T) {
	repo := newStubRepo()
	for i := int64(1); i <= 5; i++ {
		repo.substitutes = append(repo.substitutes, SubstituteDischargeRow{DischargeID: i})
	}
	svc := NewService(repo)

	rows, total, err := svc.SubstituteDischarges(context.Background(), "", pagination.Params{Page: 1, PageSize: 3})
	if err != nil {
		t.Fatalf("SubstituteDischarges: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(rows) != 2 || rows[0].DischargeID != 4 {
		t.Errorf("page 1 = %+v, want discharges 4 and 5", rows)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newStubRepo())

	err := svc.Create(context.Background(), &Doctor{GivenName: "Ana", PaternalSurname: "Reyes"})
	if apperr.KindOf(err) != apperr.Validation {
		t.Errorf("kind = %v, want Validation", apperr.KindOf(err))
	}

	err = svc.Create(context.Background(), &Doctor{NationalID: "1", GivenName: "Ana", PaternalSurname: "Reyes", Specialist: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestUpdateRecheck(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	repo.updateErr = apperr.New(apperr.Store, "write failed")
	err := svc.Update(context.Background(), &Doctor{ID: 5, NationalID: "1", GivenName: "Ana", PaternalSurname: "Reyes"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound after re-check", err)
	}
}

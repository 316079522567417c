package doctor

import (
	"context"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(d *Doctor) error {
	if d.NationalID == "" {
		return apperr.New(apperr.Validation, "national id is required")
	}
	if d.GivenName == "" {
		return apperr.New(apperr.Validation, "given name is required")
	}
	if d.PaternalSurname == "" {
		return apperr.New(apperr.Validation, "paternal surname is required")
	}
	return nil
}

func (s *Service) List(ctx context.Context, search string, p pagination.Params) ([]Doctor, int, error) {
	return s.repo.List(ctx, search, p)
}

func (s *Service) SpecialistsWithoutAdmissions(ctx context.Context, search string, p pagination.Params) ([]Doctor, int, error) {
	return s.repo.SpecialistsWithoutAdmissions(ctx, search, p)
}

func (s *Service) SubstituteDischarges(ctx context.Context, search string, p pagination.Params) ([]SubstituteDischargeRow, int, error) {
	return s.repo.SubstituteDischarges(ctx, search, p)
}

func (s *Service) DisabledWithOpenAdmissions(ctx context.Context, search string) ([]OpenAdmissionsRow, error) {
	return s.repo.DisabledWithOpenAdmissions(ctx, search)
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if err := validate(d); err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
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

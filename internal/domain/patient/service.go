package patient

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

func validate(p *Patient) error {
	if p.NationalID == "" {
		return apperr.New(apperr.Validation, "national id is required")
	}
	if p.GivenName == "" {
		return apperr.New(apperr.Validation, "given name is required")
	}
	if p.PaternalSurname == "" {
		return apperr.New(apperr.Validation, "paternal surname is required")
	}
	return nil
}

func (s *Service) List(ctx context.Context, search string, p pagination.Params) ([]Patient, int, error) {
	return s.repo.List(ctx, search, p)
}

func (s *Service) Admitted(ctx context.Context, search string, p pagination.Params) ([]AdmittedRow, int, error) {
	return s.repo.Admitted(ctx, search, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

// Update replaces the patient's fixed fields. A store failure triggers an
// existence re-check so a vanished row reports NotFound rather than a
// write error.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		if exists, checkErr := s.repo.Exists(ctx, p.ID); checkErr == nil && !exists {
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

package patient

import (
	"context"

	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type Repository interface {
	// List returns non-deleted patients matching search, ordered by id,
	// plus the filtered total.
	List(ctx context.Context, search string, p pagination.Params) ([]Patient, int, error)

	// Admitted returns patients with an open admission.
	Admitted(ctx context.Context, search string, p pagination.Params) ([]AdmittedRow, int, error)

	// Get returns the live patient with the id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Patient, error)

	// Exists reports whether a live patient row with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)

	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error

	// SoftDelete marks all ids deleted in one statement.
	SoftDelete(ctx context.Context, ids []int64) error

	// Choices lists patients selectable on the admission form: every
	// non-deleted patient, plus the pinned one even if deleted.
	Choices(ctx context.Context, pinnedID int64) ([]Summary, error)
}

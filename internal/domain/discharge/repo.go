package discharge

import (
	"context"
	"time"

	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type Repository interface {
	// List returns non-deleted discharges joined with their signing doctor.
	List(ctx context.Context, search string, p pagination.Params) ([]Row, int, error)

	// InRange returns discharges within [from, to] inclusive. Not paginated.
	InRange(ctx context.Context, from, to time.Time, search string) ([]Row, error)

	// ByDisabledNonSpecialists returns discharges whose signing doctor is
	// neither a specialist nor enabled.
	ByDisabledNonSpecialists(ctx context.Context, search string, p pagination.Params) ([]Row, int, error)

	Get(ctx context.Context, id int64) (*Discharge, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, d *Discharge) error
	Update(ctx context.Context, d *Discharge) error
	SoftDelete(ctx context.Context, ids []int64) error

	// PinnedRefs reads the admission and doctor ids off the discharge being
	// edited, ignoring the soft-delete flag.
	PinnedRefs(ctx context.Context, id int64) (admissionID, doctorID int64, err error)
}

package admission

import (
	"context"
	"time"

	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type Repository interface {
	// List returns non-deleted admissions joined with patient and doctor.
	List(ctx context.Context, search string, p pagination.Params) ([]Row, int, error)

	// Special returns admissions within [from, to], diagnosed with the
	// covid keyword, in rooms 1 through 20.
	Special(ctx context.Context, from, to time.Time, search string, p pagination.Params) ([]Row, int, error)

	Get(ctx context.Context, id int64) (*Admission, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, a *Admission) error
	Update(ctx context.Context, a *Admission) error
	SoftDelete(ctx context.Context, ids []int64) error

	// Choices lists admissions selectable on the discharge form: open
	// admissions, plus the pinned one even when closed or deleted.
	Choices(ctx context.Context, pinnedID int64) ([]Choice, error)

	// PinnedRefs reads the patient and doctor ids off the admission being
	// edited, ignoring the soft-delete flag.
	PinnedRefs(ctx context.Context, id int64) (patientID, doctorID int64, err error)
}

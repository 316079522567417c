package doctor

import (
	"context"

	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type Repository interface {
	// List returns non-deleted doctors matching search, ordered by id.
	List(ctx context.Context, search string, p pagination.Params) ([]Doctor, int, error)

	// SpecialistsWithoutAdmissions returns specialists with zero non-deleted
	// admissions attributed to them.
	SpecialistsWithoutAdmissions(ctx context.Context, search string, p pagination.Params) ([]Doctor, int, error)

	// SubstituteDischarges returns discharges signed by a doctor other than
	// the admitting one, ordered by discharge id.
	SubstituteDischarges(ctx context.Context, search string, p pagination.Params) ([]SubstituteDischargeRow, int, error)

	// DisabledWithOpenAdmissions returns every disabled doctor that still
	// has at least one open admission, with the open-admission count. Not
	// paginated.
	DisabledWithOpenAdmissions(ctx context.Context, search string) ([]OpenAdmissionsRow, error)

	Get(ctx context.Context, id int64) (*Doctor, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, d *Doctor) error
	Update(ctx context.Context, d *Doctor) error
	SoftDelete(ctx context.Context, ids []int64) error

	// AdmissionChoices lists doctors selectable on the admission form:
	// enabled specialists, plus the pinned one regardless of state.
	AdmissionChoices(ctx context.Context, pinnedID int64) ([]Summary, error)

	// DischargeChoices lists doctors selectable on the discharge form:
	// every enabled doctor, plus the pinned one regardless of state.
	DischargeChoices(ctx context.Context, pinnedID int64) ([]Summary, error)
}

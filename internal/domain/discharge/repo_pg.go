package discharge

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
	"github.com/hospadmin/hospadmin/internal/platform/query"
	"github.com/hospadmin/hospadmin/pkg/pagination"
)

type repoPG struct {
	pool          *pgxpool.Pool
	caseSensitive bool
}

func NewRepo(pool *pgxpool.Pool, caseSensitive bool) Repository {
	return &repoPG{pool: pool, caseSensitive: caseSensitive}
}

const dischargeCols = `e.id, e.discharged_at, e.amount, e.treatment, e.admission_id, e.doctor_id, e.deleted`

const joinedFrom = `discharges e JOIN doctors m ON m.id = e.doctor_id`

const rowCols = `e.id, e.discharged_at, e.amount, e.treatment, e.admission_id, e.doctor_id,
	m.id, m.national_id, `

func scanRow(rows pgx.Rows) (Row, error) {
	var row Row
	err := rows.Scan(&row.ID, &row.DischargedAt, &row.Amount, &row.Treatment,
		&row.AdmissionID, &row.DoctorID,
		&row.Doctor.ID, &row.Doctor.NationalID, &row.Doctor.DisplayName, &row.Doctor.Specialist)
	return row, err
}

func (r *repoPG) pagedRows(ctx context.Context, b *query.Builder, p pagination.Params) ([]Row, int, error) {
	b.OrderBy("e.id ASC")

	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL(joinedFrom), b.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "count discharges", err)
	}

	cols := rowCols + query.DisplayName("m") + ", m.specialist"
	sql, args := b.DataSQL(cols, joinedFrom, p.Limit(), p.Offset())
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list discharges", err)
	}
	defer rows.Close()

	results := make([]Row, 0, p.PageLen(total))
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, 0, apperr.Wrap(apperr.Store, "scan discharge row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list discharges", err)
	}
	return results, total, nil
}

func (r *repoPG) searchExprs() []string {
	return []string{"e.treatment", "m.national_id", query.DisplayName("m")}
}

func (r *repoPG) List(ctx context.Context, search string, p pagination.Params) ([]Row, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT e.deleted")
	b.Cond("NOT m.deleted")
	b.Search(search, r.searchExprs()...)
	return r.pagedRows(ctx, b, p)
}

func (r *repoPG) InRange(ctx context.Context, from, to time.Time, search string) ([]Row, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT e.deleted")
	b.Cond("NOT m.deleted")
	b.DateRange("e.discharged_at", from, to)
	b.Search(search, "m.national_id", query.DisplayName("m"))
	b.OrderBy("e.id ASC")

	cols := rowCols + query.DisplayName("m") + ", m.specialist"
	sql, args := b.AllSQL(cols, joinedFrom)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "list discharges in range", err)
	}
	defer rows.Close()

	var results []Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Store, "scan discharge row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Store, "list discharges in range", err)
	}
	return results, nil
}

func (r *repoPG) ByDisabledNonSpecialists(ctx context.Context, search string, p pagination.Params) ([]Row, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT e.deleted")
	b.Cond("NOT m.deleted")
	b.Cond("NOT m.specialist")
	b.Cond("NOT m.enabled")
	b.Search(search, "m.national_id", query.DisplayName("m"))
	return r.pagedRows(ctx, b, p)
}

func (r *repoPG) Get(ctx context.Context, id int64) (*Discharge, error) {
	var d Discharge
	err := r.pool.QueryRow(ctx,
		"SELECT "+dischargeCols+" FROM discharges e WHERE e.id = $1 AND NOT e.deleted", id,
	).Scan(&d.ID, &d.DischargedAt, &d.Amount, &d.Treatment, &d.AdmissionID, &d.DoctorID, &d.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "get discharge", err)
	}
	return &d, nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM discharges WHERE id = $1 AND NOT deleted)", id).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.Store, "check discharge existence", err)
	}
	return exists, nil
}

func (r *repoPG) Create(ctx context.Context, d *Discharge) error {
	d.Deleted = false
	err := r.pool.QueryRow(ctx, `
		INSERT INTO discharges (amount, treatment, admission_id, doctor_id, deleted)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, discharged_at`,
		d.Amount, d.Treatment, d.AdmissionID, d.DoctorID,
	).Scan(&d.ID, &d.DischargedAt)
	if err != nil {
		return apperr.Wrap(apperr.Store, "insert discharge", err)
	}
	return nil
}

func (r *repoPG) Update(ctx context.Context, d *Discharge) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE discharges
		SET amount = $1, treatment = $2, admission_id = $3, doctor_id = $4
		WHERE id = $5 AND NOT deleted`,
		d.Amount, d.Treatment, d.AdmissionID, d.DoctorID, d.ID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "update discharge", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SoftDelete(ctx context.Context, ids []int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE discharges SET deleted = TRUE WHERE id = ANY($1)", ids)
	if err != nil {
		return apperr.Wrap(apperr.Store, "soft delete discharges", err)
	}
	return nil
}

func (r *repoPG) PinnedRefs(ctx context.Context, id int64) (int64, int64, error) {
	var admissionID, doctorID int64
	err := r.pool.QueryRow(ctx,
		"SELECT admission_id, doctor_id FROM discharges WHERE id = $1", id,
	).Scan(&admissionID, &doctorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.Store, "read discharge refs", err)
	}
	return admissionID, doctorID, nil
}

package admission

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

const admissionCols = `a.id, a.admitted_at, a.room_number, a.bed_number, a.diagnosis,
	a.observation, a.patient_id, a.doctor_id, a.deleted`

const joinedFrom = `admissions a
	JOIN patients p ON p.id = a.patient_id
	JOIN doctors m ON m.id = a.doctor_id`

func (r *repoPG) pagedRows(ctx context.Context, b *query.Builder, p pagination.Params) ([]Row, int, error) {
	b.OrderBy("a.id ASC")

	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL(joinedFrom), b.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "count admissions", err)
	}

	cols := `a.id, a.admitted_at, a.room_number, a.bed_number, a.diagnosis,
		a.observation, a.patient_id, a.doctor_id,
		p.id, p.national_id, ` + query.DisplayName("p") + `,
		m.id, m.national_id, ` + query.DisplayName("m") + `, m.specialist`
	sql, args := b.DataSQL(cols, joinedFrom, p.Limit(), p.Offset())
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list admissions", err)
	}
	defer rows.Close()

	results := make([]Row, 0, p.PageLen(total))
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.AdmittedAt, &row.RoomNumber, &row.BedNumber,
			&row.Diagnosis, &row.Observation, &row.PatientID, &row.DoctorID,
			&row.Patient.ID, &row.Patient.NationalID, &row.Patient.DisplayName,
			&row.Doctor.ID, &row.Doctor.NationalID, &row.Doctor.DisplayName,
			&row.Doctor.Specialist); err != nil {
			return nil, 0, apperr.Wrap(apperr.Store, "scan admission row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list admissions", err)
	}
	return results, total, nil
}

func (r *repoPG) List(ctx context.Context, search string, p pagination.Params) ([]Row, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT a.deleted")
	b.Cond("NOT p.deleted")
	b.Cond("NOT m.deleted")
	b.Search(search,
		"a.diagnosis",
		"m.national_id", query.DisplayName("m"),
		"p.national_id", query.DisplayName("p"))
	return r.pagedRows(ctx, b, p)
}

func (r *repoPG) Special(ctx context.Context, from, to time.Time, search string, p pagination.Params) ([]Row, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT a.deleted")
	b.Cond("NOT p.deleted")
	b.Cond("NOT m.deleted")
	b.DateRange("a.admitted_at", from, to)
	b.Contains("a.diagnosis", "covid")
	b.Arg("a.room_number >= $%d", 1)
	b.Arg("a.room_number <= $%d", 20)
	b.Search(search,
		"m.national_id", query.DisplayName("m"),
		"p.national_id", query.DisplayName("p"))
	return r.pagedRows(ctx, b, p)
}

func (r *repoPG) Get(ctx context.Context, id int64) (*Admission, error) {
	var a Admission
	err := r.pool.QueryRow(ctx,
		"SELECT "+admissionCols+" FROM admissions a WHERE a.id = $1 AND NOT a.deleted", id,
	).Scan(&a.ID, &a.AdmittedAt, &a.RoomNumber, &a.BedNumber, &a.Diagnosis,
		&a.Observation, &a.PatientID, &a.DoctorID, &a.Deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "get admission", err)
	}
	return &a, nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM admissions WHERE id = $1 AND NOT deleted)", id).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.Store, "check admission existence", err)
	}
	return exists, nil
}

func (r *repoPG) Create(ctx context.Context, a *Admission) error {
	a.Deleted = false
	err := r.pool.QueryRow(ctx, `
		INSERT INTO admissions (room_number, bed_number, diagnosis, observation,
			patient_id, doctor_id, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id, admitted_at`,
		a.RoomNumber, a.BedNumber, a.Diagnosis, a.Observation, a.PatientID, a.DoctorID,
	).Scan(&a.ID, &a.AdmittedAt)
	if err != nil {
		return apperr.Wrap(apperr.Store, "insert admission", err)
	}
	return nil
}

func (r *repoPG) Update(ctx context.Context, a *Admission) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE admissions
		SET room_number = $1, bed_number = $2, diagnosis = $3, observation = $4,
			patient_id = $5, doctor_id = $6
		WHERE id = $7 AND NOT deleted`,
		a.RoomNumber, a.BedNumber, a.Diagnosis, a.Observation,
		a.PatientID, a.DoctorID, a.ID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "update admission", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SoftDelete(ctx context.Context, ids []int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE admissions SET deleted = TRUE WHERE id = ANY($1)", ids)
	if err != nil {
		return apperr.Wrap(apperr.Store, "soft delete admissions", err)
	}
	return nil
}

func (r *repoPG) Choices(ctx context.Context, pinnedID int64) ([]Choice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.room_number, a.bed_number, p.national_id, `+query.DisplayName("p")+`
		FROM admissions a
		JOIN patients p ON p.id = a.patient_id
		WHERE (NOT a.deleted
			AND NOT EXISTS (SELECT 1 FROM discharges d WHERE d.admission_id = a.id AND NOT d.deleted))
			OR a.id = $1
		ORDER BY a.id ASC`,
		pinnedID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "list admission choices", err)
	}
	defer rows.Close()

	var choices []Choice
	for rows.Next() {
		var c Choice
		if err := rows.Scan(&c.ID, &c.RoomNumber, &c.BedNumber,
			&c.PatientNationalID, &c.PatientDisplayName); err != nil {
			return nil, apperr.Wrap(apperr.Store, "scan admission choice", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Store, "list admission choices", err)
	}
	return choices, nil
}

func (r *repoPG) PinnedRefs(ctx context.Context, id int64) (int64, int64, error) {
	var patientID, doctorID int64
	err := r.pool.QueryRow(ctx,
		"SELECT patient_id, doctor_id FROM admissions WHERE id = $1", id,
	).Scan(&patientID, &doctorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.Store, "read admission refs", err)
	}
	return patientID, doctorID, nil
}

package doctor

import (
	"context"
	"errors"

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

const doctorCols = `m.id, m.national_id, m.given_name, m.paternal_surname, m.maternal_surname,
	m.specialist, m.enabled, m.deleted`

// openAdmissionsSQL counts a doctor's admissions that have no live discharge.
const openAdmissionsSQL = `(SELECT COUNT(*) FROM admissions a
	WHERE a.doctor_id = m.id AND NOT a.deleted
	AND NOT EXISTS (SELECT 1 FROM discharges d WHERE d.admission_id = a.id AND NOT d.deleted))`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.NationalID, &d.GivenName, &d.PaternalSurname, &d.MaternalSurname,
		&d.Specialist, &d.Enabled, &d.Deleted)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) pagedDoctors(ctx context.Context, b *query.Builder, p pagination.Params) ([]Doctor, int, error) {
	b.OrderBy("m.id ASC")

	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL("doctors m"), b.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "count doctors", err)
	}

	sql, args := b.DataSQL(doctorCols, "doctors m", p.Limit(), p.Offset())
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list doctors", err)
	}
	defer rows.Close()

	doctors := make([]Doctor, 0, p.PageLen(total))
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, apperr.Wrap(apperr.Store, "scan doctor", err)
		}
		doctors = append(doctors, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list doctors", err)
	}
	return doctors, total, nil
}

func (r *repoPG) List(ctx context.Context, search string, p pagination.Params) ([]Doctor, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT m.deleted")
	b.Search(search, "m.national_id", query.DisplayName("m"))
	return r.pagedDoctors(ctx, b, p)
}

func (r *repoPG) SpecialistsWithoutAdmissions(ctx context.Context, search string, p pagination.Params) ([]Doctor, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT m.deleted")
	b.Cond("m.specialist")
	b.Cond("NOT EXISTS (SELECT 1 FROM admissions a WHERE a.doctor_id = m.id AND NOT a.deleted)")
	b.Search(search, "m.national_id", query.DisplayName("m"))
	return r.pagedDoctors(ctx, b, p)
}

const substituteDischargeFrom = `discharges e
	JOIN doctors md ON md.id = e.doctor_id
	JOIN admissions a ON a.id = e.admission_id
	JOIN doctors ma ON ma.id = a.doctor_id`

// substituteDischargeQuery filters discharges to those signed by a doctor
// other than the one who admitted the patient.
func substituteDischargeQuery(caseSensitive bool, search string) *query.Builder {
	b := query.New(caseSensitive)
	b.Cond("NOT e.deleted")
	b.Cond("NOT a.deleted")
	b.Cond("NOT md.deleted")
	b.Cond("NOT ma.deleted")
	b.Cond("e.doctor_id <> a.doctor_id")
	b.Search(search,
		"md.national_id", query.DisplayName("md"),
		"ma.national_id", query.DisplayName("ma"))
	b.OrderBy("e.id ASC")
	return b
}

func (r *repoPG) SubstituteDischarges(ctx context.Context, search string, p pagination.Params) ([]SubstituteDischargeRow, int, error) {
	const from = substituteDischargeFrom

	b := substituteDischargeQuery(r.caseSensitive, search)

	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL(from), b.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "count substitute discharges", err)
	}

	cols := "e.id, e.discharged_at, a.id, md.id, md.national_id, " + query.DisplayName("md") +
		", ma.id, ma.national_id, " + query.DisplayName("ma")
	sql, args := b.DataSQL(cols, from, p.Limit(), p.Offset())
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list substitute discharges", err)
	}
	defer rows.Close()

	results := make([]SubstituteDischargeRow, 0, p.PageLen(total))
	for rows.Next() {
		var row SubstituteDischargeRow
		if err := rows.Scan(&row.DischargeID, &row.DischargedAt, &row.AdmissionID,
			&row.DischargingDoctorID, &row.DischargingDoctorCedula, &row.DischargingDoctorName,
			&row.AdmittingDoctorID, &row.AdmittingDoctorCedula, &row.AdmittingDoctorName); err != nil {
			return nil, 0, apperr.Wrap(apperr.Store, "scan substitute discharge", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list substitute discharges", err)
	}
	return results, total, nil
}

func (r *repoPG) DisabledWithOpenAdmissions(ctx context.Context, search string) ([]OpenAdmissionsRow, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT m.deleted")
	b.Cond("NOT m.enabled")
	b.Cond(openAdmissionsSQL + " > 0")
	b.Search(search, "m.national_id", query.DisplayName("m"))
	b.OrderBy("m.id ASC")

	cols := "m.id, m.national_id, " + query.DisplayName("m") + ", m.specialist, " + openAdmissionsSQL
	sql, args := b.AllSQL(cols, "doctors m")
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "list disabled doctors with open admissions", err)
	}
	defer rows.Close()

	var results []OpenAdmissionsRow
	for rows.Next() {
		var row OpenAdmissionsRow
		if err := rows.Scan(&row.DoctorID, &row.NationalID, &row.DisplayName,
			&row.Specialist, &row.OpenAdmissions); err != nil {
			return nil, apperr.Wrap(apperr.Store, "scan disabled doctor row", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Store, "list disabled doctors with open admissions", err)
	}
	return results, nil
}

func (r *repoPG) Get(ctx context.Context, id int64) (*Doctor, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+doctorCols+" FROM doctors m WHERE m.id = $1 AND NOT m.deleted", id)
	d, err := scanDoctor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "get doctor", err)
	}
	return d, nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1 AND NOT deleted)", id).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.Store, "check doctor existence", err)
	}
	return exists, nil
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.Deleted = false
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (national_id, given_name, paternal_surname, maternal_surname,
			specialist, enabled, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id`,
		d.NationalID, d.GivenName, d.PaternalSurname, d.MaternalSurname,
		d.Specialist, d.Enabled,
	).Scan(&d.ID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "insert doctor", err)
	}
	return nil
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctors
		SET national_id = $1, given_name = $2, paternal_surname = $3, maternal_surname = $4,
			specialist = $5, enabled = $6
		WHERE id = $7 AND NOT deleted`,
		d.NationalID, d.GivenName, d.PaternalSurname, d.MaternalSurname,
		d.Specialist, d.Enabled, d.ID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "update doctor", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SoftDelete(ctx context.Context, ids []int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE doctors SET deleted = TRUE WHERE id = ANY($1)", ids)
	if err != nil {
		return apperr.Wrap(apperr.Store, "soft delete doctors", err)
	}
	return nil
}

func (r *repoPG) choices(ctx context.Context, where string, pinnedID int64) ([]Summary, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT m.id, m.national_id, "+query.DisplayName("m")+", m.specialist"+
			" FROM doctors m WHERE "+where+" ORDER BY m.id ASC",
		pinnedID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "list doctor choices", err)
	}
	defer rows.Close()

	var choices []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.NationalID, &s.DisplayName, &s.Specialist); err != nil {
			return nil, apperr.Wrap(apperr.Store, "scan doctor choice", err)
		}
		choices = append(choices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Store, "list doctor choices", err)
	}
	return choices, nil
}

func (r *repoPG) AdmissionChoices(ctx context.Context, pinnedID int64) ([]Summary, error) {
	return r.choices(ctx, "(NOT m.deleted AND m.enabled AND m.specialist) OR m.id = $1", pinnedID)
}

func (r *repoPG) DischargeChoices(ctx context.Context, pinnedID int64) ([]Summary, error) {
	return r.choices(ctx, "(NOT m.deleted AND m.enabled) OR m.id = $1", pinnedID)
}

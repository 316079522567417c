package patient

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

const patientCols = `p.id, p.national_id, p.given_name, p.paternal_surname, p.maternal_surname,
	p.phone, p.email, p.address, p.deleted`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.NationalID, &p.GivenName, &p.PaternalSurname, &p.MaternalSurname,
		&p.Phone, &p.Email, &p.Address, &p.Deleted)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) List(ctx context.Context, search string, p pagination.Params) ([]Patient, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT p.deleted")
	b.Search(search, "p.national_id", query.DisplayName("p"), "p.phone", "p.email")
	b.OrderBy("p.id ASC")

	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL("patients p"), b.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "count patients", err)
	}

	sql, args := b.DataSQL(patientCols, "patients p", p.Limit(), p.Offset())
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list patients", err)
	}
	defer rows.Close()

	patients := make([]Patient, 0, p.PageLen(total))
	for rows.Next() {
		pt, err := scanPatient(rows)
		if err != nil {
			return nil, 0, apperr.Wrap(apperr.Store, "scan patient", err)
		}
		patients = append(patients, *pt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list patients", err)
	}
	return patients, total, nil
}

func (r *repoPG) Admitted(ctx context.Context, search string, p pagination.Params) ([]AdmittedRow, int, error) {
	b := query.New(r.caseSensitive)
	b.Cond("NOT p.deleted")
	b.Cond("NOT a.deleted")
	b.Cond("NOT EXISTS (SELECT 1 FROM discharges d WHERE d.admission_id = a.id AND NOT d.deleted)")
	b.Search(search, "p.national_id", query.DisplayName("p"))
	b.OrderBy("p.id ASC")

	const from = "patients p JOIN admissions a ON a.patient_id = p.id"

	var total int
	if err := r.pool.QueryRow(ctx, b.CountSQL(from), b.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "count admitted patients", err)
	}

	cols := "p.id, a.id, p.national_id, " + query.DisplayName("p") + ", a.admitted_at"
	sql, args := b.DataSQL(cols, from, p.Limit(), p.Offset())
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list admitted patients", err)
	}
	defer rows.Close()

	results := make([]AdmittedRow, 0, p.PageLen(total))
	for rows.Next() {
		var row AdmittedRow
		if err := rows.Scan(&row.PatientID, &row.AdmissionID, &row.NationalID,
			&row.DisplayName, &row.AdmittedAt); err != nil {
			return nil, 0, apperr.Wrap(apperr.Store, "scan admitted patient", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(apperr.Store, "list admitted patients", err)
	}
	return results, total, nil
}

func (r *repoPG) Get(ctx context.Context, id int64) (*Patient, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+patientCols+" FROM patients p WHERE p.id = $1 AND NOT p.deleted", id)
	p, err := scanPatient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "get patient", err)
	}
	return p, nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1 AND NOT deleted)", id).Scan(&exists)
	if err != nil {
		return false, apperr.Wrap(apperr.Store, "check patient existence", err)
	}
	return exists, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.Deleted = false
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (national_id, given_name, paternal_surname, maternal_surname,
			phone, email, address, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
		RETURNING id`,
		p.NationalID, p.GivenName, p.PaternalSurname, p.MaternalSurname,
		p.Phone, p.Email, p.Address,
	).Scan(&p.ID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "insert patient", err)
	}
	return nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET national_id = $1, given_name = $2, paternal_surname = $3, maternal_surname = $4,
			phone = $5, email = $6, address = $7
		WHERE id = $8 AND NOT deleted`,
		p.NationalID, p.GivenName, p.PaternalSurname, p.MaternalSurname,
		p.Phone, p.Email, p.Address, p.ID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "update patient", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SoftDelete(ctx context.Context, ids []int64) error {
	_, err := r.pool.Exec(ctx, "UPDATE patients SET deleted = TRUE WHERE id = ANY($1)", ids)
	if err != nil {
		return apperr.Wrap(apperr.Store, "soft delete patients", err)
	}
	return nil
}

func (r *repoPG) Choices(ctx context.Context, pinnedID int64) ([]Summary, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT p.id, p.national_id, "+query.DisplayName("p")+
			" FROM patients p WHERE NOT p.deleted OR p.id = $1 ORDER BY p.id ASC",
		pinnedID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "list patient choices", err)
	}
	defer rows.Close()

	var choices []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.NationalID, &s.DisplayName); err != nil {
			return nil, apperr.Wrap(apperr.Store, "scan patient choice", err)
		}
		choices = append(choices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Store, "list patient choices", err)
	}
	return choices, nil
}

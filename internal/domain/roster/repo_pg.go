package roster

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psychart/psychart/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, owner_id, name, ward, bed, gender, birth_year_roc,
	admission_date, background, clinical_focus, diagnosis, mse, pe, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var admission, diagnosis, mse, pe []byte
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Ward, &p.Bed, &p.Gender, &p.BirthYearROC,
		&admission, &p.Background, &p.ClinicalFocus, &diagnosis, &mse, &pe, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalSection(admission, &p.Admission); err != nil {
		return nil, fmt.Errorf("decode admission_date: %w", err)
	}
	if err := unmarshalSection(diagnosis, &p.Diagnosis); err != nil {
		return nil, fmt.Errorf("decode diagnosis: %w", err)
	}
	if err := unmarshalSection(mse, &p.MSE); err != nil {
		return nil, fmt.Errorf("decode mse: %w", err)
	}
	if err := unmarshalSection(pe, &p.PE); err != nil {
		return nil, fmt.Errorf("decode pe: %w", err)
	}
	p.Normalize()
	return &p, nil
}

func unmarshalSection[T any](raw []byte, dst **T) error {
	if len(raw) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func marshalSection[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	admission, err := marshalSection(p.Admission)
	if err != nil {
		return err
	}
	diagnosis, err := marshalSection(p.Diagnosis)
	if err != nil {
		return err
	}
	mse, err := marshalSection(p.MSE)
	if err != nil {
		return err
	}
	pe, err := marshalSection(p.PE)
	if err != nil {
		return err
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (id, owner_id, name, ward, bed, gender, birth_year_roc,
			admission_date, background, clinical_focus, diagnosis, mse, pe)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at`,
		p.ID, p.OwnerID, p.Name, p.Ward, p.Bed, p.Gender, p.BirthYearROC,
		admission, p.Background, p.ClinicalFocus, diagnosis, mse, pe).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	admission, err := marshalSection(p.Admission)
	if err != nil {
		return err
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET name=$3, ward=$4, bed=$5, gender=$6, birth_year_roc=$7,
			admission_date=$8, background=$9, clinical_focus=$10, updated_at=NOW()
		WHERE id = $1 AND owner_id = $2`,
		p.ID, p.OwnerID, p.Name, p.Ward, p.Bed, p.Gender, p.BirthYearROC,
		admission, p.Background, p.ClinicalFocus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) updateSection(ctx context.Context, column string, p *Patient, raw []byte) error {
	tag, err := r.conn(ctx).Exec(ctx,
		fmt.Sprintf(`UPDATE patients SET %s=$3, updated_at=NOW() WHERE id = $1 AND owner_id = $2`, column),
		p.ID, p.OwnerID, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) UpdateDiagnosis(ctx context.Context, p *Patient) error {
	raw, err := marshalSection(p.Diagnosis)
	if err != nil {
		return err
	}
	return r.updateSection(ctx, "diagnosis", p, raw)
}

func (r *repoPG) UpdateMSE(ctx context.Context, p *Patient) error {
	raw, err := marshalSection(p.MSE)
	if err != nil {
		return err
	}
	return r.updateSection(ctx, "mse", p, raw)
}

func (r *repoPG) UpdatePE(ctx context.Context, p *Patient) error {
	raw, err := marshalSection(p.PE)
	if err != nil {
		return err
	}
	return r.updateSection(ctx, "pe", p, raw)
}

func (r *repoPG) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID string) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

package records

import (
	"context"

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

func (r *repoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_records (id, patient_id, owner_id, type, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		rec.ID, rec.PatientID, rec.OwnerID, string(rec.Type), rec.Content).Scan(&rec.CreatedAt)
}

func (r *repoPG) ListByPatient(ctx context.Context, ownerID string, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM medical_records WHERE patient_id = $1 AND owner_id = $2`,
		patientID, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, owner_id, type, content, created_at
		FROM medical_records
		WHERE patient_id = $1 AND owner_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		patientID, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*MedicalRecord
	for rows.Next() {
		var rec MedicalRecord
		var t string
		if err := rows.Scan(&rec.ID, &rec.PatientID, &rec.OwnerID, &t, &rec.Content, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		rec.Type = NoteType(t)
		items = append(items, &rec)
	}
	return items, total, rows.Err()
}

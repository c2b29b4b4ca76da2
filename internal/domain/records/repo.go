package records

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the append-only note log. Notes are never edited or
// removed once written.
type Repository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	ListByPatient(ctx context.Context, ownerID string, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error)
}

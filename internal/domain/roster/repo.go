package roster

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists patients. Charts are scoped to the clinician who
// created them; every method takes the owning user's id.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	UpdateDiagnosis(ctx context.Context, p *Patient) error
	UpdateMSE(ctx context.Context, p *Patient) error
	UpdatePE(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Patient, error)
}

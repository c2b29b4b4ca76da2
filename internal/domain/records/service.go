package records

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/psychart/psychart/internal/domain/roster"
)

// Generator produces note text from a prompt. Failures surface as
// fallback text rather than errors so drafting never blocks charting.
type Generator interface {
	GenerateOrFallback(ctx context.Context, prompt, systemInstruction string) string
}

// PatientSource resolves the chart a note is drafted against.
type PatientSource interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*roster.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientSource
	gen      Generator
}

func NewService(repo Repository, patients PatientSource, gen Generator) *Service {
	return &Service{repo: repo, patients: patients, gen: gen}
}

// Draft builds the prompt for the patient's chart, runs the generator,
// and appends the result to the note log. The stored content is
// whatever came back, fallback text included, so the clinician always
// has something to review and rewrite.
func (s *Service) Draft(ctx context.Context, ownerID string, patientID uuid.UUID, t NoteType, extraInfo string) (*MedicalRecord, error) {
	if !ValidNoteType(t) {
		return nil, fmt.Errorf("invalid note type: %s", t)
	}

	p, err := s.patients.Get(ctx, ownerID, patientID)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(p, t, extraInfo)
	content := s.gen.GenerateOrFallback(ctx, prompt, SystemInstruction)

	rec := &MedicalRecord{
		PatientID: patientID,
		OwnerID:   ownerID,
		Type:      t,
		Content:   content,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListByPatient(ctx context.Context, ownerID string, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.repo.ListByPatient(ctx, ownerID, patientID, limit, offset)
}

package roster

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// deleteIntentTTL bounds how long a requested delete stays confirmable.
const deleteIntentTTL = 5 * time.Minute

var ErrDeleteNotConfirmed = fmt.Errorf("delete not confirmed")

type deleteIntent struct {
	token     string
	ownerID   string
	expiresAt time.Time
}

type Service struct {
	repo Repository

	mu      sync.Mutex
	intents map[uuid.UUID]deleteIntent

	collator *collate.Collator
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		intents:  make(map[uuid.UUID]deleteIntent),
		collator: collate.New(language.MustParse("zh-Hant-TW")),
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.OwnerID == "" {
		return fmt.Errorf("owner_id is required")
	}
	p.Normalize()
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// Update replaces the demographic fields of a chart. Assessment
// sections have their own update paths and are left untouched.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	p.Admission.Clamp()
	return s.repo.Update(ctx, p)
}

func (s *Service) UpdateDiagnosis(ctx context.Context, ownerID string, id uuid.UUID, d *Patient) error {
	d.ID = id
	d.OwnerID = ownerID
	d.Diagnosis.Normalize()
	return s.repo.UpdateDiagnosis(ctx, d)
}

func (s *Service) UpdateMSE(ctx context.Context, ownerID string, id uuid.UUID, p *Patient) error {
	p.ID = id
	p.OwnerID = ownerID
	p.MSE.Normalize()
	return s.repo.UpdateMSE(ctx, p)
}

func (s *Service) UpdatePE(ctx context.Context, ownerID string, id uuid.UUID, p *Patient) error {
	p.ID = id
	p.OwnerID = ownerID
	p.PE.Normalize()
	return s.repo.UpdatePE(ctx, p)
}

// List returns the owner's charts sorted by ward, then bed, then name,
// using Traditional Chinese collation.
func (s *Service) List(ctx context.Context, ownerID string) ([]*Patient, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.SortPatients(items)
	return items, nil
}

// SortPatients orders charts by ward, bed, name. A key is only
// compared when both sides carry it; a chart missing its ward or bed
// falls through to the next key.
func (s *Service) SortPatients(items []*Patient) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Ward != "" && b.Ward != "" {
			if c := s.collator.CompareString(a.Ward, b.Ward); c != 0 {
				return c < 0
			}
		}
		if a.Bed != "" && b.Bed != "" {
			if c := s.collator.CompareString(a.Bed, b.Bed); c != 0 {
				return c < 0
			}
		}
		return s.collator.CompareString(a.Name, b.Name) < 0
	})
}

// RequestDelete records an intent to delete a chart and returns the
// confirmation token. The chart is untouched until the intent is
// confirmed.
func (s *Service) RequestDelete(ctx context.Context, ownerID string, id uuid.UUID) (string, error) {
	if _, err := s.repo.GetByID(ctx, ownerID, id); err != nil {
		return "", err
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.intents[id] = deleteIntent{
		token:     token,
		ownerID:   ownerID,
		expiresAt: s.now().Add(deleteIntentTTL),
	}
	s.mu.Unlock()

	return token, nil
}

// ConfirmDelete deletes a chart if the token matches a live intent.
func (s *Service) ConfirmDelete(ctx context.Context, ownerID string, id uuid.UUID, token string) error {
	s.mu.Lock()
	intent, ok := s.intents[id]
	if ok {
		delete(s.intents, id)
	}
	s.mu.Unlock()

	if !ok || intent.ownerID != ownerID || intent.token != token {
		return ErrDeleteNotConfirmed
	}
	if s.now().After(intent.expiresAt) {
		return ErrDeleteNotConfirmed
	}
	return s.repo.Delete(ctx, ownerID, id)
}

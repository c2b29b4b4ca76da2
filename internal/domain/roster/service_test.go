package roster

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/psychart/psychart/internal/domain/assessment"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, ownerID string, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok || p.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	stored, ok := m.patients[p.ID]
	if !ok || stored.OwnerID != p.OwnerID {
		return pgx.ErrNoRows
	}
	stored.Name = p.Name
	stored.Ward = p.Ward
	stored.Bed = p.Bed
	stored.Gender = p.Gender
	stored.BirthYearROC = p.BirthYearROC
	stored.Admission = p.Admission
	stored.Background = p.Background
	stored.ClinicalFocus = p.ClinicalFocus
	return nil
}

func (m *mockRepo) UpdateDiagnosis(_ context.Context, p *Patient) error {
	stored, ok := m.patients[p.ID]
	if !ok || stored.OwnerID != p.OwnerID {
		return pgx.ErrNoRows
	}
	stored.Diagnosis = p.Diagnosis
	return nil
}

func (m *mockRepo) UpdateMSE(_ context.Context, p *Patient) error {
	stored, ok := m.patients[p.ID]
	if !ok || stored.OwnerID != p.OwnerID {
		return pgx.ErrNoRows
	}
	stored.MSE = p.MSE
	return nil
}

func (m *mockRepo) UpdatePE(_ context.Context, p *Patient) error {
	stored, ok := m.patients[p.ID]
	if !ok || stored.OwnerID != p.OwnerID {
		return pgx.ErrNoRows
	}
	stored.PE = p.PE
	return nil
}

func (m *mockRepo) Delete(_ context.Context, ownerID string, id uuid.UUID) error {
	p, ok := m.patients[id]
	if !ok || p.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) ListByOwner(_ context.Context, ownerID string) ([]*Patient, error) {
	var items []*Patient
	for _, p := range m.patients {
		if p.OwnerID == ownerID {
			cp := *p
			items = append(items, &cp)
		}
	}
	return items, nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.Create(context.Background(), &Patient{OwnerID: "u1"})
	if err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCreateClampsAdmissionDate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p := &Patient{
		OwnerID:   "u1",
		Name:      "王小明",
		Admission: &AdmissionDate{Year: 113, Month: 15, Day: 40},
	}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if p.Admission.Month != 12 || p.Admission.Day != 31 {
		t.Errorf("admission date not clamped: %+v", p.Admission)
	}
}

func TestListSortsByWardBedName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	add := func(name, ward, bed string) {
		if err := svc.Create(ctx, &Patient{OwnerID: "u1", Name: name, Ward: ward, Bed: bed}); err != nil {
			t.Fatal(err)
		}
	}
	add("丙", "B棟", "02")
	add("乙", "A棟", "10")
	add("甲", "A棟", "02")
	add("丁", "A棟", "02")

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 patients, got %d", len(items))
	}
	// A棟/02 patients sorted by name, then A棟/10, then B棟.
	wards := []string{items[0].Ward, items[1].Ward, items[2].Ward, items[3].Ward}
	if wards[0] != "A棟" || wards[1] != "A棟" || wards[2] != "A棟" || wards[3] != "B棟" {
		t.Errorf("unexpected ward order: %v", wards)
	}
	if items[2].Bed != "10" {
		t.Errorf("expected bed 10 last within A棟, got %s", items[2].Bed)
	}
	if items[0].Bed != "02" || items[1].Bed != "02" {
		t.Errorf("expected bed 02 first within A棟: %s, %s", items[0].Bed, items[1].Bed)
	}
}

func TestSortMissingWardFallsThroughToBed(t *testing.T) {
	svc := NewService(newMockRepo())

	items := []*Patient{
		{Name: "乙", Ward: "", Bed: "9"},
		{Name: "甲", Ward: "A棟", Bed: "1"},
	}
	svc.SortPatients(items)
	if items[0].Name != "甲" {
		t.Errorf("ward-less chart must fall through to bed order, got %s first", items[0].Name)
	}

	// Both keys missing on one side, ordering falls back to name.
	items = []*Patient{
		{Name: "丙"},
		{Name: "乙", Ward: "Z棟", Bed: "99"},
	}
	svc.SortPatients(items)
	if items[0].Name != "乙" {
		t.Errorf("expected name order when ward and bed cannot be compared, got %s first", items[0].Name)
	}
}

func TestListScopedToOwner(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Create(ctx, &Patient{OwnerID: "u1", Name: "甲"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(ctx, &Patient{OwnerID: "u2", Name: "乙"}); err != nil {
		t.Fatal(err)
	}

	items, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "甲" {
		t.Errorf("expected only u1's patient, got %+v", items)
	}
}

func TestUpdateDiagnosisNormalizes(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Patient{OwnerID: "u1", Name: "王小明"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	update := &Patient{Diagnosis: &assessment.Diagnosis{Psychiatric: []string{"思覺失調症"}}}
	if err := svc.UpdateDiagnosis(ctx, "u1", p.ID, update); err != nil {
		t.Fatal(err)
	}

	stored, err := svc.Get(ctx, "u1", p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Diagnosis == nil || len(stored.Diagnosis.Psychiatric) != 1 {
		t.Errorf("diagnosis not stored: %+v", stored.Diagnosis)
	}
	if stored.Diagnosis.Medical == nil {
		t.Error("normalize should fill the medical list")
	}
}

func TestTwoPhaseDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Patient{OwnerID: "u1", Name: "王小明"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	// Confirm without an intent fails and leaves the chart.
	if err := svc.ConfirmDelete(ctx, "u1", p.ID, "guess"); err != ErrDeleteNotConfirmed {
		t.Errorf("expected ErrDeleteNotConfirmed, got %v", err)
	}
	if _, err := svc.Get(ctx, "u1", p.ID); err != nil {
		t.Error("chart must survive an unconfirmed delete")
	}

	token, err := svc.RequestDelete(ctx, "u1", p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("expected confirmation token")
	}

	// Wrong token consumes the intent.
	if err := svc.ConfirmDelete(ctx, "u1", p.ID, "wrong"); err != ErrDeleteNotConfirmed {
		t.Errorf("expected ErrDeleteNotConfirmed for wrong token, got %v", err)
	}

	token, err = svc.RequestDelete(ctx, "u1", p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.ConfirmDelete(ctx, "u1", p.ID, token); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, "u1", p.ID); err == nil {
		t.Error("chart should be gone after confirmed delete")
	}
}

func TestDeleteIntentExpires(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Patient{OwnerID: "u1", Name: "王小明"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatal(err)
	}

	token, err := svc.RequestDelete(ctx, "u1", p.ID)
	if err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return time.Now().Add(deleteIntentTTL + time.Second) }
	if err := svc.ConfirmDelete(ctx, "u1", p.ID, token); err != ErrDeleteNotConfirmed {
		t.Errorf("expected expired intent to be rejected, got %v", err)
	}
}

func TestRequestDeleteUnknownPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.RequestDelete(context.Background(), "u1", uuid.New()); err == nil {
		t.Error("expected error for unknown patient")
	}
}

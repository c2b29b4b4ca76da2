// Package roster manages the patient list: admission data, ward and
// bed placement, and the structured assessment sections attached to
// each chart.
package roster

import (
	"time"

	"github.com/google/uuid"

	"github.com/psychart/psychart/internal/domain/assessment"
)

// AdmissionDate is a Republic of China calendar date. Components are
// clamped to plausible ranges rather than validated against a real
// calendar, matching how admission dates were recorded historically.
type AdmissionDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Clamp forces each component into range: year >= 1, month 1..12,
// day 1..31.
func (d *AdmissionDate) Clamp() {
	if d == nil {
		return
	}
	if d.Year < 1 {
		d.Year = 1
	}
	if d.Month < 1 {
		d.Month = 1
	}
	if d.Month > 12 {
		d.Month = 12
	}
	if d.Day < 1 {
		d.Day = 1
	}
	if d.Day > 31 {
		d.Day = 31
	}
}

type Patient struct {
	ID           uuid.UUID             `json:"id"`
	OwnerID      string                `json:"owner_id"`
	Name         string                `json:"name"`
	Ward         string                `json:"ward"`
	Bed          string                `json:"bed"`
	Gender       string                `json:"gender"`
	BirthYearROC int                   `json:"birth_year_roc"`
	Admission    *AdmissionDate        `json:"admission_date,omitempty"`
	Background   string                `json:"background"`
	ClinicalFocus string               `json:"clinical_focus"`
	Diagnosis    *assessment.Diagnosis `json:"diagnosis,omitempty"`
	MSE          *assessment.MSE       `json:"mse,omitempty"`
	PE           *assessment.PE        `json:"pe,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// MaskedName returns the display name with the second-to-last
// character replaced by a full-width circle. Single-character names
// are returned unchanged.
func (p *Patient) MaskedName() string {
	return MaskName(p.Name)
}

func MaskName(name string) string {
	runes := []rune(name)
	if len(runes) < 2 {
		return name
	}
	runes[len(runes)-2] = 'Ｏ'
	return string(runes)
}

// Age returns the patient's age in ROC-calendar years, or nil when no
// birth year is recorded so the caller can render it as not available.
func (p *Patient) Age(now time.Time) *int {
	if p.BirthYearROC <= 0 {
		return nil
	}
	age := now.Year() - 1911 - p.BirthYearROC
	if age < 0 {
		age = 0
	}
	return &age
}

// Normalize clamps the admission date and normalizes the assessment
// sections so legacy charts load with consistent shapes.
func (p *Patient) Normalize() {
	p.Admission.Clamp()
	p.Diagnosis.Normalize()
	p.MSE.Normalize()
	p.PE.Normalize()
}

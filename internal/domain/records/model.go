// Package records stores the append-only medical note log and drives
// note drafting through the generative backend.
package records

import (
	"time"

	"github.com/google/uuid"
)

// NoteType names a note template. The values are the display strings
// the charting screens have always used, so they travel unchanged
// through the API and the stored records.
type NoteType string

const (
	ProgressNote             NoteType = "病程紀錄 (Progress Note)"
	PhysioPsychoExam         NoteType = "生理心理功能檢查紀錄"
	Psychotherapy            NoteType = "特殊心理治療紀錄"
	SupportivePsychotherapy  NoteType = "支持性心理治療紀錄"
	SpecialHandling          NoteType = "精神科住院病人特別處理紀錄"
	WeeklySummary            NoteType = "Weekly Summary"
	MonthlySummary           NoteType = "Monthly Summary"
	OffDutyNote              NoteType = "Off Duty note"
	DischargeNote            NoteType = "Discharge Note"
)

// NoteTypes lists every known note type in menu order.
var NoteTypes = []NoteType{
	ProgressNote,
	PhysioPsychoExam,
	Psychotherapy,
	SupportivePsychotherapy,
	SpecialHandling,
	WeeklySummary,
	MonthlySummary,
	OffDutyNote,
	DischargeNote,
}

func ValidNoteType(t NoteType) bool {
	for _, known := range NoteTypes {
		if t == known {
			return true
		}
	}
	return false
}

type MedicalRecord struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	OwnerID   string    `json:"owner_id"`
	Type      NoteType  `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

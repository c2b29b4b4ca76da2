// Package assessment defines the structured clinical records a patient
// chart carries: diagnosis checklists, the mental status exam, and the
// physical/neurological exam. The JSON shape matches the legacy chart
// documents so existing records load unchanged.
package assessment

import "github.com/psychart/psychart/internal/forms"

// Diagnosis holds the two independent diagnosis checklists. Each list
// may contain the "others" sentinel, which activates the attached
// free-text value.
type Diagnosis struct {
	Psychiatric      forms.List `json:"psychiatric"`
	PsychiatricOther string     `json:"psychiatricOther,omitempty"`
	Medical          forms.List `json:"medical"`
	MedicalOther     string     `json:"medicalOther,omitempty"`
}

// Orientation records which of the three orientation spheres are
// abnormal. The rendering order time, place, person is fixed.
type Orientation struct {
	Time   bool `json:"time"`
	Place  bool `json:"place"`
	Person bool `json:"person"`
}

type Appearance struct {
	Cleanliness      string     `json:"cleanliness"`
	CleanlinessOther string     `json:"cleanlinessOther,omitempty"`
	Cooperation      forms.List `json:"cooperation"`
	CooperationOther string     `json:"cooperationOther,omitempty"`
	Psychomotor      forms.List `json:"psychomotor"`
	Other            string     `json:"other"`
}

type Speech struct {
	Speed       string     `json:"speed"`
	SpeedOther  string     `json:"speedOther,omitempty"`
	Volume      string     `json:"volume"`
	VolumeOther string     `json:"volumeOther,omitempty"`
	Coherence   forms.List `json:"coherence"`
	Other       string     `json:"other"`
}

type Mood struct {
	Subjective     forms.List `json:"subjective"`
	Other          string     `json:"other"`
	Objective      forms.List `json:"objective"`
	ObjectiveOther string     `json:"objectiveOther,omitempty"`
}

type Thought struct {
	Process      forms.List `json:"process"`
	ProcessOther string     `json:"processOther,omitempty"`
	Content      forms.List `json:"content"`
	Other        string     `json:"other"`
}

type Perception struct {
	Hallucinations forms.List `json:"hallucinations"`
	Other          string     `json:"other"`
}

type Cognition struct {
	Orientation    Orientation `json:"orientation"`
	Attention      string      `json:"attention"`
	AttentionOther string      `json:"attentionOther,omitempty"`
	Memory         forms.List  `json:"memory"`
	Abstraction    forms.List  `json:"abstraction"`
	Other          string      `json:"other"`
}

// MSE is the mental status exam: seven independently-evaluated axes
// plus the risk-flag set.
type MSE struct {
	Appearance Appearance `json:"appearance"`
	Speech     Speech     `json:"speech"`
	Mood       Mood       `json:"mood"`
	Thought    Thought    `json:"thought"`
	Perception Perception `json:"perception"`
	Cognition  Cognition  `json:"cognition"`
	Insight    string     `json:"insight"`
	Risk       forms.List `json:"risk"`
	RiskOther  string     `json:"riskOther,omitempty"`
}

// PE is the physical/neurological exam: eight body-system axes, each a
// multi-select set with an optional free-text field.
type PE struct {
	Conscious        forms.List `json:"conscious"`
	ConsciousOther   string     `json:"consciousOther,omitempty"`
	HEENT            forms.List `json:"heent"`
	HEENTOther       string     `json:"heentOther,omitempty"`
	Chest            forms.List `json:"chest"`
	ChestOther       string     `json:"chestOther,omitempty"`
	Heart            forms.List `json:"heart"`
	HeartOther       string     `json:"heartOther,omitempty"`
	Abdominal        forms.List `json:"abdominal"`
	AbdominalOther   string     `json:"abdominalOther,omitempty"`
	Extremities      forms.List `json:"extremities"`
	ExtremitiesOther string     `json:"extremitiesOther,omitempty"`
	Skin             forms.List `json:"skin"`
	SkinOther        string     `json:"skinOther,omitempty"`
	NE               forms.List `json:"ne"`
	NEOther          string     `json:"neOther,omitempty"`
}

// DefaultDiagnosis returns a fully-populated empty record so nested
// field access never needs a nil check.
func DefaultDiagnosis() *Diagnosis {
	return &Diagnosis{Psychiatric: forms.List{}, Medical: forms.List{}}
}

// DefaultMSE returns the empty skeleton: every axis present, every
// list empty, every string empty.
func DefaultMSE() *MSE {
	return &MSE{
		Appearance: Appearance{Cooperation: forms.List{}, Psychomotor: forms.List{}},
		Speech:     Speech{Coherence: forms.List{}},
		Mood:       Mood{Subjective: forms.List{}, Objective: forms.List{}},
		Thought:    Thought{Process: forms.List{}, Content: forms.List{}},
		Perception: Perception{Hallucinations: forms.List{}},
		Cognition:  Cognition{Memory: forms.List{}, Abstraction: forms.List{}},
		Risk:       forms.List{},
	}
}

// DefaultPE returns the empty skeleton for the physical exam.
func DefaultPE() *PE {
	return &PE{
		Conscious: forms.List{}, HEENT: forms.List{}, Chest: forms.List{},
		Heart: forms.List{}, Abdominal: forms.List{}, Extremities: forms.List{},
		Skin: forms.List{}, NE: forms.List{},
	}
}

// Normalize fills nil list fields in place. Decoding already coerces
// legacy scalar shapes (forms.List), so this covers records built
// programmatically rather than decoded.
func (d *Diagnosis) Normalize() {
	if d == nil {
		return
	}
	d.Psychiatric = forms.NormalizeList(d.Psychiatric)
	d.Medical = forms.NormalizeList(d.Medical)
}

func (m *MSE) Normalize() {
	if m == nil {
		return
	}
	m.Appearance.Cooperation = forms.NormalizeList(m.Appearance.Cooperation)
	m.Appearance.Psychomotor = forms.NormalizeList(m.Appearance.Psychomotor)
	m.Speech.Coherence = forms.NormalizeList(m.Speech.Coherence)
	m.Mood.Subjective = forms.NormalizeList(m.Mood.Subjective)
	m.Mood.Objective = forms.NormalizeList(m.Mood.Objective)
	m.Thought.Process = forms.NormalizeList(m.Thought.Process)
	m.Thought.Content = forms.NormalizeList(m.Thought.Content)
	m.Perception.Hallucinations = forms.NormalizeList(m.Perception.Hallucinations)
	m.Cognition.Memory = forms.NormalizeList(m.Cognition.Memory)
	m.Cognition.Abstraction = forms.NormalizeList(m.Cognition.Abstraction)
	m.Risk = forms.NormalizeList(m.Risk)
}

func (p *PE) Normalize() {
	if p == nil {
		return
	}
	p.Conscious = forms.NormalizeList(p.Conscious)
	p.HEENT = forms.NormalizeList(p.HEENT)
	p.Chest = forms.NormalizeList(p.Chest)
	p.Heart = forms.NormalizeList(p.Heart)
	p.Abdominal = forms.NormalizeList(p.Abdominal)
	p.Extremities = forms.NormalizeList(p.Extremities)
	p.Skin = forms.NormalizeList(p.Skin)
	p.NE = forms.NormalizeList(p.NE)
}

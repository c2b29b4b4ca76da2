package records

import (
	"fmt"
	"strings"

	"github.com/psychart/psychart/internal/domain/assessment"
	"github.com/psychart/psychart/internal/domain/roster"
	"github.com/psychart/psychart/internal/forms"
)

// Markers emitted when an assessment section has never been filled in.
const (
	MSENotAssessed = "尚未進行 MSE 評估。"
	PENotAssessed  = "尚未進行 PE & NE 評估。"
)

// SystemInstruction frames every generation request. Only the progress
// note template may use SOAP section labels; the model is reminded of
// that here and again in the per-type instructions.
const SystemInstruction = `你是一個在嘉南療養院服務的資深醫療AI助手。
【核心規範】
1. 格式絕對隔離：只有病程紀錄 (Progress Note) 可使用 SOAP 標籤，其餘一律禁止。
2. 禁止符號：輸出內容中絕對不得包含雙星號粗體語法。
3. 專業度：維持資深精神科醫師/護理師口吻。`

// diagnosisLine renders a diagnosis checklist for the prompt.
func diagnosisLine(list []string, other string) string {
	s := forms.DisplayValue(list, other, "其他診斷")
	if s == "" {
		return "無特定診斷"
	}
	return s
}

// mseList renders a multi-select MSE field. An untouched field reads
// as empty, matching how the charts have always serialized.
func mseList(values []string, other string) string {
	return forms.DisplayValue(values, other, "其他")
}

// mseScalar renders a single-select MSE field; unset reads as 無.
func mseScalar(value, other string) string {
	if value == "" {
		return "無"
	}
	return forms.DisplayScalar(value, other, "其他")
}

func orientationStatus(abnormal bool) string {
	if abnormal {
		return "異常"
	}
	return "正常"
}

// FormatMSE renders the mental status exam as the line-per-axis block
// embedded in generation prompts. The output is deterministic for a
// given exam.
func FormatMSE(m *assessment.MSE) string {
	if m == nil {
		return MSENotAssessed
	}

	var sections []string

	sections = append(sections, fmt.Sprintf("[外觀態度] 整潔: %s, 合作: %s, 精神運動: %s",
		mseScalar(m.Appearance.Cleanliness, m.Appearance.CleanlinessOther),
		mseList(m.Appearance.Cooperation, m.Appearance.CooperationOther),
		mseList(m.Appearance.Psychomotor, m.Appearance.Other)))

	sections = append(sections, fmt.Sprintf("[言語] 速度: %s, 音量: %s, 連貫性: %s",
		mseScalar(m.Speech.Speed, m.Speech.SpeedOther),
		mseScalar(m.Speech.Volume, m.Speech.VolumeOther),
		mseList(m.Speech.Coherence, m.Speech.Other)))

	sections = append(sections, fmt.Sprintf("[情緒情感] 主觀: %s, 客觀: %s",
		mseList(m.Mood.Subjective, m.Mood.Other),
		mseList(m.Mood.Objective, m.Mood.ObjectiveOther)))

	sections = append(sections, fmt.Sprintf("[思維] 過程 (邏輯): %s, 內容 (妄想): %s",
		mseList(m.Thought.Process, m.Thought.ProcessOther),
		mseList(m.Thought.Content, m.Thought.Other)))

	sections = append(sections, fmt.Sprintf("[知覺] 幻覺: %s",
		mseList(m.Perception.Hallucinations, m.Perception.Other)))

	sections = append(sections, fmt.Sprintf("認知功能: 定向感(時/地/人): %s/%s/%s, 注意力: %s, 記憶力: %s, 抽象思考: %s",
		orientationStatus(m.Cognition.Orientation.Time),
		orientationStatus(m.Cognition.Orientation.Place),
		orientationStatus(m.Cognition.Orientation.Person),
		mseScalar(m.Cognition.Attention, m.Cognition.AttentionOther),
		strings.Join(m.Cognition.Memory, ", "),
		mseList(m.Cognition.Abstraction, m.Cognition.Other)))

	if m.Insight != "" {
		sections = append(sections, fmt.Sprintf("[病識感] %s", m.Insight))
	}

	risk := fmt.Sprintf("[風險評估] %s", strings.Join(m.Risk, ", "))
	if m.RiskOther != "" {
		risk += ", 其他風險: " + m.RiskOther
	}
	sections = append(sections, risk)

	return strings.Join(sections, "\n")
}

// peLine renders a PE body-system field; nothing selected means no
// particular abnormality.
func peLine(values []string, other string) string {
	s := forms.DisplayValue(values, other, "其他")
	if s == "" {
		return "無特定異常"
	}
	return s
}

// FormatPE renders the physical and neurological exam block.
func FormatPE(p *assessment.PE) string {
	if p == nil {
		return PENotAssessed
	}

	lines := []string{
		fmt.Sprintf("[意識狀態] %s", peLine(p.Conscious, p.ConsciousOther)),
		fmt.Sprintf("[頭頸部] %s", peLine(p.HEENT, p.HEENTOther)),
		fmt.Sprintf("[胸部] %s", peLine(p.Chest, p.ChestOther)),
		fmt.Sprintf("[心臟] %s", peLine(p.Heart, p.HeartOther)),
		fmt.Sprintf("[腹部] %s", peLine(p.Abdominal, p.AbdominalOther)),
		fmt.Sprintf("[四肢] %s", peLine(p.Extremities, p.ExtremitiesOther)),
		fmt.Sprintf("[皮膚] %s", peLine(p.Skin, p.SkinOther)),
		fmt.Sprintf("[神經學] %s", peLine(p.NE, p.NEOther)),
	}
	return strings.Join(lines, "\n")
}

// admissionPhrase renders the ROC-calendar admission date, or "" when
// no date is recorded.
func admissionPhrase(d *roster.AdmissionDate) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("民國 %d 年 %d 月 %d 日", d.Year, d.Month, d.Day)
}

// formatInstruction returns the per-type layout rules appended to the
// prompt. Only the progress note is allowed SOAP section labels.
func formatInstruction(t NoteType, admission string) string {
	switch t {
	case ProgressNote:
		return strings.Join([]string{
			"1. 開頭第一行必須是「病程紀錄 (Progress Note)」。",
			"2. 採用「SOAP 格式」。",
			"3. S (Subjective): 僅記錄個案主訴。",
			"4. O (Objective): 極簡描述 MSE/PE。只准列出異常發現，忽略正常項目。",
			"5. A (Assessment): 絕對僅能列出「診斷名稱」。嚴禁包含病情分析文字。",
			"6. P (Plan): 必須以「純條列式」列出處置計畫（如 1., 2., 3...）。嚴禁散文描述。",
		}, "\n")
	case OffDutyNote:
		lines := []string{
			"1. 嚴格禁止使用 SOAP 標籤。",
			"2. 開頭第一行必須是「Off Duty note」。",
			"3. 內容生成請主要使用「中文」。",
		}
		if admission != "" {
			lines = append(lines, fmt.Sprintf("4. 必須在內容開頭提及病患於 %s 入院住院治療。", admission))
		}
		return strings.Join(lines, "\n")
	case DischargeNote:
		lines := []string{
			"1. 嚴格禁止使用 SOAP 標籤。",
			"2. 開頭第一行必須是「Discharge Note」。",
			"3. 採用「高度專業醫療整合風格」撰寫。",
		}
		if admission != "" {
			lines = append(lines, fmt.Sprintf("4. 內容首段必須提及病患自 %s 入院以來之病程總結。", admission))
		}
		lines = append(lines, "5. 結尾必須結合後續的安置計畫。")
		return strings.Join(lines, "\n")
	default:
		return "開頭請標示紀錄名稱，嚴格禁止 SOAP 標籤。"
	}
}

// BuildPrompt assembles the full generation prompt for a patient and
// note type. The same chart always produces the same prompt.
func BuildPrompt(p *roster.Patient, t NoteType, extraInfo string) string {
	var psych, medical []string
	var psychOther, medicalOther string
	if p.Diagnosis != nil {
		psych = p.Diagnosis.Psychiatric
		psychOther = p.Diagnosis.PsychiatricOther
		medical = p.Diagnosis.Medical
		medicalOther = p.Diagnosis.MedicalOther
	}

	focus := p.ClinicalFocus
	if focus == "" {
		focus = "穩定觀察中"
	}

	var b strings.Builder
	b.WriteString("【臨床素材】\n")
	fmt.Fprintf(&b, "- 診斷：%s / %s\n", diagnosisLine(psych, psychOther), diagnosisLine(medical, medicalOther))
	fmt.Fprintf(&b, "- 臨床重點：%s\n", focus)
	fmt.Fprintf(&b, "- MSE：\n%s\n", FormatMSE(p.MSE))
	fmt.Fprintf(&b, "- PE & NE：\n%s\n", FormatPE(p.PE))
	if extraInfo != "" {
		fmt.Fprintf(&b, "- 附加說明/原因/安置計畫：%s\n", extraInfo)
	}
	b.WriteString("\n")
	b.WriteString(formatInstruction(t, admissionPhrase(p.Admission)))
	return b.String()
}

package forms

// Field describes one selectable field of a clinical form: its fixed
// option labels, whether it takes a single value or a set, whether the
// "others" free-text option is offered, and its exclusion groups.
type Field struct {
	Label     string       `json:"label"`
	Options   []string     `json:"options"`
	Multi     bool         `json:"multi"`
	HasOthers bool         `json:"has_others"`
	Exclusion ExclusionMap `json:"exclusion,omitempty"`
}

// Diagnosis checklists.
var (
	PsychiatricDiagnoses = []string{
		"Schizophrenia", "Bipolar disorder", "Major depressive disorder",
		"Dementia (Major neurocognitive disorder)", "Organic mental disorder",
		"Intellectual disability (Mental retardation)",
	}
	MedicalDiagnoses = []string{"Hypertension", "Hyperlipidemia", "Diabetes mellitus"}
)

// Mental status exam fields, one entry per axis sub-field. The option
// labels and exclusion groups are the clinical vocabulary the forms
// present verbatim.
var (
	MSECleanliness = Field{Label: "整潔度", Options: []string{"整潔", "不整潔", "極度邋遢"}, HasOthers: true}
	MSECooperation = Field{Label: "合作度", Options: []string{"合作", "不合作", "敵意", "過度防衛"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"合作": {"不合作", "敵意", "過度防衛"}}}
	MSEPsychomotor = Field{Label: "精神運動", Options: []string{"正常", "遲緩", "躁動", "異常動作 (Tic/顫抖)"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"正常": {"遲緩", "躁動", "異常動作 (Tic/顫抖)"}}}

	MSESpeechSpeed  = Field{Label: "速度", Options: []string{"正常", "緩慢", "快速", "不發一語"}, HasOthers: true}
	MSESpeechVolume = Field{Label: "音量", Options: []string{"適中", "輕聲細語", "大聲咆哮"}, HasOthers: true}
	MSECoherence    = Field{Label: "連貫性", Options: []string{"連貫", "答非所問", "語無倫次"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"連貫": {"答非所問", "語無倫次"}}}

	MSEMoodSubjective = Field{Label: "主觀情緒", Options: []string{"穩定", "憂鬱", "焦慮", "亢奮"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"穩定": {"憂鬱", "焦慮", "亢奮"}}}
	MSEMoodObjective = Field{Label: "客觀情感", Options: []string{"適切", "平淡 (Flat)", "易怒", "不一致"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"適切": {"平淡 (Flat)", "易怒", "不一致"}}}

	MSEThoughtProcess = Field{Label: "過程 (邏輯)", Options: []string{"邏輯連貫", "思考鬆散", "思考中斷", "思考奔馳", "意念飛耀"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"邏輯連貫": {"思考鬆散", "思考中斷", "思考奔馳", "意念飛耀"}}}
	MSEThoughtContent = Field{Label: "內容 (妄想)", Options: []string{"無異常", "被害妄想", "關係妄想", "誇大妄想", "被控制妄想", "被偷妄想"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"無異常": {"被害妄想", "關係妄想", "誇大妄想", "被控制妄想", "被偷妄想"}}}

	MSEHallucinations = Field{Label: "幻覺", Options: []string{"無", "幻聽", "幻視"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"無": {"幻聽", "幻視"}}}

	MSEAttention   = Field{Label: "注意力", Options: []string{"集中", "易分心"}, HasOthers: true}
	MSEMemory      = Field{Label: "記憶力", Options: []string{"近期記憶缺損", "遠期記憶缺損"}, Multi: true}
	MSEAbstraction = Field{Label: "抽象思考", Options: []string{"無法解釋諺語"}, Multi: true, HasOthers: true}

	MSEInsight = Field{Label: "病識感", Options: []string{
		"完全缺乏",
		"部分 (知道生病但不認為需要就醫或無法配合治療)",
		"完整 (主動求助)",
	}}

	MSERisk = Field{Label: "風險", Options: []string{"無", "自傷或自殺風險", "暴力風險", "跌倒風險", "逃跑風險"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"無": {"自傷或自殺風險", "暴力風險", "跌倒風險", "逃跑風險"}}}
)

// Physical exam body systems. All are multi-select with a free-text
// escape hatch; an empty set reads as "no particular abnormality".
var PESystems = []Field{
	{Label: "意識狀態", Options: []string{"清醒", "嗜睡", "混亂", "昏迷"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"清醒": {"嗜睡", "混亂", "昏迷"}}},
	{Label: "頭頸部", Options: []string{"正常", "淋巴結腫大", "甲狀腺腫大"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"正常": {"淋巴結腫大", "甲狀腺腫大"}}},
	{Label: "胸部", Options: []string{"呼吸音清晰", "囉音", "喘鳴"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"呼吸音清晰": {"囉音", "喘鳴"}}},
	{Label: "心臟", Options: []string{"規律心跳", "心律不整", "心雜音"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"規律心跳": {"心律不整", "心雜音"}}},
	{Label: "腹部", Options: []string{"柔軟", "壓痛", "腫塊"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"柔軟": {"壓痛", "腫塊"}}},
	{Label: "四肢", Options: []string{"活動自如", "水腫", "無力"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"活動自如": {"水腫", "無力"}}},
	{Label: "皮膚", Options: []string{"完整", "壓瘡", "皮疹", "外傷"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"完整": {"壓瘡", "皮疹", "外傷"}}},
	{Label: "神經學", Options: []string{"無局部神經學異常", "肌力下降", "步態不穩", "顫抖"}, Multi: true, HasOthers: true,
		Exclusion: ExclusionMap{"無局部神經學異常": {"肌力下降", "步態不穩", "顫抖"}}},
}

package model

// ConfidenceBand 信号证据强度的三档分级
type ConfidenceBand string

const (
	BandStrong   ConfidenceBand = "STRONG"
	BandModerate ConfidenceBand = "MODERATE"
	BandEmerging ConfidenceBand = "EMERGING"
)

// bandRank 用于排序，大者在前
var bandRank = map[ConfidenceBand]int{
	BandStrong:   3,
	BandModerate: 2,
	BandEmerging: 1,
}

func (b ConfidenceBand) Rank() int {
	return bandRank[b]
}

// TalentSignal 面向家长的派生视图，不直接持久化（仅缓存）。
// 所有展示数字必须能从 Attempt/SkillScore 记录重新推导出来。
type TalentSignal struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Band            ConfidenceBand `json:"band"`
	Explanation     string         `json:"explanation"`
	EvidenceSummary string         `json:"evidenceSummary"`
	ObservedCount   int            `json:"observedCount"`
	ContextsCount   int            `json:"contextsCount"`
	StabilityScore  float64        `json:"stabilityScore"`
	SupportActions  []string       `json:"supportActions"`

	// 门控阈值随信号一起携带，门控器不回查目录
	MinObservations int     `json:"-"`
	MinContexts     int     `json:"-"`
	MinStability    float64 `json:"-"`
}

// SignalDefinition 信号目录条目：依赖的技能分类与解锁门槛
type SignalDefinition struct {
	ID              string
	Name            string
	Categories      []SkillCategory
	MinObservations int
	MinContexts     int
	MinStability    float64
	Explanation     string
	SupportActions  []string
}

// signalCatalog 固定的候选信号目录。
// 门槛是产品团队设定的启发式初始值，还没有用真实结果数据校准过。
var signalCatalog = []SignalDefinition{
	{
		ID:              "pattern_recognition",
		Name:            "Pattern Recognition",
		Categories:      []SkillCategory{PatternRecognition, CognitiveReasoning},
		MinObservations: 6,
		MinContexts:     3,
		MinStability:    0.6,
		Explanation:     "Notices and extends visual and logical patterns across different activities.",
		SupportActions: []string{
			"Play sequence and sorting games together",
			"Point out patterns in music, nature and daily routines",
		},
	},
	{
		ID:              "creative_problem_solving",
		Name:            "Creative Problem-Solving",
		Categories:      []SkillCategory{Creativity, CognitiveReasoning},
		MinObservations: 5,
		MinContexts:     3,
		MinStability:    0.55,
		Explanation:     "Approaches challenges with original strategies rather than repeating one method.",
		SupportActions: []string{
			"Offer open-ended building or drawing challenges",
			"Ask \"what's another way?\" after a solved puzzle",
		},
	},
	{
		ID:              "deep_focus",
		Name:            "Deep Focus",
		Categories:      []SkillCategory{Attention, Metacognition},
		MinObservations: 8,
		MinContexts:     3,
		MinStability:    0.65,
		Explanation:     "Sustains attention through longer activities with few interruptions.",
		SupportActions: []string{
			"Protect uninterrupted time for favorite activities",
			"Gradually extend activity length instead of switching often",
		},
	},
	{
		ID:              "strategic_planning",
		Name:            "Strategic Planning",
		Categories:      []SkillCategory{Planning, Metacognition},
		MinObservations: 6,
		MinContexts:     3,
		MinStability:    0.6,
		Explanation:     "Thinks ahead and sequences steps before acting.",
		SupportActions: []string{
			"Let them plan a family activity from start to finish",
			"Play turn-based games that reward looking ahead",
		},
	},
	{
		ID:              "verbal_expressiveness",
		Name:            "Verbal Expressiveness",
		Categories:      []SkillCategory{Language, SocialEmotional},
		MinObservations: 5,
		MinContexts:     2,
		MinStability:    0.55,
		Explanation:     "Uses rich language to describe ideas and feelings.",
		SupportActions: []string{
			"Invite them to retell stories in their own words",
			"Keep a shared vocabulary of favorite new words",
		},
	},
	{
		ID:              "number_sense",
		Name:            "Number Sense",
		Categories:      []SkillCategory{Numeracy, PatternRecognition},
		MinObservations: 6,
		MinContexts:     3,
		MinStability:    0.6,
		Explanation:     "Works comfortably with quantities, estimation and simple operations.",
		SupportActions: []string{
			"Involve them in measuring while cooking",
			"Estimate counts and distances together, then check",
		},
	},
}

func SignalCatalog() []SignalDefinition {
	out := make([]SignalDefinition, len(signalCatalog))
	copy(out, signalCatalog)
	return out
}

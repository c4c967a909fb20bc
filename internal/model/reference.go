package model

// 静态参考数据：课程侧重、意向映射、目标权重。
// 这些表是产品团队维护的启发式配置，不依赖任何学习数据。

// defaultEmphasis 是未显式配置的 (年级, 分类) 组合的课程侧重
const defaultEmphasis = 0.4

// gradeEmphasisOverrides 按年级覆盖课程侧重权重，取值 [0,1]。
// 年级 0 为学前，1-8 为在校年级。
var gradeEmphasisOverrides = map[int]map[SkillCategory]float64{
	0: {
		Attention:       0.9,
		SocialEmotional: 0.9,
		Language:        0.7,
		Memory:          0.6,
		Creativity:      0.6,
	},
	1: {
		Language:        0.9,
		Numeracy:        0.8,
		Attention:       0.8,
		SocialEmotional: 0.7,
	},
	2: {
		Language:           0.9,
		Numeracy:           0.9,
		PatternRecognition: 0.6,
		Attention:          0.7,
	},
	3: {
		Numeracy:           0.9,
		PatternRecognition: 0.8,
		CognitiveReasoning: 0.7,
		Language:           0.8,
	},
	4: {
		CognitiveReasoning: 0.8,
		PatternRecognition: 0.8,
		Planning:           0.6,
		Numeracy:           0.8,
	},
	5: {
		CognitiveReasoning: 0.9,
		Planning:           0.7,
		Metacognition:      0.6,
		Numeracy:           0.8,
	},
	6: {
		CognitiveReasoning: 0.9,
		Metacognition:      0.7,
		Planning:           0.8,
		Creativity:         0.6,
	},
	7: {
		CognitiveReasoning: 0.9,
		Metacognition:      0.8,
		Planning:           0.8,
		Language:           0.7,
	},
	8: {
		CognitiveReasoning: 1.0,
		Metacognition:      0.9,
		Planning:           0.8,
		Creativity:         0.7,
	},
}

// EmphasisWeight 返回某年级课程对某技能的侧重权重
func EmphasisWeight(grade int, category SkillCategory) float64 {
	if overrides, ok := gradeEmphasisOverrides[grade]; ok {
		if w, ok := overrides[category]; ok {
			return w
		}
	}
	return defaultEmphasis
}

// PedagogicalIntent 教师布置练习时声明的教学意向
type PedagogicalIntent string

const (
	IntentImproveFocus        PedagogicalIntent = "IMPROVE_FOCUS"
	IntentStrengthenReasoning PedagogicalIntent = "STRENGTHEN_REASONING"
	IntentDevelopPlanning     PedagogicalIntent = "DEVELOP_PLANNING"
	IntentBoostAcademics      PedagogicalIntent = "BOOST_ACADEMICS"
	IntentEncourageCreativity PedagogicalIntent = "ENCOURAGE_CREATIVITY"
	IntentBuildConfidence     PedagogicalIntent = "BUILD_CONFIDENCE"
)

var intentSkillSets = map[PedagogicalIntent][]SkillCategory{
	IntentImproveFocus:        {Attention, Metacognition},
	IntentStrengthenReasoning: {CognitiveReasoning, PatternRecognition},
	IntentDevelopPlanning:     {Planning, Metacognition},
	IntentBoostAcademics:      {Language, Numeracy},
	IntentEncourageCreativity: {Creativity, PatternRecognition},
	IntentBuildConfidence:     {SocialEmotional, Creativity},
}

// IntentSkills 返回意向对应的技能集合；未知意向返回 nil（不加成）
func IntentSkills(intent PedagogicalIntent) []SkillCategory {
	return intentSkillSets[intent]
}

// goalWeightMaps 已登记目标的技能权重，构造上权重和为 1.0。
// 自定义目标不在表中，就绪度计算退化为未加权平均。
var goalWeightMaps = map[string]map[SkillCategory]float64{
	"Improve Problem Solving": {
		CognitiveReasoning: 0.5,
		PatternRecognition: 0.3,
		Planning:           0.2,
	},
	"Build Reading Confidence": {
		Language:        0.6,
		Memory:          0.2,
		SocialEmotional: 0.2,
	},
	"Master Early Math": {
		Numeracy:           0.6,
		PatternRecognition: 0.25,
		Attention:          0.15,
	},
	"Strengthen Focus Habits": {
		Attention:     0.5,
		Metacognition: 0.3,
		Planning:      0.2,
	},
	"Grow Creative Expression": {
		Creativity:      0.5,
		Language:        0.3,
		SocialEmotional: 0.2,
	},
	"Prepare for Grade Transition": {
		CognitiveReasoning: 0.3,
		Planning:           0.25,
		Language:           0.25,
		Numeracy:           0.2,
	},
}

// GoalWeightMap 查询已登记目标的权重表
func GoalWeightMap(goalTitle string) (map[SkillCategory]float64, bool) {
	m, ok := goalWeightMaps[goalTitle]
	if !ok {
		return nil, false
	}
	// 返回副本，防止调用方污染参考表
	out := make(map[SkillCategory]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, true
}

package model

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory 边界处拒绝未登记的技能分类，避免脏数据流入聚合器
var ErrInvalidCategory = errors.New("unrecognized skill category")

// ErrInvalidActivity 未登记的活动类型
var ErrInvalidActivity = errors.New("unrecognized activity type")

// SkillCategory 技能分类，闭合枚举。
// 所有外部输入必须经 ParseSkillCategory 校验后才能作为 map 键使用。
type SkillCategory string

const (
	CognitiveReasoning SkillCategory = "COGNITIVE_REASONING"
	PatternRecognition SkillCategory = "PATTERN_RECOGNITION"
	Memory             SkillCategory = "MEMORY"
	Planning           SkillCategory = "PLANNING"
	Attention          SkillCategory = "ATTENTION"
	Metacognition      SkillCategory = "METACOGNITION"
	Creativity         SkillCategory = "CREATIVITY"
	Language           SkillCategory = "LANGUAGE"
	Numeracy           SkillCategory = "NUMERACY"
	SocialEmotional    SkillCategory = "SOCIAL_EMOTIONAL"
)

var allSkillCategories = []SkillCategory{
	CognitiveReasoning,
	PatternRecognition,
	Memory,
	Planning,
	Attention,
	Metacognition,
	Creativity,
	Language,
	Numeracy,
	SocialEmotional,
}

func AllSkillCategories() []SkillCategory {
	out := make([]SkillCategory, len(allSkillCategories))
	copy(out, allSkillCategories)
	return out
}

func ParseSkillCategory(s string) (SkillCategory, error) {
	for _, c := range allSkillCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// SkillBranch 技能大类，供多样性门控统计证据广度
type SkillBranch string

const (
	BranchCognitive SkillBranch = "COGNITIVE"
	BranchExecutive SkillBranch = "EXECUTIVE"
	BranchCreative  SkillBranch = "CREATIVE"
	BranchAcademic  SkillBranch = "ACADEMIC"
	BranchSocial    SkillBranch = "SOCIAL"
)

var categoryBranches = map[SkillCategory]SkillBranch{
	CognitiveReasoning: BranchCognitive,
	PatternRecognition: BranchCognitive,
	Memory:             BranchCognitive,
	Planning:           BranchExecutive,
	Attention:          BranchExecutive,
	Metacognition:      BranchExecutive,
	Creativity:         BranchCreative,
	Language:           BranchAcademic,
	Numeracy:           BranchAcademic,
	SocialEmotional:    BranchSocial,
}

func (c SkillCategory) Branch() SkillBranch {
	return categoryBranches[c]
}

// ActivityType 已完成练习的来源类型
type ActivityType string

const (
	ActivityAssessment ActivityType = "assessment"
	ActivityQuest      ActivityType = "quest"
	ActivityReflection ActivityType = "reflection"
)

func ParseActivityType(s string) (ActivityType, error) {
	switch ActivityType(s) {
	case ActivityAssessment, ActivityQuest, ActivityReflection:
		return ActivityType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidActivity, s)
}

// SkillLevel 对外展示的四档技能等级
type SkillLevel string

const (
	LevelAdvanced   SkillLevel = "ADVANCED"
	LevelProficient SkillLevel = "PROFICIENT"
	LevelDeveloping SkillLevel = "DEVELOPING"
	LevelEmerging   SkillLevel = "EMERGING"
)

// MaturityBand 内部使用的八档成熟度，在等级中点处再细分一次
type MaturityBand string

const (
	BandEmergingEarly   MaturityBand = "EMERGING_EARLY"
	BandEmergingLate    MaturityBand = "EMERGING_LATE"
	BandDevelopingEarly MaturityBand = "DEVELOPING_EARLY"
	BandDevelopingLate  MaturityBand = "DEVELOPING_LATE"
	BandProficientEarly MaturityBand = "PROFICIENT_EARLY"
	BandProficientLate  MaturityBand = "PROFICIENT_LATE"
	BandAdvancedEarly   MaturityBand = "ADVANCED_EARLY"
	BandAdvancedPeak    MaturityBand = "ADVANCED_PEAK"
)

// LevelBreakpoints 等级断点，来自 insight 配置，可调
type LevelBreakpoints struct {
	Advanced   float64
	Proficient float64
	Developing float64
}

func DefaultLevelBreakpoints() LevelBreakpoints {
	return LevelBreakpoints{Advanced: 80, Proficient: 60, Developing: 40}
}

// LevelForScore 等级是得分的纯函数，任何持久化副本都只是缓存
func LevelForScore(score float64, b LevelBreakpoints) SkillLevel {
	switch {
	case score >= b.Advanced:
		return LevelAdvanced
	case score >= b.Proficient:
		return LevelProficient
	case score >= b.Developing:
		return LevelDeveloping
	default:
		return LevelEmerging
	}
}

// MaturityBandForScore 成熟度同样是得分的纯函数
func MaturityBandForScore(score float64, b LevelBreakpoints) MaturityBand {
	switch LevelForScore(score, b) {
	case LevelAdvanced:
		if score >= (b.Advanced+100)/2 {
			return BandAdvancedPeak
		}
		return BandAdvancedEarly
	case LevelProficient:
		if score >= (b.Proficient+b.Advanced)/2 {
			return BandProficientLate
		}
		return BandProficientEarly
	case LevelDeveloping:
		if score >= (b.Developing+b.Proficient)/2 {
			return BandDevelopingLate
		}
		return BandDevelopingEarly
	default:
		if score >= b.Developing/2 {
			return BandEmergingLate
		}
		return BandEmergingEarly
	}
}

// Trend 趋势标签，由最近两个历史点比较得出
type Trend string

const (
	TrendImproving      Trend = "improving"
	TrendStable         Trend = "stable"
	TrendNeedsAttention Trend = "needs_attention"
)

// ClampScore 将归一化得分钳位到 [0,100]。
// 上游归一化计算可能瞬时越界，这里吞掉而不是报错。
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

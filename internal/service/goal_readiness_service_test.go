package service

import (
	"talent_insight_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGoalReadinessRegisteredGoal(t *testing.T) {
	// Improve Problem Solving: 推理 0.5、模式 0.3、规划 0.2
	scores := map[model.SkillCategory]float64{
		model.CognitiveReasoning: 80,
		model.PatternRecognition: 60,
		model.Planning:           40,
	}
	// 0.5×80 + 0.3×60 + 0.2×40 = 66
	assert.Equal(t, 66, CalculateGoalReadiness("Improve Problem Solving", scores, 50))
}

func TestCalculateGoalReadinessSingleSkill(t *testing.T) {
	// 单技能满权重时就绪度等于该技能得分
	scores := map[model.SkillCategory]float64{model.CognitiveReasoning: 85}
	result := SkillImprovementSuggestions("My Custom Goal", scores, 50)
	require.Len(t, result, 1)
	assert.Equal(t, 85, CalculateGoalReadiness("My Custom Goal", scores, 50))
}

func TestCalculateGoalReadinessUnmeasuredSkillsDefault(t *testing.T) {
	// 未测技能按默认 50 计，不按 0 计
	scores := map[model.SkillCategory]float64{model.CognitiveReasoning: 80}
	// 0.5×80 + 0.3×50 + 0.2×50 = 65
	assert.Equal(t, 65, CalculateGoalReadiness("Improve Problem Solving", scores, 50))
}

func TestCalculateGoalReadinessUnregisteredGoal(t *testing.T) {
	scores := map[model.SkillCategory]float64{
		model.Language: 70,
		model.Numeracy: 50,
	}
	// 未登记目标退化为已测技能的未加权平均
	assert.Equal(t, 60, CalculateGoalReadiness("Conquer the Moon", scores, 50))

	// 完全没有技能分时为 0，而不是默认分
	assert.Equal(t, 0, CalculateGoalReadiness("Conquer the Moon", nil, 50))
}

func TestCalculateGoalReadinessBounds(t *testing.T) {
	all := map[model.SkillCategory]float64{}
	for _, category := range model.AllSkillCategories() {
		all[category] = 100
	}
	for _, goal := range []string{
		"Improve Problem Solving",
		"Build Reading Confidence",
		"Master Early Math",
		"Strengthen Focus Habits",
		"Grow Creative Expression",
		"Prepare for Grade Transition",
	} {
		r := CalculateGoalReadiness(goal, all, 50)
		assert.GreaterOrEqual(t, r, 0, goal)
		assert.LessOrEqual(t, r, 100, goal)
		assert.Equal(t, 100, r, goal)
	}
}

func TestSkillImprovementSuggestionsOrdering(t *testing.T) {
	scores := map[model.SkillCategory]float64{
		model.CognitiveReasoning: 90, // 0.5 × 10 = 5
		model.PatternRecognition: 30, // 0.3 × 70 = 21
		model.Planning:           50, // 0.2 × 50 = 10
	}
	suggestions := SkillImprovementSuggestions("Improve Problem Solving", scores, 50)
	require.Len(t, suggestions, 3)

	assert.Equal(t, model.PatternRecognition, suggestions[0].Category)
	assert.Equal(t, model.Planning, suggestions[1].Category)
	assert.Equal(t, model.CognitiveReasoning, suggestions[2].Category)
	assert.InDelta(t, 21, suggestions[0].Priority, 1e-9)
}

func TestSkillImprovementSuggestionsUnregisteredGoal(t *testing.T) {
	scores := map[model.SkillCategory]float64{
		model.Language: 80,
		model.Numeracy: 40,
	}
	suggestions := SkillImprovementSuggestions("Custom Goal", scores, 50)
	require.Len(t, suggestions, 2)

	// 等权重下薄弱技能优先
	assert.Equal(t, model.Numeracy, suggestions[0].Category)
	assert.InDelta(t, 60, suggestions[0].Priority, 1e-9)
}

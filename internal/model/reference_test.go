package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmphasisWeight(t *testing.T) {
	// 年级覆盖表命中
	assert.InDelta(t, 0.9, EmphasisWeight(0, Attention), 1e-9)
	assert.InDelta(t, 1.0, EmphasisWeight(8, CognitiveReasoning), 1e-9)

	// 未配置组合回落到默认侧重
	assert.InDelta(t, 0.4, EmphasisWeight(0, Numeracy), 1e-9)
	assert.InDelta(t, 0.4, EmphasisWeight(99, CognitiveReasoning), 1e-9)
}

func TestIntentSkills(t *testing.T) {
	skills := IntentSkills(IntentImproveFocus)
	assert.ElementsMatch(t, []SkillCategory{Attention, Metacognition}, skills)

	assert.Empty(t, IntentSkills("UNKNOWN_INTENT"))
}

func TestGoalWeightMap(t *testing.T) {
	weights, ok := GoalWeightMap("Improve Problem Solving")
	require.True(t, ok)
	assert.InDelta(t, 0.5, weights[CognitiveReasoning], 1e-9)
	assert.InDelta(t, 0.3, weights[PatternRecognition], 1e-9)
	assert.InDelta(t, 0.2, weights[Planning], 1e-9)

	// 返回副本：修改结果不影响内部表
	weights[CognitiveReasoning] = 99
	again, _ := GoalWeightMap("Improve Problem Solving")
	assert.InDelta(t, 0.5, again[CognitiveReasoning], 1e-9)

	_, ok = GoalWeightMap("My Custom Goal")
	assert.False(t, ok)
}

package service

import (
	"talent_insight_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeNarrativeDeterministic(t *testing.T) {
	scores := []model.SkillScore{
		{Category: model.Numeracy, Score: 82, Level: model.LevelAdvanced, Trend: model.TrendImproving},
		{Category: model.Language, Score: 55, Level: model.LevelDeveloping, Trend: model.TrendNeedsAttention},
		{Category: model.Planning, Score: 60, Level: model.LevelProficient, Trend: model.TrendStable},
	}
	unlocked := []model.TalentSignal{
		{Name: "Number Sense"},
		{Name: "Deep Focus"},
	}

	narrative := composeNarrative(25, scores, unlocked)

	assert.Contains(t, narrative, "Across 25 completed activities")
	assert.Contains(t, narrative, "tracking 3 skill areas")
	assert.Contains(t, narrative, "NUMERACY (ADVANCED)")
	assert.Contains(t, narrative, "1 area(s) show an improving trend")
	assert.Contains(t, narrative, "1 area(s) could use some gentle attention")
	// 信号名排序后拼接，输出与信号存储顺序无关
	assert.Contains(t, narrative, "Emerging strengths: Deep Focus and Number Sense.")

	reversed := []model.TalentSignal{unlocked[1], unlocked[0]}
	assert.Equal(t, narrative, composeNarrative(25, scores, reversed))
}

func TestComposeNarrativeNoSignals(t *testing.T) {
	scores := []model.SkillScore{
		{Category: model.Memory, Score: 45, Level: model.LevelDeveloping, Trend: model.TrendStable},
	}
	narrative := composeNarrative(20, scores, nil)

	assert.Contains(t, narrative, "Across 20 completed activities")
	assert.NotContains(t, narrative, "Emerging strengths")
}

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "", joinNames(nil))
	assert.Equal(t, "A", joinNames([]string{"A"}))
	assert.Equal(t, "A and B", joinNames([]string{"A", "B"}))
	assert.Equal(t, "A, B and C", joinNames([]string{"A", "B", "C"}))
}

package service

import (
	"talent_insight_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStabilityScore(t *testing.T) {
	tests := []struct {
		name   string
		points []float64
		want   float64
	}{
		{"无观察", nil, 0},
		{"单点不构成稳定性证据", []float64{80}, 0},
		{"完全一致的得分", []float64{70, 70, 70}, 1},
		{"极端二值分布", []float64{0, 100, 0, 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StabilityScore(tt.points), 1e-9)
		})
	}

	// 小幅波动应接近 1
	mild := StabilityScore([]float64{70, 72, 71, 69})
	assert.Greater(t, mild, 0.99)
	assert.LessOrEqual(t, mild, 1.0)
}

func TestDistinctBranches(t *testing.T) {
	scores := []model.SkillScore{
		{Category: model.CognitiveReasoning},
		{Category: model.PatternRecognition},
		{Category: model.Language},
	}
	// COGNITIVE ×2 去重后算一个分支，加上 ACADEMIC 共两个
	assert.Equal(t, 2, DistinctBranches(scores))
	assert.Equal(t, 0, DistinctBranches(nil))
}

func signalTestScores(history map[model.SkillCategory][]float64) []model.SkillScore {
	at := time.Now()
	var scores []model.SkillScore
	for category, points := range history {
		sc := model.SkillScore{Category: category}
		for i, p := range points {
			sc.History = append(sc.History, model.ScorePoint{At: at.Add(time.Duration(i) * time.Hour), Score: p})
		}
		scores = append(scores, sc)
	}
	return scores
}

func TestDeriveSignalsTraceable(t *testing.T) {
	// pattern_recognition 信号依赖 PATTERN_RECOGNITION + COGNITIVE_REASONING
	scores := signalTestScores(map[model.SkillCategory][]float64{
		model.PatternRecognition: {70, 72, 71},
		model.CognitiveReasoning: {65, 66},
		model.Language:           {40},
	})

	attempts := []model.Attempt{
		{ActivityID: "act-1", NormalizedScores: model.ScoreMap{model.PatternRecognition: 70}},
		{ActivityID: "act-2", NormalizedScores: model.ScoreMap{model.CognitiveReasoning: 65}},
		{ActivityID: "act-2", NormalizedScores: model.ScoreMap{model.PatternRecognition: 72}},
		{ActivityID: "act-3", NormalizedScores: model.ScoreMap{model.Language: 40}},
	}

	signals := DeriveSignals(model.SignalCatalog(), attempts, scores)
	require.Len(t, signals, 6)

	var pattern *model.TalentSignal
	for i := range signals {
		if signals[i].ID == "pattern_recognition" {
			pattern = &signals[i]
		}
	}
	require.NotNil(t, pattern)

	// 观察数 = 依赖分类的历史点之和：3 + 2
	assert.Equal(t, 5, pattern.ObservedCount)
	// 场景数 = 为依赖分类贡献过证据的去重活动：act-1、act-2
	assert.Equal(t, 2, pattern.ContextsCount)
	assert.Equal(t, "Observed 5 times across 2 different activities", pattern.EvidenceSummary)
	// 推导阶段不定档，默认 EMERGING，由门控器定档
	assert.Equal(t, model.BandEmerging, pattern.Band)
}

func TestDeriveSignalsNoEvidence(t *testing.T) {
	signals := DeriveSignals(model.SignalCatalog(), nil, nil)
	require.Len(t, signals, 6)

	for _, sig := range signals {
		assert.Zero(t, sig.ObservedCount, sig.ID)
		assert.Zero(t, sig.ContextsCount, sig.ID)
		assert.Zero(t, sig.StabilityScore, sig.ID)
	}
}

func TestDeriveSignalsDeterministic(t *testing.T) {
	scores := signalTestScores(map[model.SkillCategory][]float64{
		model.Numeracy: {60, 62, 64, 61},
		model.Planning: {55, 58},
	})
	attempts := []model.Attempt{
		{ActivityID: "a", NormalizedScores: model.ScoreMap{model.Numeracy: 60}},
		{ActivityID: "b", NormalizedScores: model.ScoreMap{model.Planning: 55}},
	}

	first := DeriveSignals(model.SignalCatalog(), attempts, scores)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DeriveSignals(model.SignalCatalog(), attempts, scores))
	}
}

func TestSignalCatalogCarriesSupportActions(t *testing.T) {
	for _, def := range model.SignalCatalog() {
		assert.NotEmpty(t, def.Categories, def.ID)
		assert.NotEmpty(t, def.Explanation, def.ID)
		assert.NotEmpty(t, def.SupportActions, def.ID)
	}
}

package service

import (
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateTestConfig() *config.Config {
	return &config.Config{
		Insight: config.InsightConfig{
			GlobalMinActivities: 10,
			NarrativeMin:        20,
			MinActivityTypes:    3,
			MinSkillBranches:    2,
			StrongMultiplier:    1.5,
			ModerateMultiplier:  1.2,
		},
	}
}

func TestCheckGlobalGate(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	assert.False(t, gate.CheckGlobalGate(0))
	assert.False(t, gate.CheckGlobalGate(9))
	assert.True(t, gate.CheckGlobalGate(10))
	assert.True(t, gate.CheckGlobalGate(500))
}

func TestRemainingActivities(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	assert.Equal(t, 7, gate.RemainingActivities(3))
	assert.Equal(t, 0, gate.RemainingActivities(10))
	assert.Equal(t, 0, gate.RemainingActivities(25))
}

func TestCheckDiversityGate(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	tests := []struct {
		name     string
		types    int
		branches int
		want     bool
	}{
		{"两项都达标", 3, 2, true},
		{"类型不足", 2, 5, false},
		{"分支不足", 5, 1, false},
		{"两项都不足", 1, 1, false},
		{"远超门槛", 3, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.CheckDiversityGate(tt.types, tt.branches))
		})
	}
}

func testSignal(id string, observed, contexts int, stability float64) model.TalentSignal {
	return model.TalentSignal{
		ID:              id,
		Name:            id,
		ObservedCount:   observed,
		ContextsCount:   contexts,
		StabilityScore:  stability,
		MinObservations: 6,
		MinContexts:     3,
		MinStability:    0.6,
	}
}

func TestGateTalentSignalsThresholds(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	signals := []model.TalentSignal{
		testSignal("unlocked", 6, 3, 0.6),
		testSignal("too_few_observations", 5, 3, 0.9),
		testSignal("too_few_contexts", 10, 2, 0.9),
		testSignal("too_unstable", 10, 5, 0.59),
	}

	result := gate.GateTalentSignals(signals, 15)
	require.Len(t, result.Unlocked, 1)
	assert.Equal(t, "unlocked", result.Unlocked[0].ID)
	assert.Len(t, result.Locked, 3)

	// 未解锁信号一律回落到 EMERGING 档
	for _, sig := range result.Locked {
		assert.Equal(t, model.BandEmerging, sig.Band)
	}
}

func TestGateTalentSignalsGlobalGateBlocksAll(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	signals := []model.TalentSignal{testSignal("strong", 20, 10, 0.95)}
	result := gate.GateTalentSignals(signals, 9)

	assert.Empty(t, result.Unlocked)
	assert.Len(t, result.Locked, 1)
}

func TestGateTalentSignalsConfidenceBands(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	// STRONG: 所有指标达到 1.5 倍门槛（观察 ≥9、场景 ≥4.5、稳定 ≥0.9）
	// MODERATE: 达到 1.2 倍（观察 ≥7.2、场景 ≥3.6、稳定 ≥0.72）
	signals := []model.TalentSignal{
		testSignal("strong", 9, 5, 0.9),
		testSignal("moderate", 8, 4, 0.75),
		testSignal("emerging", 6, 3, 0.6),
	}

	result := gate.GateTalentSignals(signals, 15)
	require.Len(t, result.Unlocked, 3)

	byID := map[string]model.ConfidenceBand{}
	for _, sig := range result.Unlocked {
		byID[sig.ID] = sig.Band
	}
	assert.Equal(t, model.BandStrong, byID["strong"])
	assert.Equal(t, model.BandModerate, byID["moderate"])
	assert.Equal(t, model.BandEmerging, byID["emerging"])
}

func TestGateTalentSignalsStabilityFloorCappedAtOne(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	// MinStability 0.8 × 1.5 = 1.2 会超过量纲上限，截断到 1 后 1.0 应判定达标
	sig := model.TalentSignal{
		ID:              "capped",
		ObservedCount:   20,
		ContextsCount:   10,
		StabilityScore:  1.0,
		MinObservations: 6,
		MinContexts:     3,
		MinStability:    0.8,
	}

	result := gate.GateTalentSignals([]model.TalentSignal{sig}, 15)
	require.Len(t, result.Unlocked, 1)
	assert.Equal(t, model.BandStrong, result.Unlocked[0].Band)
}

func TestGateTalentSignalsDeterministicOrdering(t *testing.T) {
	gate := NewEvidenceGateService(gateTestConfig())

	signals := []model.TalentSignal{
		testSignal("b_emerging", 6, 3, 0.6),
		testSignal("a_emerging", 6, 3, 0.6),
		testSignal("strong_low_obs", 9, 5, 0.9),
		testSignal("strong_high_obs", 12, 5, 0.9),
	}

	first := gate.GateTalentSignals(signals, 15)
	require.Len(t, first.Unlocked, 4)

	// 档位降序，档内按观察数降序，再按 ID 升序
	ids := []string{first.Unlocked[0].ID, first.Unlocked[1].ID, first.Unlocked[2].ID, first.Unlocked[3].ID}
	assert.Equal(t, []string{"strong_high_obs", "strong_low_obs", "a_emerging", "b_emerging"}, ids)

	// 重复执行输出完全一致
	for i := 0; i < 5; i++ {
		again := gate.GateTalentSignals(signals, 15)
		assert.Equal(t, first, again)
	}
}

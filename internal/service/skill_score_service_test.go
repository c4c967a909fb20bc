package service

import (
	"talent_insight_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyObservationLatestWins(t *testing.T) {
	bp := model.DefaultLevelBreakpoints()
	now := time.Now()
	score := &model.SkillScore{StudentID: 1, Category: model.Numeracy}

	ApplyObservation(score, 70, "Assessment: math-01", now, bp, 5)
	ApplyObservation(score, 30, "Quest: math-02", now.Add(time.Hour), bp, 5)

	// 最新观察直接取代当前分，不做滑动平均
	assert.Equal(t, 30.0, score.Score)
	assert.Equal(t, model.LevelEmerging, score.Level)

	// 历史与证据只追加，不回填
	require.Len(t, score.History, 2)
	require.Len(t, score.Evidence, 2)
	assert.Equal(t, 70.0, score.History[0].Score)
	assert.Equal(t, "Assessment: math-01", score.Evidence[0])
}

func TestApplyObservationClampsOutOfRange(t *testing.T) {
	bp := model.DefaultLevelBreakpoints()
	score := &model.SkillScore{}

	ApplyObservation(score, 137, "Assessment: a", time.Now(), bp, 5)
	assert.Equal(t, 100.0, score.Score)
	assert.Equal(t, model.BandAdvancedPeak, score.MaturityBand)

	ApplyObservation(score, -12, "Assessment: b", time.Now(), bp, 5)
	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, model.BandEmergingEarly, score.MaturityBand)
}

func TestApplyObservationUpdatesLevelAndBand(t *testing.T) {
	bp := model.DefaultLevelBreakpoints()
	score := &model.SkillScore{}

	ApplyObservation(score, 85, "Assessment: x", time.Now(), bp, 5)
	assert.Equal(t, model.LevelAdvanced, score.Level)
	assert.Equal(t, model.BandAdvancedEarly, score.MaturityBand)

	ApplyObservation(score, 65, "Assessment: y", time.Now(), bp, 5)
	assert.Equal(t, model.LevelProficient, score.Level)
	assert.Equal(t, model.BandProficientEarly, score.MaturityBand)
}

func TestClassifyTrend(t *testing.T) {
	at := time.Now()
	points := func(scores ...float64) model.ScoreHistory {
		var h model.ScoreHistory
		for i, s := range scores {
			h = append(h, model.ScorePoint{At: at.Add(time.Duration(i) * time.Hour), Score: s})
		}
		return h
	}

	tests := []struct {
		name    string
		history model.ScoreHistory
		want    model.Trend
	}{
		{"空历史为稳定", nil, model.TrendStable},
		{"单点为稳定", points(50), model.TrendStable},
		{"涨幅超过阈值", points(50, 60), model.TrendImproving},
		{"跌幅超过阈值", points(60, 50), model.TrendNeedsAttention},
		{"恰好等于阈值仍为稳定", points(50, 55), model.TrendStable},
		{"阈值内波动为稳定", points(50, 52), model.TrendStable},
		{"只看最近两点", points(10, 90, 88), model.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTrend(tt.history, 5))
		})
	}
}

func TestEvidenceLabel(t *testing.T) {
	tests := []struct {
		activityType model.ActivityType
		want         string
	}{
		{model.ActivityAssessment, "Assessment: abc"},
		{model.ActivityQuest, "Quest: abc"},
		{model.ActivityReflection, "Reflection: abc"},
	}
	for _, tt := range tests {
		attempt := &model.Attempt{ActivityID: "abc", ActivityType: tt.activityType}
		assert.Equal(t, tt.want, EvidenceLabel(attempt))
	}
}

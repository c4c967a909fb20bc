package service

import (
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankTestConfig() *config.InsightConfig {
	return &config.InsightConfig{
		DevelopingMin:     40,
		DefaultSkillScore: 50,
		WeakSignalWeight:  0.3,
		FocusBoostCap:     0.20,
		IntentBoost:       1.2,
	}
}

func rankTestPool() []model.Quest {
	return []model.Quest{
		{Code: "q-numeracy", Type: model.ActivityQuest, PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8, Enabled: true},
		{Code: "q-language", Type: model.ActivityQuest, PrimarySkills: model.CategoryList{model.Language}, MinGrade: 0, MaxGrade: 8, Enabled: true},
		{Code: "q-planning", Type: model.ActivityQuest, PrimarySkills: model.CategoryList{model.Planning}, MinGrade: 0, MaxGrade: 8, Enabled: true},
		{Code: "q-too-young", Type: model.ActivityQuest, PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 5, MaxGrade: 8, Enabled: true},
		{Code: "q-too-old", Type: model.ActivityQuest, PrimarySkills: model.CategoryList{model.Language}, MinGrade: 0, MaxGrade: 1, Enabled: true},
	}
}

func codes(ranked []RankedQuest) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Quest.Code)
	}
	return out
}

func TestRankQuestsGradeHardFilter(t *testing.T) {
	params := AssignmentParams{Grade: 3, QuestCount: 10}
	ranked := RankQuests(rankTestPool(), params, nil, nil, nil, rankTestConfig())

	got := codes(ranked)
	assert.NotContains(t, got, "q-too-young")
	assert.NotContains(t, got, "q-too-old")
	assert.Len(t, got, 3)
}

func TestRankQuestsCapsCount(t *testing.T) {
	params := AssignmentParams{Grade: 3, QuestCount: 2}
	ranked := RankQuests(rankTestPool(), params, nil, nil, nil, rankTestConfig())
	assert.Len(t, ranked, 2)
}

func TestRankQuestsEmptyPoolMeansNoRecommendation(t *testing.T) {
	params := AssignmentParams{Grade: 3, QuestCount: 5}
	ranked := RankQuests(nil, params, nil, nil, nil, rankTestConfig())
	assert.Empty(t, ranked)

	// 全部被年级过滤也得到空集，而不是报错
	pool := []model.Quest{
		{Code: "hs-only", MinGrade: 7, MaxGrade: 8, PrimarySkills: model.CategoryList{model.Numeracy}},
	}
	assert.Empty(t, RankQuests(pool, params, nil, nil, nil, rankTestConfig()))
}

func TestRankQuestsWeakSkillsRankHigher(t *testing.T) {
	// 年级 3 的侧重：Numeracy 0.9、Language 0.8、Planning 默认 0.4
	scores := map[model.SkillCategory]float64{
		model.Numeracy: 20,
		model.Language: 90,
		model.Planning: 90,
	}
	params := AssignmentParams{Grade: 3, QuestCount: 10}
	ranked := RankQuests(rankTestPool(), params, scores, nil, nil, rankTestConfig())

	require.NotEmpty(t, ranked)
	assert.Equal(t, "q-numeracy", ranked[0].Quest.Code)
}

func TestRankQuestsUnmeasuredSkillUsesDefault(t *testing.T) {
	params := AssignmentParams{Grade: 3, QuestCount: 10}
	ranked := RankQuests(rankTestPool(), params, map[model.SkillCategory]float64{}, nil, nil, rankTestConfig())

	// Numeracy：0.9 × (100−50) = 45
	for _, r := range ranked {
		if r.Quest.Code == "q-numeracy" {
			assert.InDelta(t, 45, r.Priority, 1e-9)
		}
	}
}

func TestRankQuestsWeakSignalUrgency(t *testing.T) {
	params := AssignmentParams{Grade: 3, QuestCount: 10}
	weak := map[model.SkillCategory]int{model.Planning: 4}

	base := RankQuests(rankTestPool(), params, nil, nil, nil, rankTestConfig())
	boosted := RankQuests(rankTestPool(), params, nil, weak, nil, rankTestConfig())

	var before, after float64
	for _, r := range base {
		if r.Quest.Code == "q-planning" {
			before = r.Priority
		}
	}
	for _, r := range boosted {
		if r.Quest.Code == "q-planning" {
			after = r.Priority
		}
	}
	// 0.3 × 4 = 1.2 的紧迫度加项
	assert.InDelta(t, before+1.2, after, 1e-9)
}

func TestRankQuestsFocusBoostClampedAndSingle(t *testing.T) {
	ic := rankTestConfig()
	params := AssignmentParams{Grade: 3, QuestCount: 10}

	pool := []model.Quest{
		{Code: "multi", PrimarySkills: model.CategoryList{model.Numeracy, model.Language}, MinGrade: 0, MaxGrade: 8},
	}
	// 两个主技能都有加成，但只有第一个命中的生效一次
	boosts := model.BoostMap{model.Numeracy: 0.5, model.Language: 0.5}

	plain := RankQuests(pool, params, nil, nil, nil, ic)
	boosted := RankQuests(pool, params, nil, nil, boosts, ic)
	require.Len(t, boosted, 1)

	// 0.5 越权的加成钳到 0.20，只乘一次
	assert.InDelta(t, plain[0].Priority*1.20, boosted[0].Priority, 1e-9)
}

func TestRankQuestsNegativeBoostIgnored(t *testing.T) {
	ic := rankTestConfig()
	params := AssignmentParams{Grade: 3, QuestCount: 10}
	pool := []model.Quest{
		{Code: "q", PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8},
	}
	boosts := model.BoostMap{model.Numeracy: -5}

	plain := RankQuests(pool, params, nil, nil, nil, ic)
	negated := RankQuests(pool, params, nil, nil, boosts, ic)

	// 负加成钳到 0，结果与无加成一致
	assert.InDelta(t, plain[0].Priority, negated[0].Priority, 1e-9)
}

func TestRankQuestsIntentMultiplier(t *testing.T) {
	ic := rankTestConfig()
	pool := []model.Quest{
		{Code: "focus-quest", PrimarySkills: model.CategoryList{model.Attention}, MinGrade: 0, MaxGrade: 8},
		{Code: "other-quest", PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8},
	}

	plain := RankQuests(pool, AssignmentParams{Grade: 3, QuestCount: 10}, nil, nil, nil, ic)
	withIntent := RankQuests(pool, AssignmentParams{Grade: 3, QuestCount: 10, Intent: model.IntentImproveFocus}, nil, nil, nil, ic)

	priorities := func(ranked []RankedQuest) map[string]float64 {
		out := map[string]float64{}
		for _, r := range ranked {
			out[r.Quest.Code] = r.Priority
		}
		return out
	}
	before, after := priorities(plain), priorities(withIntent)

	assert.InDelta(t, before["focus-quest"]*1.2, after["focus-quest"], 1e-9)
	assert.InDelta(t, before["other-quest"], after["other-quest"], 1e-9)
}

func TestRankQuestsTypeFilter(t *testing.T) {
	pool := []model.Quest{
		{Code: "a", Type: model.ActivityQuest, PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8},
		{Code: "b", Type: model.ActivityReflection, PrimarySkills: model.CategoryList{model.Language}, MinGrade: 0, MaxGrade: 8},
	}
	params := AssignmentParams{Grade: 3, QuestCount: 10, Types: []model.ActivityType{model.ActivityReflection}}
	ranked := RankQuests(pool, params, nil, nil, nil, rankTestConfig())

	require.Len(t, ranked, 1)
	assert.Equal(t, "b", ranked[0].Quest.Code)
}

func TestRankQuestsDeterministicWithStableTies(t *testing.T) {
	// 同分候选保持题库顺序
	pool := []model.Quest{
		{Code: "tie-1", PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8},
		{Code: "tie-2", PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8},
		{Code: "tie-3", PrimarySkills: model.CategoryList{model.Numeracy}, MinGrade: 0, MaxGrade: 8},
	}
	params := AssignmentParams{Grade: 3, QuestCount: 10}

	first := RankQuests(pool, params, nil, nil, nil, rankTestConfig())
	assert.Equal(t, []string{"tie-1", "tie-2", "tie-3"}, codes(first))

	for i := 0; i < 5; i++ {
		assert.Equal(t, first, RankQuests(pool, params, nil, nil, nil, rankTestConfig()))
	}
}

func TestDefaultQuestPoolGradeRanges(t *testing.T) {
	for _, quest := range model.DefaultQuestPool() {
		assert.True(t, quest.Enabled, quest.Code)
		assert.LessOrEqual(t, quest.MinGrade, quest.MaxGrade, quest.Code)
		assert.NotEmpty(t, quest.PrimarySkills, quest.Code)
	}
}

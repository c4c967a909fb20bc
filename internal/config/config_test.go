package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInsight() InsightConfig {
	return InsightConfig{
		GlobalMinActivities: 10,
		NarrativeMin:        20,
		MinActivityTypes:    3,
		MinSkillBranches:    2,
		StrongMultiplier:    1.5,
		ModerateMultiplier:  1.2,
		AdvancedMin:         80,
		ProficientMin:       60,
		DevelopingMin:       40,
		TrendDelta:          5,
		DefaultSkillScore:   50,
		WeakSignalWeight:    0.3,
		FocusBoostCap:       0.20,
		IntentBoost:         1.2,
	}
}

func TestValidateInsight(t *testing.T) {
	ic := validInsight()
	assert.NoError(t, validateInsight(&ic))
}

func TestValidateInsightRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InsightConfig)
	}{
		{"全局门槛不能小于 1", func(ic *InsightConfig) { ic.GlobalMinActivities = 0 }},
		{"叙述门槛不能低于全局门槛", func(ic *InsightConfig) { ic.NarrativeMin = 5 }},
		{"加成上限不能为负", func(ic *InsightConfig) { ic.FocusBoostCap = -0.1 }},
		{"加成上限不能超过 1", func(ic *InsightConfig) { ic.FocusBoostCap = 1.5 }},
		{"断点必须严格递增", func(ic *InsightConfig) { ic.ProficientMin = 90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic := validInsight()
			tt.mutate(&ic)
			assert.Error(t, validateInsight(&ic))
		})
	}
}

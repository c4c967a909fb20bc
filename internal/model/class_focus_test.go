package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampBoost(t *testing.T) {
	tests := []struct {
		name  string
		boost float64
		want  float64
	}{
		{"负值钳为零", -5, 0},
		{"超上限钳到上限", 0.5, 0.20},
		{"极端值同样钳到上限", 1000, 0.20},
		{"区间内保持原值", 0.15, 0.15},
		{"零保持为零", 0, 0},
		{"恰好上限", 0.20, 0.20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ClampBoost(tt.boost, FocusBoostCap), 1e-9)
		})
	}
}

func TestBoostMapClamped(t *testing.T) {
	boosts := BoostMap{
		Numeracy:  0.5,
		Language:  -0.1,
		Attention: 0.1,
	}
	clamped := boosts.Clamped(FocusBoostCap)

	assert.InDelta(t, 0.20, clamped[Numeracy], 1e-9)
	assert.InDelta(t, 0.0, clamped[Language], 1e-9)
	assert.InDelta(t, 0.1, clamped[Attention], 1e-9)
	// 原 map 不被修改
	assert.InDelta(t, 0.5, boosts[Numeracy], 1e-9)
}

func TestClassFocusInWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		profile ClassFocusProfile
		want    bool
	}{
		{"无窗口限制则始终生效", ClassFocusProfile{}, true},
		{"窗口内", ClassFocusProfile{StartsAt: &past, EndsAt: &future}, true},
		{"尚未开始", ClassFocusProfile{StartsAt: &future}, false},
		{"已过期", ClassFocusProfile{EndsAt: &past}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.InWindow(now))
		})
	}
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FocusBoostCap 班级侧重加成的硬上限，写入与使用两处都做钳位。
const FocusBoostCap = 0.20

// BoostMap 技能 -> 加成系数，取值 [0, FocusBoostCap]
type BoostMap map[SkillCategory]float64

func (m BoostMap) Value() (driver.Value, error) {
	if m == nil {
		m = BoostMap{}
	}
	return json.Marshal(m)
}

func (m *BoostMap) Scan(value interface{}) error {
	if value == nil {
		*m = BoostMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for BoostMap", value)
	}
	return json.Unmarshal(b, m)
}

// ClampBoost 钳位单个加成值
func ClampBoost(boost, cap float64) float64 {
	if boost < 0 {
		return 0
	}
	if boost > cap {
		return cap
	}
	return boost
}

// Clamped 返回整张表的钳位副本
func (m BoostMap) Clamped(cap float64) BoostMap {
	out := make(BoostMap, len(m))
	for k, v := range m {
		out[k] = ClampBoost(v, cap)
	}
	return out
}

// ClassFocusProfile 教师设定的班级侧重。
// 每位教师同一时刻至多一条 Active 记录，切换必须在事务内先停用再插入。
type ClassFocusProfile struct {
	BaseModel
	TeacherID uint       `gorm:"index;not null" json:"teacherId"`
	Grade     *int       `json:"grade,omitempty"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	Boosts    BoostMap   `gorm:"type:json" json:"boosts"`
	Active    bool       `gorm:"index;default:false" json:"active"`
}

func (ClassFocusProfile) TableName() string {
	return "class_focus_profiles"
}

// InWindow 判断时间窗限制（无窗口视为长期有效）
func (p *ClassFocusProfile) InWindow(now time.Time) bool {
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}

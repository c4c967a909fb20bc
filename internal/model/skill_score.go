package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ScorePoint 一次观察的历史点
type ScorePoint struct {
	At    time.Time `json:"at"`
	Score float64   `json:"score"`
}

// ScoreHistory 只追加的历史序列，按时间单调递增，绝不截断或重排
type ScoreHistory []ScorePoint

func (h ScoreHistory) Value() (driver.Value, error) {
	if h == nil {
		h = ScoreHistory{}
	}
	return json.Marshal(h)
}

func (h *ScoreHistory) Scan(value interface{}) error {
	if value == nil {
		*h = ScoreHistory{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for ScoreHistory", value)
	}
	return json.Unmarshal(b, h)
}

// EvidenceList 只追加的证据来源标签，不去重、不截断
type EvidenceList []string

func (e EvidenceList) Value() (driver.Value, error) {
	if e == nil {
		e = EvidenceList{}
	}
	return json.Marshal(e)
}

func (e *EvidenceList) Scan(value interface{}) error {
	if value == nil {
		*e = EvidenceList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for EvidenceList", value)
	}
	return json.Unmarshal(b, e)
}

// SkillScore 每个 (学生, 技能分类) 一行。
// Score 是事实来源；Level/MaturityBand 由断点重算，任何不一致都是缺陷。
type SkillScore struct {
	BaseModel
	StudentID    uint          `gorm:"uniqueIndex:idx_student_category;not null" json:"studentId"`
	Category     SkillCategory `gorm:"uniqueIndex:idx_student_category;size:40;not null" json:"category"`
	Score        float64       `gorm:"not null" json:"score"`
	Level        SkillLevel    `gorm:"size:20" json:"level"`
	MaturityBand MaturityBand  `gorm:"size:30" json:"maturityBand"`
	Trend        Trend         `gorm:"size:20;default:'stable'" json:"trend"`
	Evidence     EvidenceList  `gorm:"type:json" json:"evidence"`
	History      ScoreHistory  `gorm:"type:json" json:"history"`
}

func (SkillScore) TableName() string {
	return "skill_scores"
}

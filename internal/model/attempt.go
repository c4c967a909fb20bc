package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ScoreMap 按技能分类的归一化得分
type ScoreMap map[SkillCategory]float64

func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		m = ScoreMap{}
	}
	return json.Marshal(m)
}

func (m *ScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = ScoreMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for ScoreMap", value)
	}
	return json.Unmarshal(b, m)
}

// Attempt 一次已完成的练习（评估/任务/反思）。
// 完成后不可变；GradeAtAttempt 在创建时冻结，学生升级不会重分类历史证据。
type Attempt struct {
	BaseModel
	// ReceiptID 对外暴露的提交凭据，避免泄露自增主键
	ReceiptID        string       `gorm:"size:36;uniqueIndex;not null" json:"receiptId"`
	StudentID        uint         `gorm:"index;not null" json:"studentId"`
	ActivityID       string       `gorm:"size:100;index;not null" json:"activityId"`
	ActivityType     ActivityType `gorm:"size:20;index;not null" json:"activityType"`
	RawScore         float64      `json:"rawScore"`
	NormalizedScores ScoreMap     `gorm:"type:json" json:"normalizedScores"`
	TimeSpentSec     int          `json:"timeSpentSec"`
	HintsUsed        int          `json:"hintsUsed"`
	GradeAtAttempt   int          `gorm:"not null" json:"gradeAtAttempt"`
	CompletedAt      time.Time    `gorm:"index;not null" json:"completedAt"`
}

func (Attempt) TableName() string {
	return "attempts"
}

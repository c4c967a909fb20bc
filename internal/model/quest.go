package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CategoryList JSON 存储的技能分类列表
type CategoryList []SkillCategory

func (l CategoryList) Value() (driver.Value, error) {
	if l == nil {
		l = CategoryList{}
	}
	return json.Marshal(l)
}

func (l *CategoryList) Scan(value interface{}) error {
	if value == nil {
		*l = CategoryList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for CategoryList", value)
	}
	return json.Unmarshal(b, l)
}

// Quest 候选练习条目
type Quest struct {
	BaseModel
	Code             string       `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Title            string       `gorm:"size:255;not null" json:"title"`
	Type             ActivityType `gorm:"size:20;index;not null" json:"type"`
	PrimarySkills    CategoryList `gorm:"type:json" json:"primarySkills"`
	EstimatedMinutes int          `gorm:"default:10" json:"estimatedMinutes"`
	// 年级适用区间，闭区间 [MinGrade, MaxGrade]
	MinGrade int  `gorm:"default:0" json:"minGrade"`
	MaxGrade int  `gorm:"default:8" json:"maxGrade"`
	Enabled  bool `gorm:"default:true" json:"enabled"`
}

func (Quest) TableName() string {
	return "quests"
}

// AppliesToGrade 年级硬过滤
func (q *Quest) AppliesToGrade(grade int) bool {
	return grade >= q.MinGrade && grade <= q.MaxGrade
}

// DefaultQuestPool 首次启动时灌入的基础题库
func DefaultQuestPool() []Quest {
	return []Quest{
		{Code: "shape-sorter", Title: "Shape Sorter", Type: ActivityQuest, PrimarySkills: CategoryList{PatternRecognition, Attention}, EstimatedMinutes: 8, MinGrade: 0, MaxGrade: 2, Enabled: true},
		{Code: "story-builder", Title: "Story Builder", Type: ActivityQuest, PrimarySkills: CategoryList{Language, Creativity}, EstimatedMinutes: 12, MinGrade: 0, MaxGrade: 4, Enabled: true},
		{Code: "number-garden", Title: "Number Garden", Type: ActivityQuest, PrimarySkills: CategoryList{Numeracy, PatternRecognition}, EstimatedMinutes: 10, MinGrade: 1, MaxGrade: 3, Enabled: true},
		{Code: "maze-planner", Title: "Maze Planner", Type: ActivityQuest, PrimarySkills: CategoryList{Planning, CognitiveReasoning}, EstimatedMinutes: 10, MinGrade: 2, MaxGrade: 5, Enabled: true},
		{Code: "memory-market", Title: "Memory Market", Type: ActivityQuest, PrimarySkills: CategoryList{Memory, Attention}, EstimatedMinutes: 8, MinGrade: 1, MaxGrade: 4, Enabled: true},
		{Code: "logic-bridges", Title: "Logic Bridges", Type: ActivityQuest, PrimarySkills: CategoryList{CognitiveReasoning, Planning}, EstimatedMinutes: 15, MinGrade: 4, MaxGrade: 8, Enabled: true},
		{Code: "poet-corner", Title: "Poet's Corner", Type: ActivityQuest, PrimarySkills: CategoryList{Language, SocialEmotional}, EstimatedMinutes: 12, MinGrade: 3, MaxGrade: 8, Enabled: true},
		{Code: "fraction-forest", Title: "Fraction Forest", Type: ActivityQuest, PrimarySkills: CategoryList{Numeracy, CognitiveReasoning}, EstimatedMinutes: 15, MinGrade: 3, MaxGrade: 6, Enabled: true},
		{Code: "mindful-minute", Title: "Mindful Minute", Type: ActivityReflection, PrimarySkills: CategoryList{Metacognition, SocialEmotional}, EstimatedMinutes: 5, MinGrade: 0, MaxGrade: 8, Enabled: true},
		{Code: "invention-lab", Title: "Invention Lab", Type: ActivityQuest, PrimarySkills: CategoryList{Creativity, Planning}, EstimatedMinutes: 20, MinGrade: 4, MaxGrade: 8, Enabled: true},
	}
}

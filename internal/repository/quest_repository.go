package repository

import (
	"talent_insight_backend/internal/model"

	"gorm.io/gorm"
)

type QuestRepository struct {
	DB *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{DB: db}
}

func (r *QuestRepository) Create(quest *model.Quest) error {
	return r.DB.Create(quest).Error
}

func (r *QuestRepository) FindByCode(code string) (*model.Quest, error) {
	var quest model.Quest
	err := r.DB.Where("code = ?", code).First(&quest).Error
	return &quest, err
}

// FindEnabled 候选池，按主键排序保证排序阶段的稳定平局处理
func (r *QuestRepository) FindEnabled() ([]model.Quest, error) {
	var quests []model.Quest
	err := r.DB.Where("enabled = ?", true).Order("id ASC").Find(&quests).Error
	return quests, err
}

func (r *QuestRepository) List(page, limit int) ([]model.Quest, int64, error) {
	var quests []model.Quest
	var total int64

	if err := r.DB.Model(&model.Quest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("id ASC").Offset((page - 1) * limit).Limit(limit).Find(&quests).Error
	return quests, total, err
}

func (r *QuestRepository) Update(quest *model.Quest) error {
	return r.DB.Save(quest).Error
}

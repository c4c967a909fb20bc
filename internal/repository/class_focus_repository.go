package repository

import (
	"talent_insight_backend/internal/model"

	"gorm.io/gorm"
)

type ClassFocusRepository struct {
	DB *gorm.DB
}

func NewClassFocusRepository(db *gorm.DB) *ClassFocusRepository {
	return &ClassFocusRepository{DB: db}
}

// Activate 原子地切换教师的当前班级侧重：同一事务内先停用旧记录再插入新记录，
// 避免出现零条或两条 Active 记录的窗口。
func (r *ClassFocusRepository) Activate(profile *model.ClassFocusProfile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ClassFocusProfile{}).
			Where("teacher_id = ? AND active = ?", profile.TeacherID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		profile.Active = true
		return tx.Create(profile).Error
	})
}

func (r *ClassFocusRepository) FindActiveByTeacher(teacherID uint) (*model.ClassFocusProfile, error) {
	var profile model.ClassFocusProfile
	err := r.DB.Where("teacher_id = ? AND active = ?", teacherID, true).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ClassFocusRepository) Deactivate(teacherID uint) error {
	return r.DB.Model(&model.ClassFocusProfile{}).
		Where("teacher_id = ? AND active = ?", teacherID, true).
		Update("active", false).Error
}

func (r *ClassFocusRepository) History(teacherID uint, limit int) ([]model.ClassFocusProfile, error) {
	var profiles []model.ClassFocusProfile
	err := r.DB.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}

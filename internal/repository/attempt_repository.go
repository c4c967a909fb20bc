package repository

import (
	"talent_insight_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.First(&attempt, id).Error
	return &attempt, err
}

func (r *AttemptRepository) FindByReceipt(receiptID string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.Where("receipt_id = ?", receiptID).First(&attempt).Error
	return &attempt, err
}

// FindByStudent 按完成时间升序返回全部尝试记录
func (r *AttemptRepository) FindByStudent(studentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("student_id = ?", studentID).Order("completed_at ASC, id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindByStudentSince(studentID uint, since time.Time) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("student_id = ? AND completed_at >= ?", studentID, since).
		Order("completed_at ASC, id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

// CountDistinctTypes 该学生覆盖过的活动类型数（多样性门控用）
func (r *AttemptRepository) CountDistinctTypes(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).Where("student_id = ?", studentID).
		Distinct("activity_type").Count(&count).Error
	return count, err
}

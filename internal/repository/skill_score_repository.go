package repository

import (
	"errors"
	"talent_insight_backend/internal/model"

	"gorm.io/gorm"
)

// SkillScoreRepository SkillScore 的数据访问。
// 写路径只被 SkillScoreService 调用（单写者），并发控制在服务层按键串行化。

type SkillScoreRepository struct {
	DB *gorm.DB
}

func NewSkillScoreRepository(db *gorm.DB) *SkillScoreRepository {
	return &SkillScoreRepository{DB: db}
}

func (r *SkillScoreRepository) FindByStudentAndCategory(studentID uint, category model.SkillCategory) (*model.SkillScore, error) {
	var score model.SkillScore
	err := r.DB.Where("student_id = ? AND category = ?", studentID, category).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *SkillScoreRepository) FindByStudent(studentID uint) ([]model.SkillScore, error) {
	var scores []model.SkillScore
	err := r.DB.Where("student_id = ?", studentID).Order("category").Find(&scores).Error
	return scores, err
}

// Save 在事务内落盘一条更新后的技能分。
// 行级更新配合服务层互斥，保证 read-modify-write 不丢历史追加。
func (r *SkillScoreRepository) Save(score *model.SkillScore) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if score.ID == 0 {
			return tx.Create(score).Error
		}
		return tx.Save(score).Error
	})
}

// IsNotFound 屏蔽 gorm 细节，供服务层区分“首次观察”与真实错误
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ScoreMapByStudent 返回 category -> score 的当前映射
func (r *SkillScoreRepository) ScoreMapByStudent(studentID uint) (map[model.SkillCategory]float64, error) {
	scores, err := r.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	out := make(map[model.SkillCategory]float64, len(scores))
	for _, s := range scores {
		out[s.Category] = s.Score
	}
	return out, nil
}

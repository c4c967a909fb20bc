package service

import (
	"context"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// AttemptService 尝试提交入口：落盘记录、摊入技能分、失效派生缓存
type AttemptService struct {
	AttemptRepo  *repository.AttemptRepository
	UserRepo     *repository.UserRepository
	ScoreService *SkillScoreService
	Signals      *TalentSignalService
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	scoreService *SkillScoreService,
	signals *TalentSignalService,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:  attemptRepo,
		UserRepo:     userRepo,
		ScoreService: scoreService,
		Signals:      signals,
	}
}

// SubmitAttemptRequest 提交一次已完成练习
type SubmitAttemptRequest struct {
	ActivityID       string             `json:"activityId" binding:"required"`
	ActivityType     string             `json:"activityType" binding:"required"`
	RawScore         float64            `json:"rawScore"`
	NormalizedScores map[string]float64 `json:"normalizedScores" binding:"required"`
	TimeSpentSec     int                `json:"timeSpentSec"`
	HintsUsed        int                `json:"hintsUsed"`
	CompletedAt      *time.Time         `json:"completedAt"`
}

// SubmitResult 提交响应：不可变的尝试记录与更新后的技能分
type SubmitResult struct {
	Attempt      *model.Attempt     `json:"attempt"`
	SkillUpdates []model.SkillScore `json:"skillUpdates"`
}

// SubmitAttempt 处理一次提交。
// 技能分类在边界处校验，未登记的分类立即拒绝，不深入聚合器。
// 提交时年级被冻结进记录，后续升级不会重分类历史证据。
func (s *AttemptService) SubmitAttempt(ctx context.Context, studentID uint, req SubmitAttemptRequest) (*SubmitResult, error) {
	activityType, err := model.ParseActivityType(req.ActivityType)
	if err != nil {
		return nil, err
	}

	normalized := make(model.ScoreMap, len(req.NormalizedScores))
	for raw, score := range req.NormalizedScores {
		category, err := model.ParseSkillCategory(raw)
		if err != nil {
			return nil, err
		}
		normalized[category] = score
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	completedAt := time.Now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	attempt := &model.Attempt{
		ReceiptID:        model.GenerateUUID(),
		StudentID:        studentID,
		ActivityID:       req.ActivityID,
		ActivityType:     activityType,
		RawScore:         req.RawScore,
		NormalizedScores: normalized,
		TimeSpentSec:     req.TimeSpentSec,
		HintsUsed:        req.HintsUsed,
		GradeAtAttempt:   student.Grade,
		CompletedAt:      completedAt,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	updates, err := s.ScoreService.AggregateAttemptIntoSkills(attempt, nil)
	if err != nil {
		return nil, err
	}

	s.Signals.Invalidate(ctx, studentID)

	return &SubmitResult{Attempt: attempt, SkillUpdates: updates}, nil
}

func (s *AttemptService) GetStudentAttempts(studentID uint) ([]model.Attempt, error) {
	return s.AttemptRepo.FindByStudent(studentID)
}

// GetAttemptByReceipt 按提交凭据查单条记录，只允许本人查看
func (s *AttemptService) GetAttemptByReceipt(studentID uint, receiptID string) (*model.Attempt, error) {
	attempt, err := s.AttemptRepo.FindByReceipt(receiptID)
	if err != nil {
		return nil, err
	}
	// 不泄露他人记录的存在性
	if attempt.StudentID != studentID {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

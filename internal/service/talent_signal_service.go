package service

import (
	"context"
	"encoding/json"
	"fmt"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TalentSignalService 从技能分与尝试记录确定性地派生天赋信号。
// 没有任何机器学习成分：每个展示数字都必须能从持久化记录重新推导出来，
// 这是该组件的核心正确性要求。
type TalentSignalService struct {
	AttemptRepo *repository.AttemptRepository
	ScoreRepo   *repository.SkillScoreRepository
	Redis       *redis.Client
	Cfg         *config.Config
}

func NewTalentSignalService(
	attemptRepo *repository.AttemptRepository,
	scoreRepo *repository.SkillScoreRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *TalentSignalService {
	return &TalentSignalService{
		AttemptRepo: attemptRepo,
		ScoreRepo:   scoreRepo,
		Redis:       rdb,
		Cfg:         cfg,
	}
}

func signalCacheKey(studentID uint) string {
	return fmt.Sprintf("insight:signals:%d", studentID)
}

// GenerateSignals 生成候选信号列表（目录顺序，固定长度）。
// 派生视图缓存在 Redis；缓存不可用时直接现算，绝不因缓存失败报错。
func (s *TalentSignalService) GenerateSignals(ctx context.Context, studentID uint) ([]model.TalentSignal, error) {
	key := signalCacheKey(studentID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
			var signals []model.TalentSignal
			if err := json.Unmarshal(cached, &signals); err == nil {
				return signals, nil
			}
		}
	}

	signals, err := s.deriveSignals(studentID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		payload, err := json.Marshal(signals)
		if err == nil {
			ttl := time.Duration(s.Cfg.Insight.SignalCacheMinutes) * time.Minute
			if err := s.Redis.Set(ctx, key, payload, ttl).Err(); err != nil {
				logger.Log.Warn("failed to cache talent signals", zap.Error(err))
			}
		}
	}

	return signals, nil
}

// Invalidate 新尝试提交后使派生视图缓存失效
func (s *TalentSignalService) Invalidate(ctx context.Context, studentID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, signalCacheKey(studentID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate signal cache", zap.Error(err))
	}
}

func (s *TalentSignalService) deriveSignals(studentID uint) ([]model.TalentSignal, error) {
	attempts, err := s.AttemptRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	scores, err := s.ScoreRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return DeriveSignals(model.SignalCatalog(), attempts, scores), nil
}

// DeriveSignals 纯函数形式的信号推导，便于直接对记录断言。
// observedCount = 依赖分类的历史观察点总数；
// contextsCount = 为依赖分类贡献过证据的去重活动数；
// stability     = 1 − 归一化的得分方差。
func DeriveSignals(catalog []model.SignalDefinition, attempts []model.Attempt, scores []model.SkillScore) []model.TalentSignal {
	scoreByCategory := make(map[model.SkillCategory]*model.SkillScore, len(scores))
	for i := range scores {
		scoreByCategory[scores[i].Category] = &scores[i]
	}

	signals := make([]model.TalentSignal, 0, len(catalog))
	for _, def := range catalog {
		observed := 0
		var points []float64
		for _, category := range def.Categories {
			if sc, ok := scoreByCategory[category]; ok {
				observed += len(sc.History)
				for _, p := range sc.History {
					points = append(points, p.Score)
				}
			}
		}

		contexts := distinctContexts(attempts, def.Categories)

		signal := model.TalentSignal{
			ID:              def.ID,
			Name:            def.Name,
			Band:            model.BandEmerging,
			Explanation:     def.Explanation,
			ObservedCount:   observed,
			ContextsCount:   contexts,
			StabilityScore:  StabilityScore(points),
			SupportActions:  def.SupportActions,
			MinObservations: def.MinObservations,
			MinContexts:     def.MinContexts,
			MinStability:    def.MinStability,
		}
		signal.EvidenceSummary = fmt.Sprintf("Observed %d times across %d different activities", observed, contexts)
		signals = append(signals, signal)
	}
	return signals
}

// distinctContexts 统计对给定分类集贡献过归一化得分的去重活动
func distinctContexts(attempts []model.Attempt, categories []model.SkillCategory) int {
	wanted := make(map[model.SkillCategory]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	seen := make(map[string]bool)
	for _, a := range attempts {
		for category := range a.NormalizedScores {
			if wanted[category] {
				seen[a.ActivityID] = true
				break
			}
		}
	}
	return len(seen)
}

// StabilityScore 得分方差的归一化倒数，取值 [0,1]。
// [0,100] 上方差最大为 2500（极端二值分布），以此归一。
// 观察不足两次时没有稳定性证据，返回 0。
func StabilityScore(points []float64) float64 {
	if len(points) < 2 {
		return 0
	}

	var sum float64
	for _, p := range points {
		sum += p
	}
	mean := sum / float64(len(points))

	var variance float64
	for _, p := range points {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(len(points))

	normalized := variance / 2500
	if normalized > 1 {
		normalized = 1
	}
	return 1 - normalized
}

// DistinctBranches 学生已有技能分覆盖的技能大类数（多样性门控输入）
func DistinctBranches(scores []model.SkillScore) int {
	branches := make(map[model.SkillBranch]bool)
	for _, sc := range scores {
		branches[sc.Category.Branch()] = true
	}
	return len(branches)
}

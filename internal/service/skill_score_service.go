package service

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/pkg/logger"
	"talent_insight_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// scoreStripes 按 (学生, 分类) 串行化写入的互斥锁分片数
const scoreStripes = 64

// SkillScoreService 技能分聚合器，SkillScore 的唯一写者。
// 同一 (学生, 分类) 的并发提交是 read-modify-write 竞争，
// 不串行化会静默丢失证据/历史追加。
type SkillScoreService struct {
	ScoreRepo *repository.SkillScoreRepository
	Cfg       *config.Config

	locks [scoreStripes]sync.Mutex
}

func NewSkillScoreService(scoreRepo *repository.SkillScoreRepository, cfg *config.Config) *SkillScoreService {
	return &SkillScoreService{
		ScoreRepo: scoreRepo,
		Cfg:       cfg,
	}
}

func (s *SkillScoreService) breakpoints() model.LevelBreakpoints {
	return model.LevelBreakpoints{
		Advanced:   s.Cfg.Insight.AdvancedMin,
		Proficient: s.Cfg.Insight.ProficientMin,
		Developing: s.Cfg.Insight.DevelopingMin,
	}
}

func (s *SkillScoreService) stripe(studentID uint, category model.SkillCategory) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d/%s", studentID, category)
	return &s.locks[h.Sum32()%scoreStripes]
}

// UpdateSkillScore 把一次观察并入 (学生, 分类) 的技能分。
// 语义是“最新观察生效”而非滑动平均，完整轨迹由 History 保留。
func (s *SkillScoreService) UpdateSkillScore(studentID uint, category model.SkillCategory, newScore float64, evidenceLabel string) (*model.SkillScore, error) {
	if _, err := model.ParseSkillCategory(string(category)); err != nil {
		return nil, err
	}

	if newScore < 0 || newScore > 100 {
		// 上游归一化可能瞬时越界：钳位继续，绝不因此丢弃整次尝试
		logger.Log.Warn("normalized score out of range, clamping",
			zap.Uint("studentId", studentID),
			zap.String("category", string(category)),
			zap.Float64("score", newScore))
		monitoring.ScoreClampCounter.Inc()
		newScore = model.ClampScore(newScore)
	}

	mu := s.stripe(studentID, category)
	mu.Lock()
	defer mu.Unlock()

	score, err := s.ScoreRepo.FindByStudentAndCategory(studentID, category)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, err
		}
		score = &model.SkillScore{
			StudentID: studentID,
			Category:  category,
			Evidence:  model.EvidenceList{},
			History:   model.ScoreHistory{},
		}
	}

	ApplyObservation(score, newScore, evidenceLabel, time.Now(), s.breakpoints(), s.Cfg.Insight.TrendDelta)

	if err := s.ScoreRepo.Save(score); err != nil {
		return nil, err
	}
	return score, nil
}

// ApplyObservation 将一次观察写入内存中的 SkillScore。
// 纯内存变换，抽出来便于单测；持久化与加锁由调用方负责。
func ApplyObservation(score *model.SkillScore, newScore float64, evidenceLabel string, now time.Time, bp model.LevelBreakpoints, trendDelta float64) {
	newScore = model.ClampScore(newScore)

	score.Score = newScore
	score.Level = model.LevelForScore(newScore, bp)
	score.MaturityBand = model.MaturityBandForScore(newScore, bp)
	score.Evidence = append(score.Evidence, evidenceLabel)
	score.History = append(score.History, model.ScorePoint{At: now, Score: newScore})
	score.Trend = classifyTrend(score.History, trendDelta)
}

// classifyTrend 比较最近两个历史点
func classifyTrend(history model.ScoreHistory, delta float64) model.Trend {
	if len(history) < 2 {
		return model.TrendStable
	}
	latest := history[len(history)-1].Score
	previous := history[len(history)-2].Score
	switch {
	case latest-previous > delta:
		return model.TrendImproving
	case previous-latest > delta:
		return model.TrendNeedsAttention
	default:
		return model.TrendStable
	}
}

// AggregateAttemptIntoSkills 把一次已完成尝试的归一化得分摊入各技能分。
// targetCategories 为空时按归一化得分覆盖的全部分类处理（排序保证确定性）。
func (s *SkillScoreService) AggregateAttemptIntoSkills(attempt *model.Attempt, targetCategories []model.SkillCategory) ([]model.SkillScore, error) {
	categories := targetCategories
	if len(categories) == 0 {
		for c := range attempt.NormalizedScores {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	}

	label := EvidenceLabel(attempt)

	var updated []model.SkillScore
	for _, category := range categories {
		normalized, ok := attempt.NormalizedScores[category]
		if !ok {
			continue
		}
		score, err := s.UpdateSkillScore(attempt.StudentID, category, normalized, label)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *score)
	}
	return updated, nil
}

// EvidenceLabel 人类可读的证据来源标签，例如 "Assessment: pattern-match-01"
func EvidenceLabel(attempt *model.Attempt) string {
	var kind string
	switch attempt.ActivityType {
	case model.ActivityAssessment:
		kind = "Assessment"
	case model.ActivityQuest:
		kind = "Quest"
	case model.ActivityReflection:
		kind = "Reflection"
	default:
		kind = "Activity"
	}
	return fmt.Sprintf("%s: %s", kind, attempt.ActivityID)
}

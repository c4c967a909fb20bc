package service

import (
	"math"
	"sort"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
)

// GoalReadinessService 把当前技能分投影到目标的技能权重向量上
type GoalReadinessService struct {
	ScoreRepo *repository.SkillScoreRepository
	Cfg       *config.Config
}

func NewGoalReadinessService(scoreRepo *repository.SkillScoreRepository, cfg *config.Config) *GoalReadinessService {
	return &GoalReadinessService{ScoreRepo: scoreRepo, Cfg: cfg}
}

// CalculateGoalReadiness 加权平均，返回 [0,100] 整数。
// 未测过的技能按中性默认分 50 计（证据缺失不是零分）。
// 未登记的目标（自定义/自由文本）退化为已测技能的未加权平均，没有任何技能分时为 0。
func (s *GoalReadinessService) CalculateGoalReadiness(goalTitle string, skillScores map[model.SkillCategory]float64) int {
	return CalculateGoalReadiness(goalTitle, skillScores, s.Cfg.Insight.DefaultSkillScore)
}

// CalculateGoalReadinessForStudent 从仓库加载当前技能分后计算
func (s *GoalReadinessService) CalculateGoalReadinessForStudent(studentID uint, goalTitle string) (int, error) {
	scores, err := s.ScoreRepo.ScoreMapByStudent(studentID)
	if err != nil {
		return 0, err
	}
	return s.CalculateGoalReadiness(goalTitle, scores), nil
}

func CalculateGoalReadiness(goalTitle string, skillScores map[model.SkillCategory]float64, defaultScore float64) int {
	weights, ok := model.GoalWeightMap(goalTitle)
	if !ok {
		// MissingGoalMap 是可恢复情形，不是错误
		if len(skillScores) == 0 {
			return 0
		}
		var sum float64
		for _, score := range skillScores {
			sum += score
		}
		return clampReadiness(math.Round(sum / float64(len(skillScores))))
	}

	var weightedSum, weightTotal float64
	for category, weight := range weights {
		score, measured := skillScores[category]
		if !measured {
			score = defaultScore
		}
		weightedSum += weight * score
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 0
	}
	return clampReadiness(math.Round(weightedSum / weightTotal))
}

func clampReadiness(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// SkillSuggestion 针对某目标的技能提升建议
type SkillSuggestion struct {
	Category     model.SkillCategory `json:"category"`
	Weight       float64             `json:"weight"`
	CurrentScore float64             `json:"currentScore"`
	Priority     float64             `json:"priority"`
}

// GetSkillImprovementSuggestions 按 权重 ×（100 − 当前分）降序排列。
// 与任务推荐器用同一个“重要且薄弱优先”启发式，两处有意保持一致。
func (s *GoalReadinessService) GetSkillImprovementSuggestions(goalTitle string, skillScores map[model.SkillCategory]float64) []SkillSuggestion {
	return SkillImprovementSuggestions(goalTitle, skillScores, s.Cfg.Insight.DefaultSkillScore)
}

func SkillImprovementSuggestions(goalTitle string, skillScores map[model.SkillCategory]float64, defaultScore float64) []SkillSuggestion {
	weights, ok := model.GoalWeightMap(goalTitle)
	if !ok {
		// 未登记目标：所有已测技能按相同权重参与排序
		weights = make(map[model.SkillCategory]float64, len(skillScores))
		for category := range skillScores {
			weights[category] = 1
		}
	}

	suggestions := make([]SkillSuggestion, 0, len(weights))
	for category, weight := range weights {
		score, measured := skillScores[category]
		if !measured {
			score = defaultScore
		}
		suggestions = append(suggestions, SkillSuggestion{
			Category:     category,
			Weight:       weight,
			CurrentScore: score,
			Priority:     weight * (100 - score),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority > suggestions[j].Priority
		}
		return suggestions[i].Category < suggestions[j].Category
	})
	return suggestions
}

package service

import (
	"errors"
	"sort"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

// QuestService 练习任务推荐：多因子加权排序 + 班级侧重管理
type QuestService struct {
	QuestRepo   *repository.QuestRepository
	ScoreRepo   *repository.SkillScoreRepository
	AttemptRepo *repository.AttemptRepository
	FocusRepo   *repository.ClassFocusRepository
	Cfg         *config.Config
}

func NewQuestService(
	questRepo *repository.QuestRepository,
	scoreRepo *repository.SkillScoreRepository,
	attemptRepo *repository.AttemptRepository,
	focusRepo *repository.ClassFocusRepository,
	cfg *config.Config,
) *QuestService {
	return &QuestService{
		QuestRepo:   questRepo,
		ScoreRepo:   scoreRepo,
		AttemptRepo: attemptRepo,
		FocusRepo:   focusRepo,
		Cfg:         cfg,
	}
}

// AssignmentParams 推荐请求参数
type AssignmentParams struct {
	StudentID  uint
	Grade      int
	QuestCount int
	// Types 可选：仅保留这些活动类型的任务
	Types []model.ActivityType
	// Intent 可选：教学意向标签
	Intent model.PedagogicalIntent
	// TeacherID 可选：查找生效中的班级侧重
	TeacherID uint
}

// RankedQuest 候选任务与其最终优先级
type RankedQuest struct {
	Quest    model.Quest `json:"quest"`
	Priority float64     `json:"priority"`
}

// SelectQuestsForAssignment 为学生/班级排序候选任务。
// 空结果表示“无可推荐”，不是错误，调用方必须与失败区分。
func (s *QuestService) SelectQuestsForAssignment(params AssignmentParams) ([]RankedQuest, error) {
	pool, err := s.QuestRepo.FindEnabled()
	if err != nil {
		return nil, err
	}

	skillScores, err := s.ScoreRepo.ScoreMapByStudent(params.StudentID)
	if err != nil {
		return nil, err
	}

	weakSignals, err := s.recentWeakSignals(params.StudentID)
	if err != nil {
		return nil, err
	}

	var boosts model.BoostMap
	if params.TeacherID > 0 {
		boosts = s.activeBoosts(params.TeacherID, params.Grade)
	}

	ranked := RankQuests(pool, params, skillScores, weakSignals, boosts, &s.Cfg.Insight)
	monitoring.RecommendationCounter.Add(float64(len(ranked)))
	return ranked, nil
}

// RankQuests 纯排序核心：相同输入必然得到相同输出（含平局顺序）。
// 每个候选按以下步骤计算：
//  1. 年级硬过滤、可选类型过滤；
//  2. 基础分 = Σ 课程侧重 ×（100 − 当前分，默认 50）+ 0.3 × 近期薄弱信号数；
//  3. 班级侧重加成只对第一个命中的主技能生效一次，使用前再次钳位；
//  4. 教学意向命中则 ×1.2；
//  5. 稳定排序取前 QuestCount 条，平局保持题库顺序。
func RankQuests(
	pool []model.Quest,
	params AssignmentParams,
	skillScores map[model.SkillCategory]float64,
	weakSignals map[model.SkillCategory]int,
	boosts model.BoostMap,
	ic *config.InsightConfig,
) []RankedQuest {
	typeFilter := make(map[model.ActivityType]bool, len(params.Types))
	for _, t := range params.Types {
		typeFilter[t] = true
	}

	intentSkills := make(map[model.SkillCategory]bool)
	if params.Intent != "" {
		for _, c := range model.IntentSkills(params.Intent) {
			intentSkills[c] = true
		}
	}

	ranked := make([]RankedQuest, 0, len(pool))
	for _, quest := range pool {
		if !quest.AppliesToGrade(params.Grade) {
			continue
		}
		if len(typeFilter) > 0 && !typeFilter[quest.Type] {
			continue
		}

		var base float64
		for _, skill := range quest.PrimarySkills {
			score, measured := skillScores[skill]
			if !measured {
				score = ic.DefaultSkillScore
			}
			base += model.EmphasisWeight(params.Grade, skill)*(100-score) +
				ic.WeakSignalWeight*float64(weakSignals[skill])
		}

		final := base

		// 班级侧重：仅第一个命中的主技能生效，不跨技能累加
		for _, skill := range quest.PrimarySkills {
			if boost, ok := boosts[skill]; ok {
				final *= 1 + model.ClampBoost(boost, ic.FocusBoostCap)
				break
			}
		}

		if len(intentSkills) > 0 {
			for _, skill := range quest.PrimarySkills {
				if intentSkills[skill] {
					final *= ic.IntentBoost
					break
				}
			}
		}

		ranked = append(ranked, RankedQuest{Quest: quest, Priority: final})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})

	if params.QuestCount > 0 && len(ranked) > params.QuestCount {
		ranked = ranked[:params.QuestCount]
	}
	return ranked
}

// recentWeakSignals 统计配置窗口内低于 DevelopingMin 的归一化得分次数。
// 独立于聚合后的当前分：近期反复受挫即使总分尚可也应提高紧迫度。
func (s *QuestService) recentWeakSignals(studentID uint) (map[model.SkillCategory]int, error) {
	since := time.Now().AddDate(0, 0, -s.Cfg.Insight.WeakSignalWindowDays)
	attempts, err := s.AttemptRepo.FindByStudentSince(studentID, since)
	if err != nil {
		return nil, err
	}

	weak := make(map[model.SkillCategory]int)
	for _, attempt := range attempts {
		for category, score := range attempt.NormalizedScores {
			if score < s.Cfg.Insight.DevelopingMin {
				weak[category]++
			}
		}
	}
	return weak, nil
}

// activeBoosts 取教师当前生效的班级侧重；年级范围或时间窗不匹配时视为无侧重
func (s *QuestService) activeBoosts(teacherID uint, grade int) model.BoostMap {
	profile, err := s.FocusRepo.FindActiveByTeacher(teacherID)
	if err != nil {
		return nil
	}
	if !profile.InWindow(time.Now()) {
		return nil
	}
	if profile.Grade != nil && *profile.Grade != grade {
		return nil
	}
	return profile.Boosts
}

// SetClassFocusRequest 教师设定班级侧重的请求结构
type SetClassFocusRequest struct {
	Grade    *int               `json:"grade"`
	StartsAt *time.Time         `json:"startsAt"`
	EndsAt   *time.Time         `json:"endsAt"`
	Boosts   map[string]float64 `json:"boosts" binding:"required"`
}

// SetClassFocus 创建并激活新的班级侧重，旧记录在同一事务中停用。
// 加成在写入前钳位到 [0, cap]；使用处还会再钳一次。
func (s *QuestService) SetClassFocus(teacherID uint, req SetClassFocusRequest) (*model.ClassFocusProfile, error) {
	boosts := make(model.BoostMap, len(req.Boosts))
	for raw, boost := range req.Boosts {
		category, err := model.ParseSkillCategory(raw)
		if err != nil {
			return nil, err
		}
		boosts[category] = model.ClampBoost(boost, s.Cfg.Insight.FocusBoostCap)
	}

	profile := &model.ClassFocusProfile{
		TeacherID: teacherID,
		Grade:     req.Grade,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Boosts:    boosts,
	}
	if err := s.FocusRepo.Activate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *QuestService) GetActiveClassFocus(teacherID uint) (*model.ClassFocusProfile, error) {
	profile, err := s.FocusRepo.FindActiveByTeacher(teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *QuestService) ClearClassFocus(teacherID uint) error {
	return s.FocusRepo.Deactivate(teacherID)
}

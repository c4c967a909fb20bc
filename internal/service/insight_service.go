package service

import (
	"context"
	"fmt"
	"sort"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
)

// InsightState 面向家长的展示状态。
// “未解锁”与“已生成但为空”是不同状态，混淆二者属于产品信任缺陷。
type InsightState string

const (
	StateLocked InsightState = "not_yet_unlocked"
	StateEmpty  InsightState = "generated_empty"
	StateReady  InsightState = "ready"
)

// InsightService 组合门控与信号，产出家长侧摘要
type InsightService struct {
	AttemptRepo *repository.AttemptRepository
	ScoreRepo   *repository.SkillScoreRepository
	Signals     *TalentSignalService
	Gate        *EvidenceGateService
	Cfg         *config.Config
}

func NewInsightService(
	attemptRepo *repository.AttemptRepository,
	scoreRepo *repository.SkillScoreRepository,
	signals *TalentSignalService,
	gate *EvidenceGateService,
	cfg *config.Config,
) *InsightService {
	return &InsightService{
		AttemptRepo: attemptRepo,
		ScoreRepo:   scoreRepo,
		Signals:     signals,
		Gate:        gate,
		Cfg:         cfg,
	}
}

// ConfidentInsights 信号视图的门控摘要
type ConfidentInsights struct {
	GlobalGateMet       bool `json:"globalGateMet"`
	DiversityGateMet    bool `json:"diversityGateMet"`
	TotalActivities     int  `json:"totalActivities"`
	RemainingActivities int  `json:"remainingActivities"`
}

// TalentSignalView 家长可见的天赋信号视图
type TalentSignalView struct {
	State             InsightState         `json:"state"`
	ConfidentInsights ConfidentInsights    `json:"confidentInsights"`
	Unlocked          []model.TalentSignal `json:"unlocked"`
	LockedCount       int                  `json:"lockedCount"`
}

func (s *InsightService) gateInputs(ctx context.Context, studentID uint) (total int, typeCount int, branchCount int, signals []model.TalentSignal, err error) {
	totalCount, err := s.AttemptRepo.CountByStudent(studentID)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	types, err := s.AttemptRepo.CountDistinctTypes(studentID)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	scores, err := s.ScoreRepo.FindByStudent(studentID)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	sigs, err := s.Signals.GenerateSignals(ctx, studentID)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	return int(totalCount), int(types), DistinctBranches(scores), sigs, nil
}

// GetTalentSignals 门控后的信号视图
func (s *InsightService) GetTalentSignals(ctx context.Context, studentID uint) (*TalentSignalView, error) {
	total, typeCount, branchCount, signals, err := s.gateInputs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	globalMet := s.Gate.CheckGlobalGate(total)
	diversityMet := s.Gate.CheckDiversityGate(typeCount, branchCount)
	gated := s.Gate.GateTalentSignals(signals, total)

	view := &TalentSignalView{
		ConfidentInsights: ConfidentInsights{
			GlobalGateMet:       globalMet,
			DiversityGateMet:    diversityMet,
			TotalActivities:     total,
			RemainingActivities: s.Gate.RemainingActivities(total),
		},
		Unlocked:    gated.Unlocked,
		LockedCount: len(gated.Locked),
	}

	switch {
	case !globalMet || !diversityMet:
		view.State = StateLocked
		// 未解锁时不透出任何信号内容
		view.Unlocked = []model.TalentSignal{}
	case len(gated.Unlocked) == 0:
		view.State = StateEmpty
	default:
		view.State = StateReady
	}
	return view, nil
}

// GentleObservationsView 轻量观察：全局门控通过且至少一个信号解锁时生成
type GentleObservationsView struct {
	State               InsightState `json:"state"`
	Observations        []string     `json:"observations"`
	RemainingActivities int          `json:"remainingActivities"`
}

func (s *InsightService) GetGentleObservations(ctx context.Context, studentID uint) (*GentleObservationsView, error) {
	signalView, err := s.GetTalentSignals(ctx, studentID)
	if err != nil {
		return nil, err
	}

	view := &GentleObservationsView{
		Observations:        []string{},
		RemainingActivities: signalView.ConfidentInsights.RemainingActivities,
	}

	if signalView.State != StateReady {
		view.State = signalView.State
		return view, nil
	}

	view.State = StateReady
	for _, sig := range signalView.Unlocked {
		view.Observations = append(view.Observations,
			fmt.Sprintf("%s: %s (%s)", sig.Name, sig.Explanation, sig.EvidenceSummary))
	}
	return view, nil
}

// ProgressNarrativeView 进度叙述：比点状信号需要更长的活动基线
type ProgressNarrativeView struct {
	State               InsightState `json:"state"`
	Narrative           string       `json:"narrative"`
	RemainingActivities int          `json:"remainingActivities"`
}

func (s *InsightService) GetProgressNarrative(ctx context.Context, studentID uint) (*ProgressNarrativeView, error) {
	signalView, err := s.GetTalentSignals(ctx, studentID)
	if err != nil {
		return nil, err
	}

	total := signalView.ConfidentInsights.TotalActivities
	view := &ProgressNarrativeView{}

	if signalView.State != StateReady || total < s.Cfg.Insight.NarrativeMin {
		view.State = StateLocked
		if signalView.State == StateEmpty {
			view.State = StateEmpty
		}
		remaining := s.Cfg.Insight.NarrativeMin - total
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingActivities = remaining
		return view, nil
	}

	scores, err := s.ScoreRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	view.State = StateReady
	view.Narrative = composeNarrative(total, scores, signalView.Unlocked)
	return view, nil
}

// composeNarrative 从持久化记录确定性地拼装叙述文本
func composeNarrative(total int, scores []model.SkillScore, unlocked []model.TalentSignal) string {
	improving := 0
	declining := 0
	var strongest *model.SkillScore
	for i := range scores {
		switch scores[i].Trend {
		case model.TrendImproving:
			improving++
		case model.TrendNeedsAttention:
			declining++
		}
		if strongest == nil || scores[i].Score > strongest.Score {
			strongest = &scores[i]
		}
	}

	narrative := fmt.Sprintf("Across %d completed activities, we are tracking %d skill areas.", total, len(scores))
	if strongest != nil {
		narrative += fmt.Sprintf(" The strongest area so far is %s (%s).", strongest.Category, strongest.Level)
	}
	if improving > 0 {
		narrative += fmt.Sprintf(" %d area(s) show an improving trend.", improving)
	}
	if declining > 0 {
		narrative += fmt.Sprintf(" %d area(s) could use some gentle attention.", declining)
	}
	if len(unlocked) > 0 {
		names := make([]string, 0, len(unlocked))
		for _, sig := range unlocked {
			names = append(names, sig.Name)
		}
		sort.Strings(names)
		narrative += fmt.Sprintf(" Emerging strengths: %s.", joinNames(names))
	}
	return narrative
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " and " + names[len(names)-1]
}

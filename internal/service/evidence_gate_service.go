package service

import (
	"sort"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/pkg/monitoring"
)

// EvidenceGateService 判定哪些结论的证据强度足以展示给非专业用户。
// 三个门控彼此独立，全部是聚合计数上的纯函数。
type EvidenceGateService struct {
	Cfg *config.Config
}

func NewEvidenceGateService(cfg *config.Config) *EvidenceGateService {
	return &EvidenceGateService{Cfg: cfg}
}

// CheckGlobalGate 全局门控：活动总量达到阈值前不展示任何确信洞察
func (s *EvidenceGateService) CheckGlobalGate(totalActivityCount int) bool {
	met := totalActivityCount >= s.Cfg.Insight.GlobalMinActivities
	monitoring.ObserveGate("global", met)
	return met
}

// RemainingActivities 距离全局门控还差多少次活动
func (s *EvidenceGateService) RemainingActivities(totalActivityCount int) int {
	remaining := s.Cfg.Insight.GlobalMinActivities - totalActivityCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckDiversityGate 多样性门控：证据广度不足时拒绝下结论
// （同一个游戏玩十遍不构成跨场景证据）
func (s *EvidenceGateService) CheckDiversityGate(activityTypeCount, skillBranchCount int) bool {
	met := activityTypeCount >= s.Cfg.Insight.MinActivityTypes &&
		skillBranchCount >= s.Cfg.Insight.MinSkillBranches
	monitoring.ObserveGate("diversity", met)
	return met
}

// GateResult 门控输出：解锁与未解锁的信号集合
type GateResult struct {
	Unlocked []model.TalentSignal `json:"unlocked"`
	Locked   []model.TalentSignal `json:"locked"`
}

// GateTalentSignals 按各信号自带的门槛切分候选集。
// 解锁集按 置信档 降序、observedCount 降序、ID 升序排序，输出完全确定。
func (s *EvidenceGateService) GateTalentSignals(signals []model.TalentSignal, totalActivityCount int) GateResult {
	result := GateResult{
		Unlocked: []model.TalentSignal{},
		Locked:   []model.TalentSignal{},
	}

	globalMet := totalActivityCount >= s.Cfg.Insight.GlobalMinActivities

	for _, sig := range signals {
		if globalMet && signalUnlocked(sig) {
			sig.Band = s.confidenceBand(sig)
			result.Unlocked = append(result.Unlocked, sig)
		} else {
			sig.Band = model.BandEmerging
			result.Locked = append(result.Locked, sig)
		}
	}

	sort.SliceStable(result.Unlocked, func(i, j int) bool {
		a, b := result.Unlocked[i], result.Unlocked[j]
		if a.Band.Rank() != b.Band.Rank() {
			return a.Band.Rank() > b.Band.Rank()
		}
		if a.ObservedCount != b.ObservedCount {
			return a.ObservedCount > b.ObservedCount
		}
		return a.ID < b.ID
	})

	monitoring.ObserveGate("signal", len(result.Unlocked) > 0)
	return result
}

// signalUnlocked 逐项达标判定：观察数、场景数、稳定度
func signalUnlocked(sig model.TalentSignal) bool {
	return sig.ObservedCount >= sig.MinObservations &&
		sig.ContextsCount >= sig.MinContexts &&
		sig.StabilityScore >= sig.MinStability
}

// confidenceBand 在已解锁的前提下，用更严格的阈值倍数分档。
// 稳定度上限为 1，放大后的阈值在 1 处截断。
func (s *EvidenceGateService) confidenceBand(sig model.TalentSignal) model.ConfidenceBand {
	if s.meetsMultiple(sig, s.Cfg.Insight.StrongMultiplier) {
		return model.BandStrong
	}
	if s.meetsMultiple(sig, s.Cfg.Insight.ModerateMultiplier) {
		return model.BandModerate
	}
	return model.BandEmerging
}

func (s *EvidenceGateService) meetsMultiple(sig model.TalentSignal, mult float64) bool {
	stabilityFloor := sig.MinStability * mult
	if stabilityFloor > 1 {
		stabilityFloor = 1
	}
	return float64(sig.ObservedCount) >= float64(sig.MinObservations)*mult &&
		float64(sig.ContextsCount) >= float64(sig.MinContexts)*mult &&
		sig.StabilityScore >= stabilityFloor
}

package tournament

import (
	"math"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Score computes a participant's tournament score from their verified shares.
// The base score (method-dependent) is scaled by the tournament multiplier and
// the participant's effective bonus multiplier, then rounded half away from
// zero. Recomputing over the same shares always yields the same score.
func Score(t domain.TournamentDefinition, m domain.BonusMultipliers, shares []domain.ShareEvent) int {
	base := baseScore(t.ScoringMethod, shares)
	return int(math.Round(base * t.BonusMultiplier * m.Total()))
}

// baseScore aggregates verified shares per scoring method. Unverified shares
// never count.
func baseScore(method domain.ScoringMethod, shares []domain.ShareEvent) float64 {
	var count, xp, points int
	for _, share := range shares {
		if !share.Verified {
			continue
		}
		count++
		xp += share.XPAwarded
		points += share.PointsAwarded
	}

	switch method {
	case domain.ScoringSharesCount:
		return float64(count)
	case domain.ScoringXPEarned:
		return float64(xp)
	case domain.ScoringPointsEarned:
		return float64(points)
	case domain.ScoringWeightedScore:
		return WeightedScoreXPFactor*float64(xp) + WeightedScorePointsFactor*float64(points)
	default:
		return 0
	}
}

// ShareReward is the XP and points credited for a single verified share after
// all reward-time bonuses.
type ShareReward struct {
	XP     int `json:"xp"`
	Points int `json:"points"`
}

// RewardForShare computes the reward for one verified share. Bonuses are
// additive on top of the share's base reward and rounded once at the end:
// the tournament multiplier surplus, a performance bonus tiered by the
// participant's current rank percentile, a streak bonus from the third unique
// participation day onward, and a flat event bonus for featured or
// special-event tournaments.
func RewardForShare(t *domain.TournamentDefinition, share domain.ShareEvent, rank, fieldSize, uniqueDays int) ShareReward {
	xp := float64(share.XPAwarded)
	points := float64(share.PointsAwarded)

	if t.BonusMultiplier > 1.0 {
		xp += float64(share.XPAwarded) * (t.BonusMultiplier - 1.0)
		points += float64(share.PointsAwarded) * (t.BonusMultiplier - 1.0)
	}

	if xpPct, ptsPct, ok := performanceBonus(rank, fieldSize); ok {
		xp += float64(share.XPAwarded) * xpPct
		points += float64(share.PointsAwarded) * ptsPct
	}

	if uniqueDays >= StreakMinUniqueDays {
		xp += float64(StreakXPPerDay * uniqueDays)
		points += float64(StreakPointsPerDay * uniqueDays)
	}

	if t.HasEventBonus() {
		xp += float64(share.XPAwarded) * EventXPBonus
		points += float64(share.PointsAwarded) * EventPointsBonus
	}

	return ShareReward{XP: int(math.Round(xp)), Points: int(math.Round(points))}
}

// performanceBonus returns the XP and points bonus percentages for a rank
// within a field. Unranked participants and empty fields earn nothing.
func performanceBonus(rank, fieldSize int) (float64, float64, bool) {
	if rank <= 0 || fieldSize <= 0 {
		return 0, 0, false
	}
	percentile := float64(rank) / float64(fieldSize) * 100

	switch {
	case percentile <= PerfTopTierPercentile:
		return PerfTopTierXPBonus, PerfTopTierPointsBonus, true
	case percentile <= PerfMidTierPercentile:
		return PerfMidTierXPBonus, PerfMidTierPointsBonus, true
	case percentile <= PerfLowTierPercentile:
		return PerfLowTierXPBonus, PerfLowTierPointsBonus, true
	default:
		return 0, 0, false
	}
}

// performanceMultiplier mirrors the performance bonus tiers as a participant
// multiplier component.
func performanceMultiplier(rank, fieldSize int) float64 {
	if rank <= 0 || fieldSize <= 0 {
		return 1.0
	}
	percentile := float64(rank) / float64(fieldSize) * 100

	switch {
	case percentile <= PerfTopTierPercentile:
		return PerfTopMultiplier
	case percentile <= PerfMidTierPercentile:
		return PerfMidMultiplier
	case percentile <= PerfLowTierPercentile:
		return PerfLowMultiplier
	default:
		return 1.0
	}
}

// streakMultiplier grows with unique participation days, capped
func streakMultiplier(uniqueDays int) float64 {
	if uniqueDays < StreakMinUniqueDays {
		return 1.0
	}
	return math.Min(1.0+StreakMultiplierStep*float64(uniqueDays), StreakMultiplierCap)
}

// uniqueShareDays counts distinct UTC calendar days with at least one
// verified share
func uniqueShareDays(shares []domain.ShareEvent) int {
	days := make(map[string]bool)
	for _, share := range shares {
		if !share.Verified {
			continue
		}
		days[share.CreatedAt.UTC().Format("2006-01-02")] = true
	}
	return len(days)
}

// isEarlyBird reports whether the share landed within the early-bird window
// of the tournament start
func isEarlyBird(t *domain.TournamentDefinition, share domain.ShareEvent) bool {
	elapsed := share.CreatedAt.Sub(t.StartTime)
	return elapsed >= 0 && elapsed < EarlyBirdWindow
}

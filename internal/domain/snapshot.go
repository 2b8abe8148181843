package domain

import "time"

// StatsSnapshot is an immutable read of a user's aggregate counters, produced
// fresh before every evaluation. The engine never mutates a snapshot in place;
// components derive deltas and the orchestrator applies them.
type StatsSnapshot struct {
	UserID            string          `json:"user_id"`
	CurrentXP         int             `json:"current_xp"`
	CurrentPoints     int             `json:"current_points"`
	TotalXPEarned     int             `json:"total_xp_earned"`
	TotalPointsEarned int             `json:"total_points_earned"`
	SharesCount       int             `json:"shares_count"`
	TournamentsWon    int             `json:"tournaments_won"`
	StreakDays        int             `json:"streak_days"`
	ReferralsCount    int             `json:"referrals_count"`
	Level             int             `json:"level"`
	CategoriesShared  int             `json:"categories_shared"`
	AppsShared        int             `json:"apps_shared"`
	TotalPayouts      int             `json:"total_payouts"`
	EarnedBadges      map[string]bool `json:"earned_badges"`
	TotalBadgesEarned int             `json:"total_badges_earned"`
	TakenAt           time.Time       `json:"taken_at"`
}

// HasBadge reports whether the snapshot records the badge as already earned
func (s *StatsSnapshot) HasBadge(badgeID string) bool {
	return s.EarnedBadges[badgeID]
}

// MetricValue extracts the snapshot field a criteria type measures.
// Unknown criteria types read as 0 so a misconfigured badge never breaks the
// evaluation of the rest.
func (s *StatsSnapshot) MetricValue(criteria CriteriaType) int {
	switch criteria {
	case CriteriaXPEarned:
		return s.TotalXPEarned
	case CriteriaPointsEarned:
		return s.TotalPointsEarned
	case CriteriaSharesCount:
		return s.SharesCount
	case CriteriaTournamentsWon:
		return s.TournamentsWon
	case CriteriaStreakDays, CriteriaConsecutiveDays:
		return s.StreakDays
	case CriteriaReferralsCount:
		return s.ReferralsCount
	case CriteriaLevelReached:
		return s.Level
	case CriteriaCategoryDiversity:
		return s.CategoriesShared
	case CriteriaAppDiversity:
		return s.AppsShared
	case CriteriaTotalPayouts:
		return s.TotalPayouts
	case CriteriaBadgeCount:
		return s.TotalBadgesEarned
	default:
		return 0
	}
}

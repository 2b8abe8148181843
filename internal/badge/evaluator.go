package badge

import (
	"time"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Evaluate screens one badge definition against a stats snapshot. It is a
// pure function: negative outcomes come back as reason codes, never errors,
// and a misconfigured badge can never break evaluation of its neighbors.
//
// Checks short-circuit in a fixed order, each with its own reason code:
// inactive, already earned, seasonal window, prerequisites, exclusions,
// threshold configuration, threshold comparison.
func Evaluate(def domain.BadgeDefinition, snapshot *domain.StatsSnapshot, now time.Time) domain.EvaluationResult {
	result := domain.EvaluationResult{BadgeID: def.ID}

	if !def.IsActive {
		result.ReasonCode = domain.ReasonBadgeInactive
		return result
	}

	if !def.IsRepeatable && snapshot.HasBadge(def.ID) {
		result.ReasonCode = domain.ReasonAlreadyEarned
		return result
	}

	if def.Seasonal != nil && !def.Seasonal.Contains(now) {
		result.ReasonCode = domain.ReasonOutsideSeason
		return result
	}

	for _, prereq := range def.PrerequisiteBadges {
		if !snapshot.HasBadge(prereq) {
			result.ReasonCode = domain.ReasonPrereqMissing
			return result
		}
	}

	for _, excl := range def.ExclusiveWith {
		if snapshot.HasBadge(excl) {
			result.ReasonCode = domain.ReasonExclusiveBlocked
			return result
		}
	}

	if def.ThresholdValue <= 0 {
		// Configuration error, not an evaluation outcome
		result.ReasonCode = domain.ReasonInvalidConfig
		return result
	}

	result.CurrentValue = snapshot.MetricValue(def.CriteriaType)
	result.ProgressPercent = progressPercent(result.CurrentValue, def.ThresholdValue)

	if evaluateThreshold(def.ThresholdOperator, result.CurrentValue, def.ThresholdValue) {
		result.Eligible = true
		result.ReasonCode = domain.ReasonEligible
	} else {
		result.ReasonCode = domain.ReasonThresholdNotMet
	}

	return result
}

// evaluateThreshold applies the badge's comparison operator. Unknown
// operators evaluate to false.
func evaluateThreshold(op domain.ThresholdOperator, current, threshold int) bool {
	switch op {
	case domain.OpGreaterOrEqual:
		return current >= threshold
	case domain.OpEqual:
		return current == threshold
	case domain.OpLessOrEqual:
		return current <= threshold
	case domain.OpGreater:
		return current > threshold
	case domain.OpLess:
		return current < threshold
	case domain.OpNotEqual:
		return current != threshold
	default:
		return false
	}
}

// progressPercent clamps current/threshold to [0,100]
func progressPercent(current, threshold int) float64 {
	if threshold <= 0 {
		return 0
	}
	pct := float64(current) / float64(threshold) * 100.0
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// ProgressFor computes the best-effort progress record for one unearned badge
func ProgressFor(def domain.BadgeDefinition, snapshot *domain.StatsSnapshot, now time.Time) domain.BadgeProgress {
	current := snapshot.MetricValue(def.CriteriaType)
	return domain.BadgeProgress{
		UserID:          snapshot.UserID,
		BadgeID:         def.ID,
		CurrentValue:    current,
		PercentComplete: progressPercent(current, def.ThresholdValue),
		UpdatedAt:       now,
	}
}

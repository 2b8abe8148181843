package payout

import "github.com/shareboost/rewards-engine/internal/domain"

// ScoreRisk computes the composite risk score for a payout request. Penalties
// accumulate on top of the user's base score and the result is clamped to
// [0, 100]. fraudScore is the external fraud service's estimate in [0, 1].
func ScoreRisk(profile *domain.PayoutProfile, amount int, method domain.PayoutMethod, fraudScore float64) float64 {
	score := profile.BaseRiskScore

	score += amountPenalty(amount)
	score += methodRiskPenalties[method]

	if !trustedRegions[profile.Region] {
		score += GeographyPenalty
	}
	if profile.CountLast30d > FrequencyThreshold {
		score += FrequencyPenalty
	}
	if isSuspiciousPattern(profile, amount) {
		score += SuspiciousPenalty
	}
	if fraudScore > FraudScoreThreshold {
		score += FraudPenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func amountPenalty(amount int) float64 {
	switch {
	case amount >= AmountTierHigh:
		return AmountPenaltyHigh
	case amount >= AmountTierMid:
		return AmountPenaltyMid
	case amount >= AmountTierLow:
		return AmountPenaltyLow
	default:
		return 0
	}
}

// isSuspiciousPattern flags payout bursts and amount outliers: three or more
// payments inside 24 hours, or an amount more than three times the user's
// recent average
func isSuspiciousPattern(profile *domain.PayoutProfile, amount int) bool {
	if profile.CountLast24h >= SuspiciousCount24h {
		return true
	}
	return profile.RecentAverage > 0 && float64(amount) > SuspiciousAmountRatio*profile.RecentAverage
}

// ClassifyRisk buckets a clamped score into a risk level
func ClassifyRisk(score float64) domain.RiskLevel {
	switch {
	case score >= RiskHighFloor:
		return domain.RiskHigh
	case score >= RiskMediumFloor:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

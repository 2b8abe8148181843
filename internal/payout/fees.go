package payout

import (
	"math"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// ComputeFee itemizes the processing fee for a payout, in points. The base
// fee (method percentage of the amount plus the method's fixed fee converted
// at the points-per-unit rate) is scaled by the risk multiplier, the monthly
// volume discount is applied, and the total is floored at the minimum fee.
func ComputeFee(amount int, method domain.PayoutMethod, level domain.RiskLevel, monthlyVolume int) domain.FeeBreakdown {
	percentage := methodPercentageFees[method] * float64(amount)
	fixed := methodFixedFees[method] * PointsPerCurrencyUnit

	multiplier := RiskMultiplier(level)
	discount := VolumeDiscount(monthlyVolume)

	total := int(math.Round((percentage + fixed) * multiplier * (1.0 - discount)))
	if total < MinimumFeePoints {
		total = MinimumFeePoints
	}

	return domain.FeeBreakdown{
		PercentageFee:  percentage,
		FixedFee:       fixed,
		RiskMultiplier: multiplier,
		VolumeDiscount: discount,
		Total:          total,
	}
}

// RiskMultiplier maps a risk level to its fee multiplier
func RiskMultiplier(level domain.RiskLevel) float64 {
	switch level {
	case domain.RiskMedium:
		return RiskMultiplierMedium
	case domain.RiskHigh:
		return RiskMultiplierHigh
	default:
		return RiskMultiplierLow
	}
}

// VolumeDiscount returns the discount rate earned by monthly payout volume
func VolumeDiscount(monthlyVolume int) float64 {
	switch {
	case monthlyVolume > VolumeDiscountHighThreshold:
		return VolumeDiscountHighRate
	case monthlyVolume > VolumeDiscountThreshold:
		return VolumeDiscountRate
	default:
		return 0
	}
}

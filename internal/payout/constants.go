package payout

import "github.com/shareboost/rewards-engine/internal/domain"

// PointsPerCurrencyUnit is the fixed points-to-currency exchange rate: 100
// points convert to one currency unit.
const PointsPerCurrencyUnit = 100

// Amount limits, in points
const (
	BaseMaxPoints     = 50_000
	AbsoluteMaxPoints = 100_000
	DailyCapPoints    = 25_000
	WeeklyCapPoints   = 100_000
	MaxPendingPayouts = 3
)

// methodMinimums are the per-method minimum amounts, in points
var methodMinimums = map[domain.PayoutMethod]int{
	domain.MethodPayPal:       500,
	domain.MethodBankTransfer: 1_000,
	domain.MethodCrypto:       2_000,
	domain.MethodGiftCard:     500,
}

// methodPercentageFees are the per-method percentage fees on the amount
var methodPercentageFees = map[domain.PayoutMethod]float64{
	domain.MethodPayPal:       0.029,
	domain.MethodBankTransfer: 0.010,
	domain.MethodCrypto:       0.020,
	domain.MethodGiftCard:     0.015,
}

// methodFixedFees are the per-method fixed fees, in currency units
var methodFixedFees = map[domain.PayoutMethod]float64{
	domain.MethodPayPal:       0.30,
	domain.MethodBankTransfer: 1.00,
	domain.MethodCrypto:       2.00,
	domain.MethodGiftCard:     0.50,
}

// Fee adjustments
const (
	RiskMultiplierLow    = 1.0
	RiskMultiplierMedium = 1.2
	RiskMultiplierHigh   = 1.5

	VolumeDiscountThreshold     = 50_000
	VolumeDiscountHighThreshold = 200_000
	VolumeDiscountRate          = 0.10
	VolumeDiscountHighRate      = 0.20

	MinimumFeePoints = 1
)

// Risk scoring penalties
const (
	AmountTierHigh        = 10_000
	AmountTierMid         = 5_000
	AmountTierLow         = 1_000
	AmountPenaltyHigh     = 20.0
	AmountPenaltyMid      = 10.0
	AmountPenaltyLow      = 5.0
	GeographyPenalty      = 20.0
	FrequencyThreshold    = 5
	FrequencyPenalty      = 15.0
	SuspiciousCount24h    = 3
	SuspiciousAmountRatio = 3.0
	SuspiciousPenalty     = 15.0
	FraudScoreThreshold   = 0.7
	FraudPenalty          = 25.0
)

// methodRiskPenalties are the per-method risk penalties
var methodRiskPenalties = map[domain.PayoutMethod]float64{
	domain.MethodPayPal:       5.0,
	domain.MethodBankTransfer: 10.0,
	domain.MethodCrypto:       25.0,
	domain.MethodGiftCard:     15.0,
}

// trustedRegions carry no geography penalty
var trustedRegions = map[string]bool{
	"US": true,
	"CA": true,
	"GB": true,
	"EU": true,
	"AU": true,
}

// Risk level boundaries
const (
	RiskMediumFloor = 60.0
	RiskHighFloor   = 80.0
)

// Decision codes
const (
	CodeApproved              = "approved"
	CodeUserInactive          = "user_inactive"
	CodeKYCNotVerified        = "kyc_not_verified"
	CodeInsufficientBalance   = "insufficient_balance"
	CodeAmountBelowMinimum    = "amount_below_minimum"
	CodeAmountAboveMaximum    = "amount_above_maximum"
	CodeDailyCapExceeded      = "daily_cap_exceeded"
	CodeWeeklyCapExceeded     = "weekly_cap_exceeded"
	CodeMissingDetails        = "missing_details"
	CodeTooManyPending        = "too_many_pending"
	CodeHighRisk              = "high_risk"
	CodeDependencyUnavailable = "dependency_unavailable"
	CodeProcessorFailure      = "processor_failure"
)

const payoutLockPrefix = "payout:"

// Log messages
const (
	LogMsgPayoutEvaluated     = "Payout request evaluated"
	LogMsgFraudScorerDown     = "Fraud scorer unavailable, routing to manual review"
	LogMsgProcessorFailed     = "Payment processor call failed"
	LogMsgPayoutPersistFailed = "Failed to persist payout request"
)

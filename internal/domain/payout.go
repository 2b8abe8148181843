package domain

import "time"

// PayoutMethod is the channel a payout is delivered through
type PayoutMethod string

const (
	MethodPayPal       PayoutMethod = "paypal"
	MethodBankTransfer PayoutMethod = "bank_transfer"
	MethodCrypto       PayoutMethod = "crypto"
	MethodGiftCard     PayoutMethod = "gift_card"
)

// PayoutStatus is the payout request lifecycle state
type PayoutStatus string

const (
	PayoutPending       PayoutStatus = "pending"
	PayoutProcessing    PayoutStatus = "processing"
	PayoutCompleted     PayoutStatus = "completed"
	PayoutFailed        PayoutStatus = "failed"
	PayoutRejected      PayoutStatus = "rejected"
	PayoutPendingReview PayoutStatus = "pending_review"
)

// RiskLevel buckets a composite risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PayoutOutcome is the engine's decision for a payout request
type PayoutOutcome string

const (
	OutcomeAutoApprove  PayoutOutcome = "auto_approve"
	OutcomeManualReview PayoutOutcome = "manual_review"
	OutcomeReject       PayoutOutcome = "reject"
	OutcomeFailed       PayoutOutcome = "failed"
)

// PayoutDetails carries the method-specific delivery fields. Which fields are
// required depends on the method; see payout.ValidateDetails.
type PayoutDetails struct {
	PayPalEmail   string `json:"paypal_email,omitempty" validate:"omitempty,email"`
	AccountNumber string `json:"account_number,omitempty"`
	RoutingNumber string `json:"routing_number,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	CryptoNetwork string `json:"crypto_network,omitempty"`
	GiftCardBrand string `json:"gift_card_brand,omitempty"`
}

// FeeBreakdown itemizes the processing fee, in points
type FeeBreakdown struct {
	PercentageFee  float64 `json:"percentage_fee"`
	FixedFee       float64 `json:"fixed_fee"`
	RiskMultiplier float64 `json:"risk_multiplier"`
	VolumeDiscount float64 `json:"volume_discount"`
	Total          int     `json:"total"`
}

// PayoutRequest is one points-to-currency conversion request
type PayoutRequest struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	AmountPoints int           `json:"amount_points"`
	Method       PayoutMethod  `json:"method"`
	Details      PayoutDetails `json:"details"`
	Fee          FeeBreakdown  `json:"fee"`
	RiskScore    float64       `json:"risk_score"`
	RiskLevel    RiskLevel     `json:"risk_level"`
	Status       PayoutStatus  `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// PayoutProfile is the read-only view of a user the risk engine evaluates.
// Aggregates include in-flight (pending/processing) payouts.
type PayoutProfile struct {
	UserID         string  `json:"user_id"`
	IsActive       bool    `json:"is_active"`
	KYCVerified    bool    `json:"kyc_verified"`
	Level          int     `json:"level"`
	Region         string  `json:"region"`
	PointsBalance  int     `json:"points_balance"`
	BaseRiskScore  float64 `json:"base_risk_score"`
	DailyTotal     int     `json:"daily_total"`
	WeeklyTotal    int     `json:"weekly_total"`
	MonthlyVolume  int     `json:"monthly_volume"`
	PendingCount   int     `json:"pending_count"`
	CountLast24h   int     `json:"count_last_24h"`
	CountLast30d   int     `json:"count_last_30d"`
	RecentAverage  float64 `json:"recent_average"`
}

// PayoutDecision is the full result of evaluating a payout request
type PayoutDecision struct {
	RequestID     string        `json:"request_id"`
	Outcome       PayoutOutcome `json:"outcome"`
	Code          string        `json:"code,omitempty"`
	Fee           FeeBreakdown  `json:"fee"`
	RiskScore     float64       `json:"risk_score"`
	RiskLevel     RiskLevel     `json:"risk_level"`
	TransactionID string        `json:"transaction_id,omitempty"`
}

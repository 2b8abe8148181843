package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shareboost/rewards-engine/internal/domain"
)

func cleanProfile() *domain.PayoutProfile {
	return &domain.PayoutProfile{
		UserID:        "alice",
		IsActive:      true,
		KYCVerified:   true,
		Level:         5,
		Region:        "US",
		PointsBalance: 50_000,
	}
}

func TestScoreRisk_CleanProfileLowRisk(t *testing.T) {
	p := cleanProfile()
	score := ScoreRisk(p, 600, domain.MethodPayPal, 0)

	// amount tier low (+5) + paypal (+5)
	assert.Equal(t, 10.0, score)
	assert.Equal(t, domain.RiskLow, ClassifyRisk(score))
}

func TestScoreRisk_HighRiskAccumulation(t *testing.T) {
	p := cleanProfile()
	p.Region = "OTHER"
	p.CountLast30d = 6

	score := ScoreRisk(p, 12_000, domain.MethodCrypto, 0)

	// amount tier (+20) + crypto (+25) + geography (+20) + frequency (+15)
	assert.GreaterOrEqual(t, score, 80.0)
	assert.Equal(t, domain.RiskHigh, ClassifyRisk(score))
}

func TestScoreRisk_AmountTiers(t *testing.T) {
	p := cleanProfile()
	base := ScoreRisk(p, 500, domain.MethodPayPal, 0)
	low := ScoreRisk(p, 1_000, domain.MethodPayPal, 0)
	mid := ScoreRisk(p, 5_000, domain.MethodPayPal, 0)
	high := ScoreRisk(p, 10_000, domain.MethodPayPal, 0)

	assert.Equal(t, base+AmountPenaltyLow, low)
	assert.Equal(t, base+AmountPenaltyMid, mid)
	assert.Equal(t, base+AmountPenaltyHigh, high)
}

func TestScoreRisk_FraudPenalty(t *testing.T) {
	p := cleanProfile()
	without := ScoreRisk(p, 600, domain.MethodPayPal, 0.7)
	with := ScoreRisk(p, 600, domain.MethodPayPal, 0.71)

	assert.Equal(t, without+FraudPenalty, with)
}

func TestScoreRisk_SuspiciousPatterns(t *testing.T) {
	t.Run("payment burst in 24h", func(t *testing.T) {
		p := cleanProfile()
		p.CountLast24h = 3
		calm := ScoreRisk(cleanProfile(), 600, domain.MethodPayPal, 0)
		assert.Equal(t, calm+SuspiciousPenalty, ScoreRisk(p, 600, domain.MethodPayPal, 0))
	})

	t.Run("amount outlier vs recent average", func(t *testing.T) {
		p := cleanProfile()
		p.RecentAverage = 100
		calm := ScoreRisk(cleanProfile(), 600, domain.MethodPayPal, 0)
		assert.Equal(t, calm+SuspiciousPenalty, ScoreRisk(p, 600, domain.MethodPayPal, 0))
	})

	t.Run("amount within usual range", func(t *testing.T) {
		p := cleanProfile()
		p.RecentAverage = 500
		calm := ScoreRisk(cleanProfile(), 600, domain.MethodPayPal, 0)
		assert.Equal(t, calm, ScoreRisk(p, 600, domain.MethodPayPal, 0))
	})
}

func TestScoreRisk_ClampedToHundred(t *testing.T) {
	p := cleanProfile()
	p.BaseRiskScore = 90
	p.Region = "OTHER"
	p.CountLast30d = 10
	p.CountLast24h = 5

	score := ScoreRisk(p, 50_000, domain.MethodCrypto, 0.9)
	assert.Equal(t, 100.0, score)
}

func TestScoreRisk_ClampedToZero(t *testing.T) {
	p := cleanProfile()
	p.BaseRiskScore = -50

	score := ScoreRisk(p, 100, domain.MethodPayPal, 0)
	assert.Equal(t, 0.0, score)
}

func TestClassifyRisk_Boundaries(t *testing.T) {
	assert.Equal(t, domain.RiskLow, ClassifyRisk(0))
	assert.Equal(t, domain.RiskLow, ClassifyRisk(59.9))
	assert.Equal(t, domain.RiskMedium, ClassifyRisk(60))
	assert.Equal(t, domain.RiskMedium, ClassifyRisk(79.9))
	assert.Equal(t, domain.RiskHigh, ClassifyRisk(80))
	assert.Equal(t, domain.RiskHigh, ClassifyRisk(100))
}

package external

import (
	"context"
	"fmt"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// FraudClient scores payout requests against an external fraud service.
// It implements payout.FraudScorer.
type FraudClient struct {
	apiClient
}

// NewFraudClient creates a fraud scoring client
func NewFraudClient(baseURL, apiKey string) *FraudClient {
	return &FraudClient{apiClient: newAPIClient(baseURL, apiKey)}
}

type fraudScoreRequest struct {
	UserID        string  `json:"user_id"`
	Amount        int     `json:"amount"`
	Method        string  `json:"method"`
	Region        string  `json:"region"`
	Level         int     `json:"level"`
	KYCVerified   bool    `json:"kyc_verified"`
	BaseRiskScore float64 `json:"base_risk_score"`
	CountLast24h  int     `json:"count_last_24h"`
	CountLast30d  int     `json:"count_last_30d"`
	RecentAverage float64 `json:"recent_average"`
}

type fraudScoreResponse struct {
	Score float64 `json:"score"`
}

// Score returns the external fraud likelihood for a payout request in [0, 1]
func (c *FraudClient) Score(ctx context.Context, profile *domain.PayoutProfile, amount int, method domain.PayoutMethod) (float64, error) {
	req := fraudScoreRequest{
		UserID:        profile.UserID,
		Amount:        amount,
		Method:        string(method),
		Region:        profile.Region,
		Level:         profile.Level,
		KYCVerified:   profile.KYCVerified,
		BaseRiskScore: profile.BaseRiskScore,
		CountLast24h:  profile.CountLast24h,
		CountLast30d:  profile.CountLast30d,
		RecentAverage: profile.RecentAverage,
	}

	var resp fraudScoreResponse
	if err := c.postJSON(ctx, "/v1/score", req, &resp); err != nil {
		return 0, err
	}

	if resp.Score < 0 || resp.Score > 1 {
		return 0, fmt.Errorf("fraud service returned score out of range: %f", resp.Score)
	}
	return resp.Score, nil
}

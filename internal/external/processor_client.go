package external

import (
	"context"
	"fmt"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// ProcessorClient submits approved payouts to the payment processor.
// It implements payout.PaymentProcessor.
type ProcessorClient struct {
	apiClient
}

// NewProcessorClient creates a payment processor client
func NewProcessorClient(baseURL, apiKey string) *ProcessorClient {
	return &ProcessorClient{apiClient: newAPIClient(baseURL, apiKey)}
}

type submitPayoutRequest struct {
	Method       string               `json:"method"`
	AmountPoints int                  `json:"amount_points"`
	Details      domain.PayoutDetails `json:"details"`
}

type submitPayoutResponse struct {
	TransactionID string `json:"transaction_id"`
}

// Submit hands an approved payout to the processor and returns its
// transaction ID
func (c *ProcessorClient) Submit(ctx context.Context, method domain.PayoutMethod, details domain.PayoutDetails, amountPoints int) (string, error) {
	req := submitPayoutRequest{
		Method:       string(method),
		AmountPoints: amountPoints,
		Details:      details,
	}

	var resp submitPayoutResponse
	if err := c.postJSON(ctx, "/v1/payouts", req, &resp); err != nil {
		return "", err
	}

	if resp.TransactionID == "" {
		return "", fmt.Errorf("processor returned empty transaction ID")
	}
	return resp.TransactionID, nil
}

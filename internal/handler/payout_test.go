package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// payoutServiceStub implements payout.Service with pluggable function fields
type payoutServiceStub struct {
	evaluateFn   func(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error)
	getRequestFn func(ctx context.Context, requestID string) (*domain.PayoutRequest, error)
}

func (s *payoutServiceStub) Evaluate(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error) {
	return s.evaluateFn(ctx, userID, amount, method, details)
}

func (s *payoutServiceStub) GetRequest(ctx context.Context, requestID string) (*domain.PayoutRequest, error) {
	return s.getRequestFn(ctx, requestID)
}

func TestHandleEvaluatePayout(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		evaluateFn     func(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Auto approved",
			reqBody: EvaluatePayoutRequest{
				UserID:      "alice",
				Amount:      1000,
				Method:      "paypal",
				PayPalEmail: "alice@example.com",
			},
			evaluateFn: func(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error) {
				assert.Equal(t, domain.MethodPayPal, method)
				assert.Equal(t, "alice@example.com", details.PayPalEmail)
				return &domain.PayoutDecision{
					RequestID:     "req-1",
					Outcome:       domain.OutcomeAutoApprove,
					TransactionID: "tx-123",
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"outcome":"auto_approve"`,
		},
		{
			name: "Rejections come back as decisions, not errors",
			reqBody: EvaluatePayoutRequest{
				UserID:      "alice",
				Amount:      1000,
				Method:      "paypal",
				PayPalEmail: "alice@example.com",
			},
			evaluateFn: func(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error) {
				return &domain.PayoutDecision{
					RequestID: "req-2",
					Outcome:   domain.OutcomeReject,
					Code:      "daily_cap_exceeded",
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"code":"daily_cap_exceeded"`,
		},
		{
			name: "Unknown user",
			reqBody: EvaluatePayoutRequest{
				UserID:      "ghost",
				Amount:      1000,
				Method:      "paypal",
				PayPalEmail: "ghost@example.com",
			},
			evaluateFn: func(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error) {
				return nil, domain.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name: "Invalid method rejected before the service is called",
			reqBody: EvaluatePayoutRequest{
				UserID: "alice",
				Amount: 1000,
				Method: "venmo",
			},
			evaluateFn:     nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid payout method",
		},
		{
			name: "Zero amount fails validation",
			reqBody: EvaluatePayoutRequest{
				UserID: "alice",
				Amount: 0,
				Method: "paypal",
			},
			evaluateFn:     nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &payoutServiceStub{evaluateFn: tt.evaluateFn}
			rec := postJSON(t, HandleEvaluatePayout(stub), "/api/v1/payouts/evaluate", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetPayoutRequest(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		stub := &payoutServiceStub{
			getRequestFn: func(ctx context.Context, requestID string) (*domain.PayoutRequest, error) {
				return &domain.PayoutRequest{ID: requestID, UserID: "alice", Status: domain.PayoutCompleted}, nil
			},
		}
		router := chi.NewRouter()
		router.Get("/payouts/{requestID}", HandleGetPayoutRequest(stub))

		req := httptest.NewRequest(http.MethodGet, "/payouts/req-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"req-1"`)
	})

	t.Run("Not found", func(t *testing.T) {
		stub := &payoutServiceStub{
			getRequestFn: func(ctx context.Context, requestID string) (*domain.PayoutRequest, error) {
				return nil, nil
			},
		}
		router := chi.NewRouter()
		router.Get("/payouts/{requestID}", HandleGetPayoutRequest(stub))

		req := httptest.NewRequest(http.MethodGet, "/payouts/req-404", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgPayoutRequestNotFound)
	})
}

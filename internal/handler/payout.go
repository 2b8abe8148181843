package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/logger"
	"github.com/shareboost/rewards-engine/internal/payout"
)

// EvaluatePayoutRequest submits a cash-out request for evaluation
type EvaluatePayoutRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	Amount        int    `json:"amount" validate:"gt=0"`
	Method        string `json:"method" validate:"required,payout_method"`
	PayPalEmail   string `json:"paypal_email" validate:"omitempty,email"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`
	AccountHolder string `json:"account_holder"`
	WalletAddress string `json:"wallet_address"`
	CryptoNetwork string `json:"crypto_network"`
	GiftCardBrand string `json:"gift_card_brand"`
}

// HandleEvaluatePayout runs the full payout decision pipeline. A rejected or
// manually queued request still returns 200 with the decision attached; the
// outcome field tells the caller what happened.
func HandleEvaluatePayout(payoutService payout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EvaluatePayoutRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Evaluate payout"); err != nil {
			return
		}

		decision, err := payoutService.Evaluate(r.Context(), req.UserID, req.Amount, domain.PayoutMethod(req.Method), domain.PayoutDetails{
			PayPalEmail:   req.PayPalEmail,
			AccountNumber: req.AccountNumber,
			RoutingNumber: req.RoutingNumber,
			AccountHolder: req.AccountHolder,
			WalletAddress: req.WalletAddress,
			CryptoNetwork: req.CryptoNetwork,
			GiftCardBrand: req.GiftCardBrand,
		})
		if err != nil {
			log.Error(ErrMsgEvaluatePayoutFailed, "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, decision)
	}
}

// HandleGetPayoutRequest returns one stored payout request by ID
func HandleGetPayoutRequest(payoutService payout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		requestID := chi.URLParam(r, "requestID")

		request, err := payoutService.GetRequest(r.Context(), requestID)
		if err != nil {
			log.Error(ErrMsgGetPayoutFailed, "error", err, "request_id", requestID)
			respondServiceError(w, err)
			return
		}
		if request == nil {
			respondError(w, http.StatusNotFound, ErrMsgPayoutRequestNotFound)
			return
		}

		respondJSON(w, http.StatusOK, request)
	}
}

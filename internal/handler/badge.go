package handler

import (
	"fmt"
	"net/http"

	"github.com/shareboost/rewards-engine/internal/badge"
	"github.com/shareboost/rewards-engine/internal/logger"
)

// EvaluateBadgeRequest asks for a dry-run eligibility check of one badge
type EvaluateBadgeRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	BadgeID string `json:"badge_id" validate:"required"`
}

// HandleEvaluateBadge screens a single badge without granting it
func HandleEvaluateBadge(badgeService badge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EvaluateBadgeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Evaluate badge"); err != nil {
			return
		}

		result, err := badgeService.EvaluateBadge(r.Context(), req.UserID, req.BadgeID)
		if err != nil {
			log.Error(ErrMsgEvaluateBadgeFailed, "error", err, "user_id", req.UserID, "badge_id", req.BadgeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// GrantBadgeRequest asks for an eligibility re-check and atomic grant
type GrantBadgeRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	BadgeID string `json:"badge_id" validate:"required"`
}

// HandleGrantBadge grants one badge if the user qualifies
func HandleGrantBadge(badgeService badge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantBadgeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant badge"); err != nil {
			return
		}

		outcome, err := badgeService.Grant(r.Context(), req.UserID, req.BadgeID)
		if err != nil {
			log.Error(ErrMsgGrantBadgeFailed, "error", err, "user_id", req.UserID, "badge_id", req.BadgeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, outcome)
	}
}

// EvaluateAllBadgesRequest triggers a full badge pass for a user
type EvaluateAllBadgesRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	TriggerEvent string `json:"trigger_event"`
}

// HandleEvaluateAllBadges runs every active badge against a fresh snapshot
// and grants whatever the user qualifies for
func HandleEvaluateAllBadges(badgeService badge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EvaluateAllBadgesRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Evaluate all badges"); err != nil {
			return
		}

		result, err := badgeService.EvaluateAndGrantAll(r.Context(), req.UserID, req.TriggerEvent)
		if err != nil {
			log.Error(ErrMsgBatchGrantFailed, "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleBadgeProgress returns per-badge progress for a user
func HandleBadgeProgress(badgeService badge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		progress, err := badgeService.GetProgress(r.Context(), userID)
		if err != nil {
			log.Error(ErrMsgGetProgressFailed, "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

// HandleReloadBadgeDefinitions drops the cached badge set so the next
// evaluation reads fresh definitions
func HandleReloadBadgeDefinitions(badgeService badge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		badgeService.InvalidateDefinitions()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDefinitionsReloaded})
	}
}

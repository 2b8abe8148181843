package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/logger"
	"github.com/shareboost/rewards-engine/internal/tournament"
)

// RegisterParticipantRequest enrolls a user into a tournament
type RegisterParticipantRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Level    int    `json:"level" validate:"gte=0"`
	Region   string `json:"region"`
	Referred bool   `json:"referred"`
}

// HandleRegisterParticipant handles tournament registration
func HandleRegisterParticipant(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		var req RegisterParticipantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register participant"); err != nil {
			return
		}

		participant, err := tournamentService.RegisterParticipant(r.Context(), tournamentID, req.UserID, tournament.RegistrationOptions{
			Level:    req.Level,
			Region:   req.Region,
			Referred: req.Referred,
		})
		if err != nil {
			log.Error(ErrMsgRegisterFailed, "error", err, "tournament_id", tournamentID, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, participant)
	}
}

// RecordShareRequest scores one verified share against a tournament
type RecordShareRequest struct {
	ShareID       string    `json:"share_id" validate:"required"`
	UserID        string    `json:"user_id" validate:"required"`
	AppID         string    `json:"app_id"`
	Category      string    `json:"category"`
	XPAwarded     int       `json:"xp_awarded" validate:"gte=0"`
	PointsAwarded int       `json:"points_awarded" validate:"gte=0"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// HandleRecordShare handles share scoring for a live tournament
func HandleRecordShare(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		var req RecordShareRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record share"); err != nil {
			return
		}

		createdAt := req.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		update, err := tournamentService.RecordShare(r.Context(), domain.ShareEvent{
			ID:            req.ShareID,
			TournamentID:  tournamentID,
			UserID:        req.UserID,
			AppID:         req.AppID,
			Category:      req.Category,
			XPAwarded:     req.XPAwarded,
			PointsAwarded: req.PointsAwarded,
			Verified:      req.Verified,
			CreatedAt:     createdAt,
		})
		if err != nil {
			log.Error(ErrMsgRecordShareFailed, "error", err, "tournament_id", tournamentID, "share_id", req.ShareID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, update)
	}
}

// HandleGetLeaderboard returns the current ranked standings
func HandleGetLeaderboard(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		entries, err := tournamentService.GetLeaderboard(r.Context(), tournamentID)
		if err != nil {
			log.Error(ErrMsgGetLeaderboardFailed, "error", err, "tournament_id", tournamentID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// HandleCloseTournament freezes the standings of an ended tournament
func HandleCloseTournament(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		if err := tournamentService.CloseTournament(r.Context(), tournamentID); err != nil {
			log.Error(ErrMsgCloseFailed, "error", err, "tournament_id", tournamentID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTournamentClosed})
	}
}

// HandleDistributePrizes pays out prizes for a completed tournament
func HandleDistributePrizes(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		result, err := tournamentService.DistributePrizes(r.Context(), tournamentID)
		if err != nil {
			log.Error(ErrMsgDistributeFailed, "error", err, "tournament_id", tournamentID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// DisqualifyRequest removes a participant from the standings
type DisqualifyRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Cause  string `json:"cause" validate:"required"`
}

// HandleDisqualify handles participant disqualification
func HandleDisqualify(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		var req DisqualifyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Disqualify participant"); err != nil {
			return
		}

		if err := tournamentService.Disqualify(r.Context(), tournamentID, req.UserID, req.Cause); err != nil {
			log.Error(ErrMsgDisqualifyFailed, "error", err, "tournament_id", tournamentID, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgParticipantRemoved})
	}
}

// SubmitAppealRequest opens an appeal against a disqualification
type SubmitAppealRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleSubmitAppeal handles appeal submission by a disqualified participant
func HandleSubmitAppeal(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		var req SubmitAppealRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit appeal"); err != nil {
			return
		}

		if err := tournamentService.SubmitAppeal(r.Context(), tournamentID, req.UserID); err != nil {
			log.Error(ErrMsgAppealFailed, "error", err, "tournament_id", tournamentID, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAppealSubmitted})
	}
}

// ResolveAppealRequest settles a pending appeal
type ResolveAppealRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Approve bool   `json:"approve"`
}

// HandleResolveAppeal handles the admin decision on a pending appeal
func HandleResolveAppeal(tournamentService tournament.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tournamentID := chi.URLParam(r, "tournamentID")

		var req ResolveAppealRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Resolve appeal"); err != nil {
			return
		}

		if err := tournamentService.ResolveAppeal(r.Context(), tournamentID, req.UserID, req.Approve); err != nil {
			log.Error(ErrMsgResolveAppealFailed, "error", err, "tournament_id", tournamentID, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAppealResolved})
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing left to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgBadgeNotFoundError      = "Badge not found"
	ErrMsgAlreadyGrantedError     = "Badge already earned"
	ErrMsgTournamentNotFoundErr   = "Tournament not found"
	ErrMsgTournamentNotLiveError  = "Tournament is not accepting shares"
	ErrMsgNotCompletedError       = "Tournament has not been closed yet"
	ErrMsgAlreadyDistributedError = "Prizes have already been distributed"
	ErrMsgAppealNotPendingError   = "No pending appeal for this participant"
	ErrMsgRegistrationClosedError = "Registration for this tournament has closed"

	ErrMsgUserInactiveError        = "Account is not active"
	ErrMsgKYCNotVerifiedError      = "Identity verification is required before cashing out"
	ErrMsgInsufficientBalanceError = "Not enough points"
	ErrMsgAmountOutOfRangeError    = "Amount is outside the allowed range for this method"
	ErrMsgLimitExceededError       = "Payout limit exceeded. Try again later"
	ErrMsgTooManyPendingError      = "Too many pending payout requests"
	ErrMsgMissingDetailsError      = "Payout details are missing or invalid"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal error text never reaches the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrBadgeNotFound):
		return http.StatusNotFound, ErrMsgBadgeNotFoundError
	case errors.Is(err, domain.ErrTournamentNotFound):
		return http.StatusNotFound, ErrMsgTournamentNotFoundErr
	case errors.Is(err, domain.ErrAlreadyGranted):
		return http.StatusConflict, ErrMsgAlreadyGrantedError
	case errors.Is(err, domain.ErrAlreadyDistributed):
		return http.StatusConflict, ErrMsgAlreadyDistributedError
	case errors.Is(err, domain.ErrAppealNotPending):
		return http.StatusConflict, ErrMsgAppealNotPendingError
	case errors.Is(err, domain.ErrTournamentNotLive):
		return http.StatusConflict, ErrMsgTournamentNotLiveError
	case errors.Is(err, domain.ErrTournamentNotCompleted):
		return http.StatusConflict, ErrMsgNotCompletedError
	case errors.Is(err, domain.ErrRegistrationClosed):
		return http.StatusBadRequest, ErrMsgRegistrationClosedError
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, ErrMsgUserInactiveError
	case errors.Is(err, domain.ErrKYCNotVerified):
		return http.StatusForbidden, ErrMsgKYCNotVerifiedError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return http.StatusBadRequest, ErrMsgAmountOutOfRangeError
	case errors.Is(err, domain.ErrLimitExceeded):
		return http.StatusTooManyRequests, ErrMsgLimitExceededError
	case errors.Is(err, domain.ErrTooManyPending):
		return http.StatusTooManyRequests, ErrMsgTooManyPendingError
	case errors.Is(err, domain.ErrMissingDetails):
		return http.StatusBadRequest, ErrMsgMissingDetailsError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a service error and writes it in one step
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Badge errors
	ErrMsgBadgeNotFound  = "badge not found"
	ErrMsgAlreadyGranted = "badge already granted"

	// Tournament errors
	ErrMsgTournamentNotFound     = "tournament not found"
	ErrMsgTournamentNotLive      = "tournament is not live"
	ErrMsgTournamentNotCompleted = "tournament is not completed"
	ErrMsgAlreadyDistributed     = "prizes already distributed"
	ErrMsgAppealNotPending       = "appeal is not pending"
	ErrMsgRegistrationClosed     = "registration deadline passed"

	// Payout errors
	ErrMsgInsufficientBalance = "insufficient points balance"
	ErrMsgKYCNotVerified      = "kyc not verified"
	ErrMsgUserInactive        = "user account is inactive"
	ErrMsgAmountOutOfRange    = "amount out of range"
	ErrMsgLimitExceeded       = "payout limit exceeded"
	ErrMsgTooManyPending      = "too many pending payouts"
	ErrMsgMissingDetails      = "missing payment details"

	// External dependency errors
	ErrMsgDependencyUnavailable = "dependency unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// These errors should be used consistently across all layers of the engine.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
//
// State-conflict errors (ErrAlreadyGranted, ErrAlreadyDistributed,
// ErrAppealNotPending) signal that a concurrent operation already happened;
// callers should treat them as success-adjacent, not as caller mistakes.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Badge errors
	ErrBadgeNotFound  = errors.New(ErrMsgBadgeNotFound)
	ErrAlreadyGranted = errors.New(ErrMsgAlreadyGranted)

	// Tournament errors
	ErrTournamentNotFound     = errors.New(ErrMsgTournamentNotFound)
	ErrTournamentNotLive      = errors.New(ErrMsgTournamentNotLive)
	ErrTournamentNotCompleted = errors.New(ErrMsgTournamentNotCompleted)
	ErrAlreadyDistributed     = errors.New(ErrMsgAlreadyDistributed)
	ErrAppealNotPending       = errors.New(ErrMsgAppealNotPending)
	ErrRegistrationClosed     = errors.New(ErrMsgRegistrationClosed)

	// Payout errors
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrKYCNotVerified      = errors.New(ErrMsgKYCNotVerified)
	ErrUserInactive        = errors.New(ErrMsgUserInactive)
	ErrAmountOutOfRange    = errors.New(ErrMsgAmountOutOfRange)
	ErrLimitExceeded       = errors.New(ErrMsgLimitExceeded)
	ErrTooManyPending      = errors.New(ErrMsgTooManyPending)
	ErrMissingDetails      = errors.New(ErrMsgMissingDetails)

	// External dependency errors
	ErrDependencyUnavailable = errors.New(ErrMsgDependencyUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

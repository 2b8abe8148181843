package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path/query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"

	// Badge operation error messages
	ErrMsgEvaluateBadgeFailed = "Failed to evaluate badge"
	ErrMsgGrantBadgeFailed    = "Failed to grant badge"
	ErrMsgBatchGrantFailed    = "Failed to evaluate badges"
	ErrMsgGetProgressFailed   = "Failed to retrieve badge progress"

	// Tournament operation error messages
	ErrMsgRegisterFailed       = "Failed to register participant"
	ErrMsgRecordShareFailed    = "Failed to record share"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"
	ErrMsgCloseFailed          = "Failed to close tournament"
	ErrMsgDistributeFailed     = "Failed to distribute prizes"
	ErrMsgDisqualifyFailed     = "Failed to disqualify participant"
	ErrMsgAppealFailed         = "Failed to submit appeal"
	ErrMsgResolveAppealFailed  = "Failed to resolve appeal"

	// Payout operation error messages
	ErrMsgEvaluatePayoutFailed  = "Failed to evaluate payout request"
	ErrMsgGetPayoutFailed       = "Failed to retrieve payout request"
	ErrMsgPayoutRequestNotFound = "Payout request not found"
)

// Success messages for API responses
const (
	MsgAppealSubmitted     = "Appeal submitted"
	MsgAppealResolved      = "Appeal resolved"
	MsgParticipantRemoved  = "Participant disqualified"
	MsgTournamentClosed    = "Tournament closed"
	MsgDefinitionsReloaded = "Badge definitions reloaded"
)

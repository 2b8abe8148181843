package badge

import "time"

// DefinitionCacheTTL bounds how stale the active badge set may be
const DefinitionCacheTTL = 30 * time.Second

// grantLockPrefix namespaces per-(user,badge) grant locks
const grantLockPrefix = "grant:"

// Log messages
const (
	LogMsgBadgeGranted       = "Badge granted"
	LogMsgGrantRaceLost      = "Concurrent grant already committed"
	LogMsgBadgeMisconfigured = "Skipping misconfigured badge"
	LogMsgProgressUpdateFail = "Failed to upsert badge progress"
	LogMsgBatchCompleted     = "Badge evaluation pass completed"
)

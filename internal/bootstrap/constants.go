package bootstrap

import "time"

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// Event system defaults, applied when config leaves a field zero
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
)

// Badge catalog sync
const (
	// BadgeConfigSchemaFile is the schema filename, resolved relative to
	// the config file's schemas/ subdirectory
	BadgeConfigSchemaFile = "badge_definitions.schema.json"

	LogMsgSyncingBadges = "Syncing badge definitions from JSON config..."
	LogMsgBadgesSynced  = "Badge definitions synced"

	ErrMsgFailedLoadBadgeConfig = "failed to load badge config"
	ErrMsgInvalidBadgeConfig    = "invalid badge config"
	ErrMsgFailedSyncBadge       = "failed to sync badge"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownWorkers        = "Shutting down workers..."
	LogMsgShuttingDownEventPublisher = "Flushing event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
)

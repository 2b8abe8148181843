package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeBadgeGranted is sent when a badge is granted to a user
	EventTypeBadgeGranted = "badge.granted"

	// EventTypeLevelUp is sent when a user's level changes
	EventTypeLevelUp = "badge.level_up"

	// EventTypeTournamentScored is sent when a share updates a tournament score
	EventTypeTournamentScored = "tournament.scored"

	// EventTypeTournamentClosed is sent when a tournament closes
	EventTypeTournamentClosed = "tournament.closed"

	// EventTypePrizesDistributed is sent when tournament prizes are paid out
	EventTypePrizesDistributed = "tournament.prizes_distributed"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)

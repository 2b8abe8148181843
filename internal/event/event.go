package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// EventSchemaVersion is the current payload schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event types published by the rules engine
const (
	BadgeGranted       Type = "badge.granted"
	LevelUp            Type = "badge.level_up"
	ProgressUpdated    Type = "badge.progress_updated"
	TournamentScored   Type = "tournament.scored"
	TournamentClosed   Type = "tournament.closed"
	PrizesDistributed  Type = "tournament.prizes_distributed"
	AppealResolved     Type = "tournament.appeal_resolved"
	PayoutEvaluated    Type = "payout.evaluated"
)

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// Typed event payloads for type safety

// BadgeGrantedPayloadV1 is the typed payload for badge grant events
type BadgeGrantedPayloadV1 struct {
	UserID        string `json:"user_id"`
	BadgeID       string `json:"badge_id"`
	XPAwarded     int    `json:"xp_awarded"`
	PointsAwarded int    `json:"points_awarded"`
	Timestamp     int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level change events
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}

// TournamentScoredPayloadV1 is the typed payload for share scoring events
type TournamentScoredPayloadV1 struct {
	TournamentID string `json:"tournament_id"`
	UserID       string `json:"user_id"`
	ShareID      string `json:"share_id"`
	NewScore     int    `json:"new_score"`
	NewRank      int    `json:"new_rank"`
}

// TournamentClosedPayloadV1 is the typed payload for tournament close events
type TournamentClosedPayloadV1 struct {
	TournamentID string `json:"tournament_id"`
	Participants int    `json:"participants"`
}

// AppealResolvedPayloadV1 is the typed payload for appeal resolution events
type AppealResolvedPayloadV1 struct {
	TournamentID string `json:"tournament_id"`
	UserID       string `json:"user_id"`
	Status       string `json:"status"`
}

// PrizesDistributedPayloadV1 is the typed payload for prize distribution events
type PrizesDistributedPayloadV1 struct {
	TournamentID string  `json:"tournament_id"`
	WinnerCount  int     `json:"winner_count"`
	TotalXP      int     `json:"total_xp"`
	TotalPoints  int     `json:"total_points"`
	TotalCash    float64 `json:"total_cash"`
}

// PayoutEvaluatedPayloadV1 is the typed payload for payout decision events
type PayoutEvaluatedPayloadV1 struct {
	RequestID string  `json:"request_id"`
	UserID    string  `json:"user_id"`
	Outcome   string  `json:"outcome"`
	RiskScore float64 `json:"risk_score"`
	FeePoints int     `json:"fee_points"`
}

// NewBadgeGrantedEvent builds a badge.granted event from a committed grant
func NewBadgeGrantedEvent(grant domain.UserBadgeGrant) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BadgeGranted,
		Payload: BadgeGrantedPayloadV1{
			UserID:        grant.UserID,
			BadgeID:       grant.BadgeID,
			XPAwarded:     grant.XPAwarded,
			PointsAwarded: grant.PointsAwarded,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent builds a badge.level_up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{UserID: userID, OldLevel: oldLevel, NewLevel: newLevel},
	}
}

// NewTournamentScoredEvent builds a tournament.scored event
func NewTournamentScoredEvent(tournamentID, userID, shareID string, newScore, newRank int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TournamentScored,
		Payload: TournamentScoredPayloadV1{
			TournamentID: tournamentID,
			UserID:       userID,
			ShareID:      shareID,
			NewScore:     newScore,
			NewRank:      newRank,
		},
	}
}

// NewTournamentClosedEvent builds a tournament.closed event
func NewTournamentClosedEvent(tournamentID string, participants int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TournamentClosed,
		Payload: TournamentClosedPayloadV1{TournamentID: tournamentID, Participants: participants},
	}
}

// NewAppealResolvedEvent builds a tournament.appeal_resolved event
func NewAppealResolvedEvent(tournamentID, userID string, status domain.AppealStatus) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AppealResolved,
		Payload: AppealResolvedPayloadV1{TournamentID: tournamentID, UserID: userID, Status: string(status)},
	}
}

// NewPrizesDistributedEvent builds a tournament.prizes_distributed event
func NewPrizesDistributedEvent(result domain.DistributionResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PrizesDistributed,
		Payload: PrizesDistributedPayloadV1{
			TournamentID: result.TournamentID,
			WinnerCount:  len(result.Winners),
			TotalXP:      result.TotalXP,
			TotalPoints:  result.TotalPoints,
			TotalCash:    result.TotalCash,
		},
	}
}

// NewPayoutEvaluatedEvent builds a payout.evaluated event
func NewPayoutEvaluatedEvent(userID string, decision domain.PayoutDecision) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PayoutEvaluated,
		Payload: PayoutEvaluatedPayloadV1{
			RequestID: decision.RequestID,
			UserID:    userID,
			Outcome:   string(decision.Outcome),
			RiskScore: decision.RiskScore,
			FeePoints: decision.Fee.Total,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// handler errors are collected, not short-circuited.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

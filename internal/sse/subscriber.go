package sse

import (
	"context"
	"log/slog"

	"github.com/shareboost/rewards-engine/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.BadgeGranted, s.handleBadgeGranted)
	s.bus.Subscribe(event.LevelUp, s.handleLevelUp)
	s.bus.Subscribe(event.TournamentScored, s.handleTournamentScored)
	s.bus.Subscribe(event.TournamentClosed, s.handleTournamentClosed)
	s.bus.Subscribe(event.PrizesDistributed, s.handlePrizesDistributed)

	slog.Info("SSE subscriber registered for event types",
		"types", []string{
			string(event.BadgeGranted),
			string(event.LevelUp),
			string(event.TournamentScored),
			string(event.TournamentClosed),
			string(event.PrizesDistributed),
		})
}

// handleBadgeGranted broadcasts badge grants to SSE clients
func (s *Subscriber) handleBadgeGranted(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.BadgeGrantedPayloadV1)
	if !ok {
		slog.Warn("Invalid badge granted event payload type")
		return nil
	}

	ssePayload := BadgeGrantedPayload{
		UserID:        payload.UserID,
		BadgeID:       payload.BadgeID,
		XPAwarded:     payload.XPAwarded,
		PointsAwarded: payload.PointsAwarded,
	}

	s.hub.Broadcast(EventTypeBadgeGranted, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeBadgeGranted,
		"user_id", ssePayload.UserID,
		"badge_id", ssePayload.BadgeID)

	return nil
}

// handleLevelUp broadcasts level changes to SSE clients
func (s *Subscriber) handleLevelUp(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.LevelUpPayloadV1)
	if !ok {
		slog.Warn("Invalid level up event payload type")
		return nil
	}

	ssePayload := LevelUpPayload{
		UserID:   payload.UserID,
		OldLevel: payload.OldLevel,
		NewLevel: payload.NewLevel,
	}

	s.hub.Broadcast(EventTypeLevelUp, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeLevelUp,
		"user_id", ssePayload.UserID,
		"new_level", ssePayload.NewLevel)

	return nil
}

// handleTournamentScored broadcasts live score updates to SSE clients
func (s *Subscriber) handleTournamentScored(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.TournamentScoredPayloadV1)
	if !ok {
		slog.Warn("Invalid tournament scored event payload type")
		return nil
	}

	ssePayload := TournamentScoredPayload{
		TournamentID: payload.TournamentID,
		UserID:       payload.UserID,
		NewScore:     payload.NewScore,
		NewRank:      payload.NewRank,
	}

	s.hub.Broadcast(EventTypeTournamentScored, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeTournamentScored,
		"tournament_id", ssePayload.TournamentID,
		"user_id", ssePayload.UserID,
		"new_score", ssePayload.NewScore)

	return nil
}

// handleTournamentClosed broadcasts tournament close to SSE clients
func (s *Subscriber) handleTournamentClosed(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.TournamentClosedPayloadV1)
	if !ok {
		slog.Warn("Invalid tournament closed event payload type")
		return nil
	}

	ssePayload := TournamentClosedPayload{
		TournamentID: payload.TournamentID,
		Participants: payload.Participants,
	}

	s.hub.Broadcast(EventTypeTournamentClosed, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypeTournamentClosed,
		"tournament_id", ssePayload.TournamentID)

	return nil
}

// handlePrizesDistributed broadcasts prize distribution to SSE clients
func (s *Subscriber) handlePrizesDistributed(_ context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.PrizesDistributedPayloadV1)
	if !ok {
		slog.Warn("Invalid prizes distributed event payload type")
		return nil
	}

	ssePayload := PrizesDistributedPayload{
		TournamentID: payload.TournamentID,
		WinnerCount:  payload.WinnerCount,
		TotalXP:      payload.TotalXP,
		TotalPoints:  payload.TotalPoints,
		TotalCash:    payload.TotalCash,
	}

	s.hub.Broadcast(EventTypePrizesDistributed, ssePayload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", EventTypePrizesDistributed,
		"tournament_id", ssePayload.TournamentID,
		"winner_count", ssePayload.WinnerCount)

	return nil
}

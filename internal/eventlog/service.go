package eventlog

import (
	"context"

	"github.com/shareboost/rewards-engine/internal/event"
	"github.com/shareboost/rewards-engine/internal/logger"
)

// Service persists an audit trail of every event the engine publishes
type Service interface {
	// Subscribe registers the audit logger on the bus
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event audit service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers the audit handler for every event type the engine emits
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.BadgeGranted,
		event.LevelUp,
		event.ProgressUpdated,
		event.TournamentScored,
		event.TournamentClosed,
		event.PrizesDistributed,
		event.AppealResolved,
		event.PayoutEvaluated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent persists an event to the audit table
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	userID := extractUserID(evt.Payload)

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, evt.Payload, evt.Metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

// extractUserID pulls the subject user out of the typed payloads so the
// audit table can be queried per user. Payloads without a user (for
// example tournament.closed) log with a NULL user_id.
func extractUserID(payload interface{}) *string {
	switch p := payload.(type) {
	case event.BadgeGrantedPayloadV1:
		return &p.UserID
	case event.LevelUpPayloadV1:
		return &p.UserID
	case event.TournamentScoredPayloadV1:
		return &p.UserID
	case event.AppealResolvedPayloadV1:
		return &p.UserID
	case event.PayoutEvaluatedPayloadV1:
		return &p.UserID
	case map[string]interface{}:
		if uid, ok := p["user_id"].(string); ok {
			return &uid
		}
	}
	return nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}

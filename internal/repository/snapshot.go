package repository

import (
	"context"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// StatsSnapshotProvider supplies a read-only aggregate of a user's counters.
// Implementations must return a view that reflects a single consistent point
// in time; the engine fetches a fresh snapshot before every evaluation.
type StatsSnapshotProvider interface {
	Get(ctx context.Context, userID string) (*domain.StatsSnapshot, error)
}

package repository

import (
	"context"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Badge defines the interface for badge definition and grant persistence
type Badge interface {
	GetActiveBadges(ctx context.Context) ([]domain.BadgeDefinition, error)
	GetBadgeByID(ctx context.Context, badgeID string) (*domain.BadgeDefinition, error)

	// GetLastGrant returns the most recent grant of the badge to the user,
	// or nil when none exists.
	GetLastGrant(ctx context.Context, userID, badgeID string) (*domain.UserBadgeGrant, error)

	// CommitGrant atomically persists the grant, credits XP and points to the
	// user's current and lifetime counters, updates the derived level, appends
	// the badge to the earned set for non-repeatable badges and bumps the
	// badge's global award counter. A conflicting grant (duplicate
	// non-repeatable, or repeatable inside its cooldown window) fails the
	// whole commit with domain.ErrAlreadyGranted; partial application is not
	// permitted.
	CommitGrant(ctx context.Context, badge domain.BadgeDefinition, grant domain.UserBadgeGrant) error

	UpsertProgress(ctx context.Context, progress domain.BadgeProgress) error
	GetProgress(ctx context.Context, userID string) ([]domain.BadgeProgress, error)

	// UpsertBadgeDefinition inserts or updates a catalog entry. The global
	// award counter is preserved on update.
	UpsertBadgeDefinition(ctx context.Context, def domain.BadgeDefinition) error
}

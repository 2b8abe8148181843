package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// StatsRepository implements repository.StatsSnapshotProvider for PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get reads the user's counters and earned badge set in one repeatable-read
// transaction so the snapshot reflects a single point in time.
func (r *StatsRepository) Get(ctx context.Context, userID string) (*domain.StatsSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	s := &domain.StatsSnapshot{
		UserID:       userID,
		EarnedBadges: make(map[string]bool),
		TakenAt:      time.Now(),
	}

	err = tx.QueryRow(ctx, `
		SELECT current_xp, current_points, total_xp_earned, total_points_earned,
		       level, shares_count, tournaments_won, streak_days, referrals_count,
		       categories_shared, apps_shared, total_payouts, total_badges_earned
		FROM user_stats
		WHERE user_id = $1`, userID).Scan(
		&s.CurrentXP, &s.CurrentPoints, &s.TotalXPEarned, &s.TotalPointsEarned,
		&s.Level, &s.SharesCount, &s.TournamentsWon, &s.StreakDays, &s.ReferralsCount,
		&s.CategoriesShared, &s.AppsShared, &s.TotalPayouts, &s.TotalBadgesEarned,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user stats: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT badge_id FROM user_badges
		WHERE user_id = $1 AND NOT repeatable`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query earned badges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var badgeID string
		if err := rows.Scan(&badgeID); err != nil {
			return nil, fmt.Errorf("failed to scan earned badge: %w", err)
		}
		s.EarnedBadges[badgeID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to close snapshot transaction: %w", err)
	}
	return s, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// BadgeRepository implements repository.Badge for PostgreSQL
type BadgeRepository struct {
	db *pgxpool.Pool
}

// NewBadgeRepository creates a new BadgeRepository
func NewBadgeRepository(db *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{db: db}
}

const badgeColumns = `
	badge_id, name, description, category, criteria_type, threshold_operator,
	threshold_value, xp_reward, points_reward, rarity, is_active, is_repeatable,
	cooldown_days, times_awarded, seasonal_start, seasonal_end, prerequisites, exclusions`

func (r *BadgeRepository) GetActiveBadges(ctx context.Context) ([]domain.BadgeDefinition, error) {
	query := `SELECT` + badgeColumns + `
		FROM badge_definitions
		WHERE is_active = TRUE
		ORDER BY badge_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active badges: %w", err)
	}
	defer rows.Close()

	var defs []domain.BadgeDefinition
	for rows.Next() {
		def, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *BadgeRepository) GetBadgeByID(ctx context.Context, badgeID string) (*domain.BadgeDefinition, error) {
	query := `SELECT` + badgeColumns + `
		FROM badge_definitions
		WHERE badge_id = $1`

	rows, err := r.db.Query(ctx, query, badgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query badge: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	def, err := scanBadge(rows)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func scanBadge(rows pgx.Rows) (domain.BadgeDefinition, error) {
	var def domain.BadgeDefinition
	var seasonalStart, seasonalEnd *time.Time

	err := rows.Scan(
		&def.ID, &def.Name, &def.Description, &def.Category, &def.CriteriaType,
		&def.ThresholdOperator, &def.ThresholdValue, &def.XPReward, &def.PointsReward,
		&def.Rarity, &def.IsActive, &def.IsRepeatable, &def.CooldownDays,
		&def.TimesAwarded, &seasonalStart, &seasonalEnd,
		&def.PrerequisiteBadges, &def.ExclusiveWith,
	)
	if err != nil {
		return domain.BadgeDefinition{}, fmt.Errorf("failed to scan badge: %w", err)
	}

	if seasonalStart != nil && seasonalEnd != nil {
		def.Seasonal = &domain.SeasonalWindow{Start: *seasonalStart, End: *seasonalEnd}
	}
	return def, nil
}

func (r *BadgeRepository) GetLastGrant(ctx context.Context, userID, badgeID string) (*domain.UserBadgeGrant, error) {
	query := `
		SELECT grant_id, user_id, badge_id, earned_at, xp_awarded, points_awarded,
		       value_at_grant, streak_count
		FROM user_badges
		WHERE user_id = $1 AND badge_id = $2
		ORDER BY earned_at DESC
		LIMIT 1`

	var g domain.UserBadgeGrant
	err := r.db.QueryRow(ctx, query, userID, badgeID).Scan(
		&g.ID, &g.UserID, &g.BadgeID, &g.EarnedAt,
		&g.XPAwarded, &g.PointsAwarded, &g.ValueAtGrant, &g.StreakCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query last grant: %w", err)
	}
	return &g, nil
}

// CommitGrant persists the grant and credits rewards in one transaction. The
// partial unique index on (user_id, badge_id) for non-repeatable rows turns a
// duplicate-grant race into a constraint violation, mapped to
// domain.ErrAlreadyGranted; the cooldown re-check happens under the same
// transaction for repeatable badges.
func (r *BadgeRepository) CommitGrant(ctx context.Context, badge domain.BadgeDefinition, grant domain.UserBadgeGrant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if badge.IsRepeatable && badge.CooldownDays > 0 {
		var lastEarned time.Time
		err := tx.QueryRow(ctx, `
			SELECT earned_at FROM user_badges
			WHERE user_id = $1 AND badge_id = $2
			ORDER BY earned_at DESC
			LIMIT 1
			FOR UPDATE`, grant.UserID, grant.BadgeID).Scan(&lastEarned)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to check cooldown: %w", err)
		}
		if err == nil {
			cooldown := time.Duration(badge.CooldownDays) * 24 * time.Hour
			if grant.EarnedAt.Sub(lastEarned) < cooldown {
				return domain.ErrAlreadyGranted
			}
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_badges
			(grant_id, user_id, badge_id, earned_at, xp_awarded, points_awarded,
			 value_at_grant, streak_count, repeatable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		grant.ID, grant.UserID, grant.BadgeID, grant.EarnedAt,
		grant.XPAwarded, grant.PointsAwarded, grant.ValueAtGrant, grant.StreakCount,
		badge.IsRepeatable,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrAlreadyGranted
		}
		return fmt.Errorf("failed to insert grant: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_stats
		SET current_xp = current_xp + $2,
		    current_points = current_points + $3,
		    total_xp_earned = total_xp_earned + $2,
		    total_points_earned = total_points_earned + $3,
		    total_badges_earned = total_badges_earned + 1,
		    level = 1 + FLOOR(SQRT((total_xp_earned + $2) / 100.0)),
		    updated_at = NOW()
		WHERE user_id = $1`,
		grant.UserID, grant.XPAwarded, grant.PointsAwarded,
	)
	if err != nil {
		return fmt.Errorf("failed to credit rewards: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE badge_definitions
		SET times_awarded = times_awarded + 1, updated_at = NOW()
		WHERE badge_id = $1`, grant.BadgeID)
	if err != nil {
		return fmt.Errorf("failed to bump award counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit grant: %w", err)
	}
	return nil
}

func (r *BadgeRepository) UpsertProgress(ctx context.Context, progress domain.BadgeProgress) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO badge_progress (user_id, badge_id, current_value, percent, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, badge_id) DO UPDATE
		SET current_value = EXCLUDED.current_value,
		    percent = EXCLUDED.percent,
		    updated_at = EXCLUDED.updated_at`,
		progress.UserID, progress.BadgeID, progress.CurrentValue,
		progress.PercentComplete, progress.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (r *BadgeRepository) GetProgress(ctx context.Context, userID string) ([]domain.BadgeProgress, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, badge_id, current_value, percent, updated_at
		FROM badge_progress
		WHERE user_id = $1
		ORDER BY badge_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var out []domain.BadgeProgress
	for rows.Next() {
		var p domain.BadgeProgress
		if err := rows.Scan(&p.UserID, &p.BadgeID, &p.CurrentValue, &p.PercentComplete, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *BadgeRepository) UpsertBadgeDefinition(ctx context.Context, def domain.BadgeDefinition) error {
	var seasonalStart, seasonalEnd *time.Time
	if def.Seasonal != nil {
		seasonalStart = &def.Seasonal.Start
		seasonalEnd = &def.Seasonal.End
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO badge_definitions (
			badge_id, name, description, category, criteria_type,
			threshold_operator, threshold_value, xp_reward, points_reward,
			rarity, is_active, is_repeatable, cooldown_days,
			seasonal_start, seasonal_end, prerequisites, exclusions, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
		ON CONFLICT (badge_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			criteria_type = EXCLUDED.criteria_type,
			threshold_operator = EXCLUDED.threshold_operator,
			threshold_value = EXCLUDED.threshold_value,
			xp_reward = EXCLUDED.xp_reward,
			points_reward = EXCLUDED.points_reward,
			rarity = EXCLUDED.rarity,
			is_active = EXCLUDED.is_active,
			is_repeatable = EXCLUDED.is_repeatable,
			cooldown_days = EXCLUDED.cooldown_days,
			seasonal_start = EXCLUDED.seasonal_start,
			seasonal_end = EXCLUDED.seasonal_end,
			prerequisites = EXCLUDED.prerequisites,
			exclusions = EXCLUDED.exclusions,
			updated_at = NOW()`,
		def.ID, def.Name, def.Description, def.Category, def.CriteriaType,
		def.ThresholdOperator, def.ThresholdValue, def.XPReward, def.PointsReward,
		def.Rarity, def.IsActive, def.IsRepeatable, def.CooldownDays,
		seasonalStart, seasonalEnd, def.PrerequisiteBadges, def.ExclusiveWith,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert badge definition: %w", err)
	}
	return nil
}

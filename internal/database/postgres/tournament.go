package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// TournamentRepository implements repository.Tournament for PostgreSQL
type TournamentRepository struct {
	db *pgxpool.Pool
}

// NewTournamentRepository creates a new TournamentRepository
func NewTournamentRepository(db *pgxpool.Pool) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const tournamentColumns = `
	tournament_id, name, category, start_time, end_time, registration_deadline,
	scoring_method, bonus_multiplier, eligible_regions, min_level, max_level,
	prizes, status, is_featured`

func (r *TournamentRepository) GetTournament(ctx context.Context, tournamentID string) (*domain.TournamentDefinition, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE tournament_id = $1`

	rows, err := r.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	t, err := scanTournament(rows)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TournamentRepository) ListByStatus(ctx context.Context, status domain.TournamentStatus) ([]domain.TournamentDefinition, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE status = $1 ORDER BY end_time`
	return r.listTournaments(ctx, query, status)
}

func (r *TournamentRepository) ListEndedLive(ctx context.Context, now time.Time) ([]domain.TournamentDefinition, error) {
	query := `SELECT` + tournamentColumns + `
		FROM tournaments
		WHERE status = $1 AND end_time <= $2
		ORDER BY end_time`
	return r.listTournaments(ctx, query, domain.TournamentLive, now)
}

func (r *TournamentRepository) listTournaments(ctx context.Context, query string, args ...any) ([]domain.TournamentDefinition, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	var out []domain.TournamentDefinition
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTournament(rows pgx.Rows) (domain.TournamentDefinition, error) {
	var t domain.TournamentDefinition
	err := rows.Scan(
		&t.ID, &t.Name, &t.Category, &t.StartTime, &t.EndTime, &t.RegistrationDeadline,
		&t.ScoringMethod, &t.BonusMultiplier, &t.EligibleRegions, &t.MinLevel, &t.MaxLevel,
		&t.Prizes, &t.Status, &t.IsFeatured,
	)
	if err != nil {
		return domain.TournamentDefinition{}, fmt.Errorf("failed to scan tournament: %w", err)
	}
	return t, nil
}

// TransitionStatus is a compare-and-commit on the status column. The WHERE
// clause carries the expected status, so exactly one concurrent caller
// observes a row change.
func (r *TournamentRepository) TransitionStatus(ctx context.Context, tournamentID string, from, to domain.TournamentStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE tournaments
		SET status = $3, updated_at = NOW()
		WHERE tournament_id = $1 AND status = $2`,
		tournamentID, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to transition status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

const participantColumns = `
	tournament_id, user_id, registered_at, score, current_rank, previous_rank,
	streak_days, multipliers, prize_tier, prize_claimed, disqualified,
	disqualify_cause, appeal`

func (r *TournamentRepository) GetParticipant(ctx context.Context, tournamentID, userID string) (*domain.TournamentParticipant, error) {
	query := `SELECT` + participantColumns + `
		FROM tournament_participants
		WHERE tournament_id = $1 AND user_id = $2`

	rows, err := r.db.Query(ctx, query, tournamentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	p, err := scanParticipant(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TournamentRepository) ListParticipants(ctx context.Context, tournamentID string) ([]domain.TournamentParticipant, error) {
	query := `SELECT` + participantColumns + `
		FROM tournament_participants
		WHERE tournament_id = $1
		ORDER BY score DESC, registered_at ASC`

	rows, err := r.db.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var out []domain.TournamentParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanParticipant(rows pgx.Rows) (domain.TournamentParticipant, error) {
	var p domain.TournamentParticipant
	err := rows.Scan(
		&p.TournamentID, &p.UserID, &p.RegisteredAt, &p.Score, &p.CurrentRank,
		&p.PreviousRank, &p.StreakDays, &p.Multipliers, &p.PrizeTier,
		&p.PrizeClaimed, &p.Disqualified, &p.DisqualifyCause, &p.Appeal,
	)
	if err != nil {
		return domain.TournamentParticipant{}, fmt.Errorf("failed to scan participant: %w", err)
	}
	return p, nil
}

func (r *TournamentRepository) UpsertParticipant(ctx context.Context, participant domain.TournamentParticipant) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tournament_participants
			(tournament_id, user_id, registered_at, score, current_rank, previous_rank,
			 streak_days, multipliers, prize_tier, prize_claimed, disqualified,
			 disqualify_cause, appeal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (tournament_id, user_id) DO UPDATE
		SET score = EXCLUDED.score,
		    current_rank = EXCLUDED.current_rank,
		    previous_rank = EXCLUDED.previous_rank,
		    streak_days = EXCLUDED.streak_days,
		    multipliers = EXCLUDED.multipliers,
		    prize_tier = EXCLUDED.prize_tier,
		    prize_claimed = EXCLUDED.prize_claimed,
		    disqualified = EXCLUDED.disqualified,
		    disqualify_cause = EXCLUDED.disqualify_cause,
		    appeal = EXCLUDED.appeal`,
		participant.TournamentID, participant.UserID, participant.RegisteredAt,
		participant.Score, participant.CurrentRank, participant.PreviousRank,
		participant.StreakDays, participant.Multipliers, participant.PrizeTier,
		participant.PrizeClaimed, participant.Disqualified,
		participant.DisqualifyCause, participant.Appeal,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert participant: %w", err)
	}
	return nil
}

// UpdateRanks rewrites rank assignments in one batch
func (r *TournamentRepository) UpdateRanks(ctx context.Context, tournamentID string, entries []domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			UPDATE tournament_participants
			SET previous_rank = current_rank, current_rank = $3
			WHERE tournament_id = $1 AND user_id = $2`,
			tournamentID, e.UserID, e.Rank)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to update ranks: %w", err)
		}
	}
	return nil
}

func (r *TournamentRepository) SaveShare(ctx context.Context, share domain.ShareEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO share_events (
			share_id, tournament_id, user_id, app_id, category,
			xp_awarded, points_awarded, verified, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (share_id) DO NOTHING`,
		share.ID, share.TournamentID, share.UserID, share.AppID, share.Category,
		share.XPAwarded, share.PointsAwarded, share.Verified, share.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save share: %w", err)
	}
	return nil
}

func (r *TournamentRepository) ListVerifiedShares(ctx context.Context, tournamentID, userID string) ([]domain.ShareEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT share_id, tournament_id, user_id, app_id, category,
		       xp_awarded, points_awarded, verified, created_at
		FROM share_events
		WHERE tournament_id = $1 AND user_id = $2 AND verified = TRUE
		ORDER BY created_at ASC`, tournamentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	var out []domain.ShareEvent
	for rows.Next() {
		var s domain.ShareEvent
		err := rows.Scan(&s.ID, &s.TournamentID, &s.UserID, &s.AppID, &s.Category,
			&s.XPAwarded, &s.PointsAwarded, &s.Verified, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreditPrize records the credit and pays XP and points into user_stats. The
// primary key on (tournament_id, user_id) makes a repeated credit a no-op.
func (r *TournamentRepository) CreditPrize(ctx context.Context, tournamentID, userID string, tier domain.PrizeTier, prize domain.Prize) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO prize_credits (tournament_id, user_id, tier, xp, points, cash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tournament_id, user_id) DO NOTHING`,
		tournamentID, userID, tier, prize.XP, prize.Points, prize.Cash)
	if err != nil {
		return fmt.Errorf("failed to insert credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already credited
		return nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_stats
		SET current_xp = current_xp + $2,
		    current_points = current_points + $3,
		    total_xp_earned = total_xp_earned + $2,
		    total_points_earned = total_points_earned + $3,
		    updated_at = NOW()
		WHERE user_id = $1`,
		userID, prize.XP, prize.Points)
	if err != nil {
		return fmt.Errorf("failed to credit prize rewards: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit credit: %w", err)
	}
	return nil
}

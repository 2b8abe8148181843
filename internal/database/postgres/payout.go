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

// PayoutRepository implements repository.Payout for PostgreSQL
type PayoutRepository struct {
	db *pgxpool.Pool
}

// NewPayoutRepository creates a new PayoutRepository
func NewPayoutRepository(db *pgxpool.Pool) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// GetProfile assembles the risk-evaluation view. The aggregate subqueries run
// in one repeatable-read transaction so in-flight totals are consistent with
// the profile row under concurrent submissions.
func (r *PayoutRepository) GetProfile(ctx context.Context, userID string) (*domain.PayoutProfile, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin profile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p := &domain.PayoutProfile{UserID: userID}
	err = tx.QueryRow(ctx, `
		SELECT is_active, kyc_verified, level, region, points_balance, base_risk_score
		FROM payout_profiles
		WHERE user_id = $1`, userID).Scan(
		&p.IsActive, &p.KYCVerified, &p.Level, &p.Region, &p.PointsBalance, &p.BaseRiskScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query payout profile: %w", err)
	}

	now := time.Now()
	err = tx.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_points) FILTER (WHERE created_at >= $2 AND status IN ('pending','processing','pending_review','completed')), 0),
			COALESCE(SUM(amount_points) FILTER (WHERE created_at >= $3 AND status IN ('pending','processing','pending_review','completed')), 0),
			COALESCE(SUM(amount_points) FILTER (WHERE created_at >= $4 AND status = 'completed'), 0),
			COUNT(*) FILTER (WHERE status IN ('pending','processing','pending_review')),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $4),
			COALESCE(AVG(amount_points) FILTER (WHERE created_at >= $4 AND status = 'completed'), 0)
		FROM payout_requests
		WHERE user_id = $1`,
		userID,
		now.Add(-24*time.Hour),
		now.Add(-7*24*time.Hour),
		now.Add(-30*24*time.Hour),
	).Scan(
		&p.DailyTotal, &p.WeeklyTotal, &p.MonthlyVolume,
		&p.PendingCount, &p.CountLast24h, &p.CountLast30d, &p.RecentAverage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout aggregates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to close profile transaction: %w", err)
	}
	return p, nil
}

func (r *PayoutRepository) CreateRequest(ctx context.Context, request domain.PayoutRequest) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payout_requests
			(request_id, user_id, amount_points, method, details, fee,
			 risk_score, risk_level, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		request.ID, request.UserID, request.AmountPoints, request.Method,
		request.Details, request.Fee, request.RiskScore, request.RiskLevel,
		request.Status, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payout request: %w", err)
	}
	return nil
}

func (r *PayoutRepository) UpdateStatus(ctx context.Context, requestID string, status domain.PayoutStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payout_requests SET status = $2 WHERE request_id = $1`,
		requestID, status)
	if err != nil {
		return fmt.Errorf("failed to update payout status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payout request %s", domain.ErrInvalidInput, requestID)
	}
	return nil
}

func (r *PayoutRepository) GetRequest(ctx context.Context, requestID string) (*domain.PayoutRequest, error) {
	var req domain.PayoutRequest
	err := r.db.QueryRow(ctx, `
		SELECT request_id, user_id, amount_points, method, details, fee,
		       risk_score, risk_level, status, created_at
		FROM payout_requests
		WHERE request_id = $1`, requestID).Scan(
		&req.ID, &req.UserID, &req.AmountPoints, &req.Method, &req.Details,
		&req.Fee, &req.RiskScore, &req.RiskLevel, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query payout request: %w", err)
	}
	return &req, nil
}

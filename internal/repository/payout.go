package repository

import (
	"context"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Payout defines the interface for payout request persistence
type Payout interface {
	// GetProfile returns the user's payout evaluation view. Daily, weekly and
	// monthly aggregates must include in-flight (pending/processing) requests
	// and must be read atomically with respect to concurrent submissions from
	// the same user.
	GetProfile(ctx context.Context, userID string) (*domain.PayoutProfile, error)

	CreateRequest(ctx context.Context, request domain.PayoutRequest) error
	UpdateStatus(ctx context.Context, requestID string, status domain.PayoutStatus) error
	GetRequest(ctx context.Context, requestID string) (*domain.PayoutRequest, error)
}

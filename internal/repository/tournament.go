package repository

import (
	"context"
	"time"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Tournament defines the interface for tournament persistence
type Tournament interface {
	GetTournament(ctx context.Context, tournamentID string) (*domain.TournamentDefinition, error)
	ListByStatus(ctx context.Context, status domain.TournamentStatus) ([]domain.TournamentDefinition, error)

	// ListEndedLive returns live tournaments whose end time is at or before now.
	ListEndedLive(ctx context.Context, now time.Time) ([]domain.TournamentDefinition, error)

	// TransitionStatus performs a conditional status update and reports
	// whether the transition was applied. A false return means the tournament
	// was not in the expected `from` status - the compare-and-commit barrier
	// for exactly-once prize distribution.
	TransitionStatus(ctx context.Context, tournamentID string, from, to domain.TournamentStatus) (bool, error)

	GetParticipant(ctx context.Context, tournamentID, userID string) (*domain.TournamentParticipant, error)
	ListParticipants(ctx context.Context, tournamentID string) ([]domain.TournamentParticipant, error)
	UpsertParticipant(ctx context.Context, participant domain.TournamentParticipant) error

	// UpdateRanks persists recomputed rank assignments for a tournament.
	UpdateRanks(ctx context.Context, tournamentID string, entries []domain.LeaderboardEntry) error

	// SaveShare persists a share event. Saving is idempotent per share ID:
	// a replayed share is a no-op, so scoring the same share twice cannot
	// double-count it.
	SaveShare(ctx context.Context, share domain.ShareEvent) error

	// ListVerifiedShares returns the verified share events counted toward a
	// participant's score, oldest first.
	ListVerifiedShares(ctx context.Context, tournamentID, userID string) ([]domain.ShareEvent, error)

	// CreditPrize credits one winner's prize. Crediting is idempotent per
	// (tournament, user): a repeated credit is a no-op, not a double credit.
	CreditPrize(ctx context.Context, tournamentID, userID string, tier domain.PrizeTier, prize domain.Prize) error
}

package tournament_bench

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/tournament"
)

// --- Stubs (Zero-overhead mocks for benchmarking) ---

// StubRepository serves a fixed field of participants and share history so
// the benchmarks measure scoring and ranking work, not persistence.
type StubRepository struct {
	tournament   domain.TournamentDefinition
	participants []domain.TournamentParticipant
	shares       []domain.ShareEvent
}

func NewStubRepository(fieldSize, shareCount int) *StubRepository {
	now := time.Now()
	def := domain.TournamentDefinition{
		ID:                   "bench-t1",
		Name:                 "Benchmark Cup",
		StartTime:            now.Add(-24 * time.Hour),
		EndTime:              now.Add(24 * time.Hour),
		RegistrationDeadline: now.Add(-12 * time.Hour),
		ScoringMethod:        domain.ScoringSharesCount,
		BonusMultiplier:      1.5,
		Status:               domain.TournamentLive,
	}

	participants := make([]domain.TournamentParticipant, fieldSize)
	for i := 0; i < fieldSize; i++ {
		participants[i] = domain.TournamentParticipant{
			TournamentID: def.ID,
			UserID:       fmt.Sprintf("user-%d", i),
			RegisteredAt: def.StartTime,
			Score:        fieldSize - i,
			CurrentRank:  i + 1,
			Multipliers:  domain.NewBonusMultipliers(),
		}
	}

	shares := make([]domain.ShareEvent, shareCount)
	for i := 0; i < shareCount; i++ {
		shares[i] = domain.ShareEvent{
			ID:            fmt.Sprintf("share-%d", i),
			TournamentID:  def.ID,
			UserID:        "user-0",
			XPAwarded:     10,
			PointsAwarded: 5,
			Verified:      true,
			CreatedAt:     def.StartTime.Add(time.Duration(i) * time.Minute),
		}
	}

	return &StubRepository{tournament: def, participants: participants, shares: shares}
}

func (s *StubRepository) GetTournament(ctx context.Context, tournamentID string) (*domain.TournamentDefinition, error) {
	// Return a copy so service-side mutations cannot bleed across iterations
	def := s.tournament
	return &def, nil
}

func (s *StubRepository) ListByStatus(ctx context.Context, status domain.TournamentStatus) ([]domain.TournamentDefinition, error) {
	return nil, nil
}

func (s *StubRepository) ListEndedLive(ctx context.Context, now time.Time) ([]domain.TournamentDefinition, error) {
	return nil, nil
}

func (s *StubRepository) TransitionStatus(ctx context.Context, tournamentID string, from, to domain.TournamentStatus) (bool, error) {
	return true, nil
}

func (s *StubRepository) GetParticipant(ctx context.Context, tournamentID, userID string) (*domain.TournamentParticipant, error) {
	p := s.participants[0]
	return &p, nil
}

func (s *StubRepository) ListParticipants(ctx context.Context, tournamentID string) ([]domain.TournamentParticipant, error) {
	return s.participants, nil
}

func (s *StubRepository) UpsertParticipant(ctx context.Context, participant domain.TournamentParticipant) error {
	return nil
}

func (s *StubRepository) UpdateRanks(ctx context.Context, tournamentID string, entries []domain.LeaderboardEntry) error {
	return nil
}

func (s *StubRepository) SaveShare(ctx context.Context, share domain.ShareEvent) error {
	return nil
}

func (s *StubRepository) ListVerifiedShares(ctx context.Context, tournamentID, userID string) ([]domain.ShareEvent, error) {
	return s.shares, nil
}

func (s *StubRepository) CreditPrize(ctx context.Context, tournamentID, userID string, tier domain.PrizeTier, prize domain.Prize) error {
	return nil
}

// --- Benchmark Functions ---

// BenchmarkRecordShare measures the full scoring path for one verified share:
// multiplier refresh, score recompute over the share history, and a rank
// rebuild over the whole field.
func BenchmarkRecordShare(b *testing.B) {
	sizes := []struct {
		name       string
		fieldSize  int
		shareCount int
	}{
		{"Field100_Shares50", 100, 50},
		{"Field1000_Shares50", 1000, 50},
		{"Field1000_Shares500", 1000, 500},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			repo := NewStubRepository(size.fieldSize, size.shareCount)
			svc := tournament.NewService(repo, concurrency.NewLockManager(), nil)

			ctx := context.Background()
			share := domain.ShareEvent{
				ID:           "bench-share",
				TournamentID: "bench-t1",
				UserID:       "user-0",
				XPAwarded:    10,
				Verified:     true,
				CreatedAt:    time.Now(),
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := svc.RecordShare(ctx, share); err != nil {
					b.Fatalf("RecordShare failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkRecalculateRanks measures a leaderboard rebuild in isolation.
func BenchmarkRecalculateRanks(b *testing.B) {
	for _, fieldSize := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("Field%d", fieldSize), func(b *testing.B) {
			repo := NewStubRepository(fieldSize, 0)
			svc := tournament.NewService(repo, concurrency.NewLockManager(), nil)
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := svc.RecalculateRanks(ctx, "bench-t1"); err != nil {
					b.Fatalf("RecalculateRanks failed: %v", err)
				}
			}
		})
	}
}

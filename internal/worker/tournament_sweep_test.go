package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/tournament"
)

func endedTournament(id string) domain.TournamentDefinition {
	now := time.Now()
	return domain.TournamentDefinition{
		ID:                   id,
		Name:                 "Weekly Cup",
		StartTime:            now.Add(-48 * time.Hour),
		EndTime:              now.Add(-time.Hour),
		RegistrationDeadline: now.Add(-40 * time.Hour),
		ScoringMethod:        domain.ScoringSharesCount,
		BonusMultiplier:      1.0,
		Status:               domain.TournamentLive,
		Prizes: map[domain.PrizeTier]domain.Prize{
			domain.TierFirstPlace:    {XP: 1000, Points: 500},
			domain.TierParticipation: {XP: 50, Points: 10},
		},
	}
}

func TestTournamentSweep(t *testing.T) {
	repo := tournament.NewFakeRepository()
	svc := tournament.NewService(repo, concurrency.NewLockManager(), nil)

	repo.AddTournament(endedTournament("weekly-1"))
	registered := time.Now().Add(-47 * time.Hour)
	repo.UpsertParticipant(context.Background(), domain.TournamentParticipant{
		TournamentID: "weekly-1",
		UserID:       "alice",
		RegisteredAt: registered,
		Score:        12,
		Multipliers:  domain.NewBonusMultipliers(),
	})
	repo.UpsertParticipant(context.Background(), domain.TournamentParticipant{
		TournamentID: "weekly-1",
		UserID:       "bob",
		RegisteredAt: registered,
		Score:        7,
		Multipliers:  domain.NewBonusMultipliers(),
	})

	sweep := NewTournamentSweep(repo, svc)
	require.NoError(t, sweep.Process(context.Background()))

	def, err := repo.GetTournament(context.Background(), "weekly-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TournamentPrizesDistributed, def.Status)

	winner, ok := repo.CreditFor("weekly-1", "alice")
	require.True(t, ok)
	assert.Equal(t, domain.TierFirstPlace, winner.Tier)
	assert.Equal(t, 2, repo.CreditCount())
}

func TestTournamentSweep_Idempotent(t *testing.T) {
	repo := tournament.NewFakeRepository()
	svc := tournament.NewService(repo, concurrency.NewLockManager(), nil)

	repo.AddTournament(endedTournament("weekly-2"))
	repo.UpsertParticipant(context.Background(), domain.TournamentParticipant{
		TournamentID: "weekly-2",
		UserID:       "alice",
		RegisteredAt: time.Now().Add(-47 * time.Hour),
		Score:        3,
		Multipliers:  domain.NewBonusMultipliers(),
	})

	sweep := NewTournamentSweep(repo, svc)
	require.NoError(t, sweep.Process(context.Background()))
	credits := repo.CreditCount()

	// A second pass finds nothing live and changes nothing
	require.NoError(t, sweep.Process(context.Background()))
	assert.Equal(t, credits, repo.CreditCount())
}

func TestTournamentSweep_NothingEnded(t *testing.T) {
	repo := tournament.NewFakeRepository()
	svc := tournament.NewService(repo, concurrency.NewLockManager(), nil)

	def := endedTournament("future-1")
	def.EndTime = time.Now().Add(24 * time.Hour)
	repo.AddTournament(def)

	sweep := NewTournamentSweep(repo, svc)
	require.NoError(t, sweep.Process(context.Background()))

	got, err := repo.GetTournament(context.Background(), "future-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TournamentLive, got.Status)
}

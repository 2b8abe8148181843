package badge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/domain"
)

func newTestService(repo *FakeRepository) Service {
	return NewService(repo, repo, concurrency.NewLockManager(), nil)
}

func seedUser(repo *FakeRepository, shares, totalXP int) {
	repo.SeedUser(domain.StatsSnapshot{
		UserID:        "user-1",
		SharesCount:   shares,
		TotalXPEarned: totalXP,
		EarnedBadges:  map[string]bool{},
	})
}

func TestGrant_Success(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10))
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	outcome, err := svc.Grant(context.Background(), "user-1", "social-10")

	require.NoError(t, err)
	assert.True(t, outcome.Granted)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, 50, outcome.Result.XPAwarded)
	assert.Equal(t, 10, outcome.Result.PointsAwarded)
	assert.Equal(t, 1, repo.GrantCount("user-1", "social-10"))
	assert.Equal(t, 1, repo.TimesAwarded("social-10"))
}

func TestGrant_SecondAttemptAlreadyEarned(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10))
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	first, err := svc.Grant(context.Background(), "user-1", "social-10")
	require.NoError(t, err)
	require.True(t, first.Granted)

	second, err := svc.Grant(context.Background(), "user-1", "social-10")
	require.NoError(t, err)
	assert.False(t, second.Granted)
	assert.Equal(t, domain.ReasonAlreadyEarned, second.ReasonCode)
	assert.Equal(t, 1, repo.GrantCount("user-1", "social-10"))
}

func TestGrant_ThresholdNotMetIsNotAnError(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10))
	seedUser(repo, 3, 0)
	svc := newTestService(repo)

	outcome, err := svc.Grant(context.Background(), "user-1", "social-10")

	require.NoError(t, err)
	assert.False(t, outcome.Granted)
	assert.Equal(t, domain.ReasonThresholdNotMet, outcome.ReasonCode)
	assert.Zero(t, repo.GrantCount("user-1", "social-10"))
}

func TestGrant_UnknownBadge(t *testing.T) {
	repo := NewFakeRepository()
	seedUser(repo, 3, 0)
	svc := newTestService(repo)

	_, err := svc.Grant(context.Background(), "user-1", "nope")

	assert.ErrorIs(t, err, domain.ErrBadgeNotFound)
}

func TestGrant_LevelChange(t *testing.T) {
	repo := NewFakeRepository()
	def := activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10)
	def.XPReward = 120
	repo.AddBadge(def)
	// 80 XP: level 1; +120 XP crosses the 100 XP boundary to level 2
	seedUser(repo, 10, 80)
	svc := newTestService(repo)

	outcome, err := svc.Grant(context.Background(), "user-1", "social-10")

	require.NoError(t, err)
	require.True(t, outcome.Granted)
	assert.True(t, outcome.Result.LevelChanged)
	assert.Equal(t, 2, outcome.Result.NewLevel)
}

func TestEvaluateAndGrantAll_CascadingBadgeCount(t *testing.T) {
	repo := NewFakeRepository()
	// A metric badge the user qualifies for, plus a badge_count badge that
	// only becomes reachable once the first grant lands in the same pass.
	repo.AddBadge(activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10))
	cascade := activeBadge("collector", domain.CriteriaBadgeCount, domain.OpGreaterOrEqual, 1)
	repo.AddBadge(cascade)
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	batch, err := svc.EvaluateAndGrantAll(context.Background(), "user-1", "share_verified")

	require.NoError(t, err)
	assert.Len(t, batch.Granted, 2)
	assert.Equal(t, 100, batch.TotalXP)
	assert.Equal(t, 20, batch.TotalPoints)
}

func TestEvaluateAndGrantAll_MisconfiguredBadgeSkipped(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("ok", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 5))
	broken := activeBadge("broken", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, -1)
	repo.AddBadge(broken)
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	batch, err := svc.EvaluateAndGrantAll(context.Background(), "user-1", "share_verified")

	require.NoError(t, err)
	assert.Len(t, batch.Granted, 1)
	assert.Equal(t, "ok", batch.Granted[0].BadgeID)
}

func TestEvaluateAndGrantAll_UpdatesProgressForUnearned(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("social-100", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 100))
	seedUser(repo, 25, 0)
	svc := newTestService(repo)

	_, err := svc.EvaluateAndGrantAll(context.Background(), "user-1", "share_verified")
	require.NoError(t, err)

	progress, err := svc.GetProgress(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, "social-100", progress[0].BadgeID)
	assert.Equal(t, 25, progress[0].CurrentValue)
	assert.InDelta(t, 25.0, progress[0].PercentComplete, 1e-9)
}

func TestEvaluateBadge_DoesNotCommit(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10))
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	result, err := svc.EvaluateBadge(context.Background(), "user-1", "social-10")

	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Zero(t, repo.GrantCount("user-1", "social-10"))
}

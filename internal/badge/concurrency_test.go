package badge

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// Two concurrent qualifying events for the same non-repeatable badge must
// yield exactly one grant; losers observe already_earned.
func TestGrant_ConcurrentDoubleGrantYieldsOne(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddBadge(activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10))
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	const callers = 16
	outcomes := make([]*GrantOutcome, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := svc.Grant(context.Background(), "user-1", "social-10")
			require.NoError(t, err)
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, o := range outcomes {
		if o.Granted {
			granted++
		} else {
			assert.Equal(t, domain.ReasonAlreadyEarned, o.ReasonCode)
		}
	}
	assert.Equal(t, 1, granted)
	assert.Equal(t, 1, repo.GrantCount("user-1", "social-10"))
}

// The commit itself must be conditional: even bypassing the service's lock,
// the repository rejects a duplicate grant.
func TestCommitGrant_RaceLostAtRepository(t *testing.T) {
	repo := NewFakeRepository()
	def := activeBadge("social-10", domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 10)
	repo.AddBadge(def)
	seedUser(repo, 10, 0)

	grant := domain.UserBadgeGrant{ID: "g1", UserID: "user-1", BadgeID: "social-10"}
	require.NoError(t, repo.CommitGrant(context.Background(), def, grant))

	grant.ID = "g2"
	err := repo.CommitGrant(context.Background(), def, grant)
	assert.ErrorIs(t, err, domain.ErrAlreadyGranted)
	assert.Equal(t, 1, repo.GrantCount("user-1", "social-10"))
}

func TestGrant_ConcurrentDifferentBadgesAllSucceed(t *testing.T) {
	repo := NewFakeRepository()
	badges := []string{"a", "b", "c", "d"}
	for _, id := range badges {
		repo.AddBadge(activeBadge(id, domain.CriteriaSharesCount, domain.OpGreaterOrEqual, 1))
	}
	seedUser(repo, 10, 0)
	svc := newTestService(repo)

	var wg sync.WaitGroup
	for _, id := range badges {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			outcome, err := svc.Grant(context.Background(), "user-1", id)
			require.NoError(t, err)
			assert.True(t, outcome.Granted, "badge %s", id)
		}(id)
	}
	wg.Wait()

	for _, id := range badges {
		assert.Equal(t, 1, repo.GrantCount("user-1", id))
	}
}

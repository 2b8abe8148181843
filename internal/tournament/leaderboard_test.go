package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareboost/rewards-engine/internal/domain"
)

func participant(userID string, score int, registered time.Time) domain.TournamentParticipant {
	return domain.TournamentParticipant{
		TournamentID: "t1",
		UserID:       userID,
		Score:        score,
		RegisteredAt: registered,
		Multipliers:  domain.NewBonusMultipliers(),
		Appeal:       domain.AppealNone,
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	base := time.Now()
	entries := Rank([]domain.TournamentParticipant{
		participant("alice", 10, base),
		participant("bob", 30, base),
		participant("carol", 20, base),
	})

	require.Len(t, entries, 3)
	assert.Equal(t, "bob", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "carol", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "alice", entries[2].UserID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRank_TiesShareRankAndResumeAtPosition(t *testing.T) {
	base := time.Now()
	entries := Rank([]domain.TournamentParticipant{
		participant("alice", 30, base),
		participant("bob", 30, base.Add(time.Minute)),
		participant("carol", 10, base),
	})

	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRank_TieBreakByEarlierRegistration(t *testing.T) {
	base := time.Now()
	entries := Rank([]domain.TournamentParticipant{
		participant("late", 30, base.Add(time.Hour)),
		participant("early", 30, base),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "early", entries[0].UserID)
	assert.Equal(t, "late", entries[1].UserID)
	// A tie-break does not split the shared rank
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
}

func TestRank_ExcludesDisqualified(t *testing.T) {
	base := time.Now()
	dq := participant("cheater", 99, base)
	dq.Disqualified = true

	entries := Rank([]domain.TournamentParticipant{
		dq,
		participant("alice", 10, base),
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestRank_Deterministic(t *testing.T) {
	base := time.Now()
	input := []domain.TournamentParticipant{
		participant("a", 5, base),
		participant("b", 5, base.Add(time.Second)),
		participant("c", 9, base),
		participant("d", 1, base),
	}

	first := Rank(input)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Rank(input))
	}
}

func TestRank_RankChange(t *testing.T) {
	base := time.Now()
	up := participant("up", 50, base)
	up.PreviousRank = 3
	fresh := participant("fresh", 40, base)

	entries := Rank([]domain.TournamentParticipant{up, fresh})

	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].RankChange)
	assert.Equal(t, 0, entries[1].RankChange)
}

func TestTierForRank(t *testing.T) {
	def := &domain.TournamentDefinition{
		Prizes: map[domain.PrizeTier]domain.Prize{
			domain.TierFirstPlace:    {XP: 1000, Points: 500, Cash: 100},
			domain.TierSecondPlace:   {XP: 500, Points: 250, Cash: 50},
			domain.TierThirdPlace:    {XP: 250, Points: 100, Cash: 25},
			domain.TierTop10:         {XP: 100, Points: 50},
			domain.TierParticipation: {XP: 10, Points: 5},
		},
	}

	tests := []struct {
		rank int
		want domain.PrizeTier
	}{
		{1, domain.TierFirstPlace},
		{2, domain.TierSecondPlace},
		{3, domain.TierThirdPlace},
		{4, domain.TierTop10},
		{10, domain.TierTop10},
		{11, domain.TierParticipation},
		{500, domain.TierParticipation},
	}
	for _, tt := range tests {
		tier, _, ok := tierForRank(def, tt.rank)
		require.True(t, ok)
		assert.Equal(t, tt.want, tier, "rank %d", tt.rank)
	}
}

func TestTierForRank_FallsThroughMissingTiers(t *testing.T) {
	def := &domain.TournamentDefinition{
		Prizes: map[domain.PrizeTier]domain.Prize{
			domain.TierFirstPlace:    {XP: 1000},
			domain.TierParticipation: {XP: 10},
		},
	}

	tier, prize, ok := tierForRank(def, 5)
	require.True(t, ok)
	assert.Equal(t, domain.TierParticipation, tier)
	assert.Equal(t, 10, prize.XP)
}

func TestTierForRank_NoMatchingTier(t *testing.T) {
	def := &domain.TournamentDefinition{
		Prizes: map[domain.PrizeTier]domain.Prize{
			domain.TierFirstPlace: {XP: 1000},
		},
	}

	_, _, ok := tierForRank(def, 2)
	assert.False(t, ok)
}

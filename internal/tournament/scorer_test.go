package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shareboost/rewards-engine/internal/domain"
)

func shareAt(at time.Time, xp, points int) domain.ShareEvent {
	return domain.ShareEvent{
		XPAwarded:     xp,
		PointsAwarded: points,
		Verified:      true,
		CreatedAt:     at,
	}
}

func TestScore_SharesCountWithMultiplier(t *testing.T) {
	def := domain.TournamentDefinition{
		ScoringMethod:   domain.ScoringSharesCount,
		BonusMultiplier: 1.5,
	}
	now := time.Now()
	shares := []domain.ShareEvent{
		shareAt(now, 10, 5),
		shareAt(now, 10, 5),
		shareAt(now, 10, 5),
		shareAt(now, 10, 5),
	}

	assert.Equal(t, 6, Score(def, domain.NewBonusMultipliers(), shares))
}

func TestScore_UnverifiedSharesIgnored(t *testing.T) {
	def := domain.TournamentDefinition{
		ScoringMethod:   domain.ScoringSharesCount,
		BonusMultiplier: 1.0,
	}
	now := time.Now()
	shares := []domain.ShareEvent{
		shareAt(now, 10, 5),
		{XPAwarded: 10, PointsAwarded: 5, Verified: false, CreatedAt: now},
	}

	assert.Equal(t, 1, Score(def, domain.NewBonusMultipliers(), shares))
}

func TestScore_XPAndPointsMethods(t *testing.T) {
	now := time.Now()
	shares := []domain.ShareEvent{
		shareAt(now, 30, 10),
		shareAt(now, 20, 15),
	}

	xpDef := domain.TournamentDefinition{ScoringMethod: domain.ScoringXPEarned, BonusMultiplier: 1.0}
	assert.Equal(t, 50, Score(xpDef, domain.NewBonusMultipliers(), shares))

	ptsDef := domain.TournamentDefinition{ScoringMethod: domain.ScoringPointsEarned, BonusMultiplier: 1.0}
	assert.Equal(t, 25, Score(ptsDef, domain.NewBonusMultipliers(), shares))
}

func TestScore_WeightedBlend(t *testing.T) {
	now := time.Now()
	shares := []domain.ShareEvent{shareAt(now, 100, 50)}
	def := domain.TournamentDefinition{ScoringMethod: domain.ScoringWeightedScore, BonusMultiplier: 1.0}

	// 0.6*100 + 0.4*50 = 80
	assert.Equal(t, 80, Score(def, domain.NewBonusMultipliers(), shares))
}

func TestScore_Deterministic(t *testing.T) {
	def := domain.TournamentDefinition{
		ScoringMethod:   domain.ScoringWeightedScore,
		BonusMultiplier: 1.25,
	}
	now := time.Now()
	shares := []domain.ShareEvent{
		shareAt(now, 33, 17),
		shareAt(now, 21, 9),
		shareAt(now, 7, 3),
	}

	first := Score(def, domain.NewBonusMultipliers(), shares)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Score(def, domain.NewBonusMultipliers(), shares))
	}
}

func TestScore_ParticipantMultiplierApplied(t *testing.T) {
	def := domain.TournamentDefinition{
		ScoringMethod:   domain.ScoringSharesCount,
		BonusMultiplier: 1.0,
	}
	now := time.Now()
	shares := []domain.ShareEvent{
		shareAt(now, 10, 5),
		shareAt(now, 10, 5),
		shareAt(now, 10, 5),
		shareAt(now, 10, 5),
	}

	m := domain.NewBonusMultipliers()
	m.EarlyBird = EarlyBirdMultiplier

	// round(4 * 1.1) = 4
	assert.Equal(t, 4, Score(def, m, shares))

	m.Streak = 1.2
	m.Performance = 1.15
	// 4 * 1.1 * 1.2 * 1.15 = 6.072
	assert.Equal(t, 6, Score(def, m, shares))
}

func TestRewardForShare_NoBonuses(t *testing.T) {
	def := &domain.TournamentDefinition{BonusMultiplier: 1.0}
	share := shareAt(time.Now(), 50, 20)

	reward := RewardForShare(def, share, 0, 0, 1)
	assert.Equal(t, 50, reward.XP)
	assert.Equal(t, 20, reward.Points)
}

func TestRewardForShare_MultiplierSurplus(t *testing.T) {
	def := &domain.TournamentDefinition{BonusMultiplier: 1.5}
	share := shareAt(time.Now(), 100, 40)

	reward := RewardForShare(def, share, 0, 0, 1)
	assert.Equal(t, 150, reward.XP)
	assert.Equal(t, 60, reward.Points)
}

func TestRewardForShare_PerformanceTiers(t *testing.T) {
	def := &domain.TournamentDefinition{BonusMultiplier: 1.0}
	share := shareAt(time.Now(), 100, 100)

	tests := []struct {
		name       string
		rank       int
		fieldSize  int
		wantXP     int
		wantPoints int
	}{
		{"top 10 percent", 1, 100, 130, 115},
		{"top 25 percent", 20, 100, 120, 110},
		{"top 50 percent", 50, 100, 110, 105},
		{"bottom half", 51, 100, 100, 100},
		{"unranked", 0, 100, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reward := RewardForShare(def, share, tt.rank, tt.fieldSize, 1)
			assert.Equal(t, tt.wantXP, reward.XP)
			assert.Equal(t, tt.wantPoints, reward.Points)
		})
	}
}

func TestRewardForShare_StreakBonus(t *testing.T) {
	def := &domain.TournamentDefinition{BonusMultiplier: 1.0}
	share := shareAt(time.Now(), 10, 10)

	short := RewardForShare(def, share, 0, 0, 2)
	assert.Equal(t, 10, short.XP)

	streak := RewardForShare(def, share, 0, 0, 4)
	assert.Equal(t, 10+4*StreakXPPerDay, streak.XP)
	assert.Equal(t, 10+4*StreakPointsPerDay, streak.Points)
}

func TestRewardForShare_EventBonus(t *testing.T) {
	featured := &domain.TournamentDefinition{BonusMultiplier: 1.0, IsFeatured: true}
	special := &domain.TournamentDefinition{BonusMultiplier: 1.0, Category: domain.CategorySpecialEvent}
	plain := &domain.TournamentDefinition{BonusMultiplier: 1.0}
	share := shareAt(time.Now(), 100, 100)

	for _, def := range []*domain.TournamentDefinition{featured, special} {
		reward := RewardForShare(def, share, 0, 0, 1)
		assert.Equal(t, 120, reward.XP)
		assert.Equal(t, 110, reward.Points)
	}

	reward := RewardForShare(plain, share, 0, 0, 1)
	assert.Equal(t, 100, reward.XP)
}

func TestRewardForShare_BonusesAdditive(t *testing.T) {
	def := &domain.TournamentDefinition{BonusMultiplier: 1.5, IsFeatured: true}
	share := shareAt(time.Now(), 100, 100)

	// base 100 + multiplier 50 + performance 30 + streak 60 + event 20
	reward := RewardForShare(def, share, 1, 100, 3)
	assert.Equal(t, 100+50+30+3*StreakXPPerDay+20, reward.XP)
	assert.Equal(t, 100+50+15+3*StreakPointsPerDay+10, reward.Points)
}

func TestStreakMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, streakMultiplier(0))
	assert.Equal(t, 1.0, streakMultiplier(2))
	assert.InDelta(t, 1.06, streakMultiplier(3), 1e-9)
	assert.Equal(t, StreakMultiplierCap, streakMultiplier(50))
}

func TestUniqueShareDays(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	shares := []domain.ShareEvent{
		shareAt(base, 1, 1),
		shareAt(base.Add(2*time.Hour), 1, 1),
		shareAt(base.AddDate(0, 0, 1), 1, 1),
		shareAt(base.AddDate(0, 0, 3), 1, 1),
		{Verified: false, CreatedAt: base.AddDate(0, 0, 5)},
	}
	assert.Equal(t, 3, uniqueShareDays(shares))
}

func TestIsEarlyBird(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	def := &domain.TournamentDefinition{StartTime: start}

	assert.True(t, isEarlyBird(def, shareAt(start.Add(time.Hour), 1, 1)))
	assert.True(t, isEarlyBird(def, shareAt(start.Add(23*time.Hour), 1, 1)))
	assert.False(t, isEarlyBird(def, shareAt(start.Add(25*time.Hour), 1, 1)))
	assert.False(t, isEarlyBird(def, shareAt(start.Add(-time.Minute), 1, 1)))
}

package badge

import (
	"context"
	"sync"
	"time"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of repository.Badge
// and repository.StatsSnapshotProvider for integration-style unit tests. Its
// CommitGrant honors the same conditional-commit contract as the Postgres
// implementation, so grant races behave the same way in tests.
type FakeRepository struct {
	mu       sync.Mutex
	badges   map[string]domain.BadgeDefinition
	grants   map[string][]domain.UserBadgeGrant // keyed by userID+":"+badgeID
	users    map[string]*fakeUserState
	progress map[string]domain.BadgeProgress // keyed by userID+":"+badgeID
}

type fakeUserState struct {
	currentXP         int
	currentPoints     int
	totalXPEarned     int
	totalPointsEarned int
	sharesCount       int
	tournamentsWon    int
	streakDays        int
	referralsCount    int
	categoriesShared  int
	appsShared        int
	totalPayouts      int
	earnedBadges      map[string]bool
	totalBadges       int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		badges:   make(map[string]domain.BadgeDefinition),
		grants:   make(map[string][]domain.UserBadgeGrant),
		users:    make(map[string]*fakeUserState),
		progress: make(map[string]domain.BadgeProgress),
	}
}

// AddBadge registers a badge definition
func (f *FakeRepository) AddBadge(def domain.BadgeDefinition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.badges[def.ID] = def
}

// SeedUser initializes a user's counters from a snapshot-shaped value
func (f *FakeRepository) SeedUser(s domain.StatsSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	earned := make(map[string]bool, len(s.EarnedBadges))
	for k, v := range s.EarnedBadges {
		earned[k] = v
	}
	f.users[s.UserID] = &fakeUserState{
		currentXP:         s.CurrentXP,
		currentPoints:     s.CurrentPoints,
		totalXPEarned:     s.TotalXPEarned,
		totalPointsEarned: s.TotalPointsEarned,
		sharesCount:       s.SharesCount,
		tournamentsWon:    s.TournamentsWon,
		streakDays:        s.StreakDays,
		referralsCount:    s.ReferralsCount,
		categoriesShared:  s.CategoriesShared,
		appsShared:        s.AppsShared,
		totalPayouts:      s.TotalPayouts,
		earnedBadges:      earned,
		totalBadges:       s.TotalBadgesEarned,
	}
}

// Get implements repository.StatsSnapshotProvider
func (f *FakeRepository) Get(ctx context.Context, userID string) (*domain.StatsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	earned := make(map[string]bool, len(u.earnedBadges))
	for k, v := range u.earnedBadges {
		earned[k] = v
	}

	return &domain.StatsSnapshot{
		UserID:            userID,
		CurrentXP:         u.currentXP,
		CurrentPoints:     u.currentPoints,
		TotalXPEarned:     u.totalXPEarned,
		TotalPointsEarned: u.totalPointsEarned,
		SharesCount:       u.sharesCount,
		TournamentsWon:    u.tournamentsWon,
		StreakDays:        u.streakDays,
		ReferralsCount:    u.referralsCount,
		Level:             domain.LevelForXP(u.totalXPEarned),
		CategoriesShared:  u.categoriesShared,
		AppsShared:        u.appsShared,
		TotalPayouts:      u.totalPayouts,
		EarnedBadges:      earned,
		TotalBadgesEarned: u.totalBadges,
		TakenAt:           time.Now(),
	}, nil
}

func (f *FakeRepository) GetActiveBadges(ctx context.Context) ([]domain.BadgeDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.BadgeDefinition
	for _, def := range f.badges {
		if def.IsActive {
			out = append(out, def)
		}
	}
	return out, nil
}

func (f *FakeRepository) GetBadgeByID(ctx context.Context, badgeID string) (*domain.BadgeDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	def, ok := f.badges[badgeID]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

func (f *FakeRepository) GetLastGrant(ctx context.Context, userID, badgeID string) (*domain.UserBadgeGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	grants := f.grants[userID+":"+badgeID]
	if len(grants) == 0 {
		return nil, nil
	}
	last := grants[len(grants)-1]
	return &last, nil
}

func (f *FakeRepository) CommitGrant(ctx context.Context, def domain.BadgeDefinition, grant domain.UserBadgeGrant) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[grant.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}

	key := grant.UserID + ":" + grant.BadgeID
	existing := f.grants[key]

	if !def.IsRepeatable && len(existing) > 0 {
		return domain.ErrAlreadyGranted
	}
	if def.IsRepeatable && def.CooldownDays > 0 && len(existing) > 0 {
		last := existing[len(existing)-1]
		if grant.EarnedAt.Sub(last.EarnedAt) < time.Duration(def.CooldownDays)*24*time.Hour {
			return domain.ErrAlreadyGranted
		}
	}

	f.grants[key] = append(existing, grant)

	u.currentXP += grant.XPAwarded
	u.currentPoints += grant.PointsAwarded
	u.totalXPEarned += grant.XPAwarded
	u.totalPointsEarned += grant.PointsAwarded
	u.totalBadges++
	if !def.IsRepeatable {
		u.earnedBadges[grant.BadgeID] = true
	}

	def.TimesAwarded++
	f.badges[def.ID] = def

	return nil
}

func (f *FakeRepository) UpsertProgress(ctx context.Context, progress domain.BadgeProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress[progress.UserID+":"+progress.BadgeID] = progress
	return nil
}

func (f *FakeRepository) GetProgress(ctx context.Context, userID string) ([]domain.BadgeProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.BadgeProgress
	for _, p := range f.progress {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GrantCount returns how many grants exist for (user, badge). Test helper.
func (f *FakeRepository) GrantCount(userID, badgeID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.grants[userID+":"+badgeID])
}

// TimesAwarded returns the badge's global award counter. Test helper.
func (f *FakeRepository) TimesAwarded(badgeID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.badges[badgeID].TimesAwarded
}

func (f *FakeRepository) UpsertBadgeDefinition(ctx context.Context, def domain.BadgeDefinition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.badges[def.ID]; ok {
		def.TimesAwarded = existing.TimesAwarded
	}
	f.badges[def.ID] = def
	return nil
}

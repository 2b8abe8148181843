package tournament

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Tournament for tests. All methods are safe for concurrent use.
type FakeRepository struct {
	mu           sync.Mutex
	tournaments  map[string]*domain.TournamentDefinition
	participants map[string]*domain.TournamentParticipant
	shares       map[string][]domain.ShareEvent
	credits      map[string]domain.PrizeWinner

	// FailTransition forces TransitionStatus to report not-applied
	FailTransition bool
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		tournaments:  make(map[string]*domain.TournamentDefinition),
		participants: make(map[string]*domain.TournamentParticipant),
		shares:       make(map[string][]domain.ShareEvent),
		credits:      make(map[string]domain.PrizeWinner),
	}
}

func participantKey(tournamentID, userID string) string {
	return tournamentID + ":" + userID
}

// AddTournament seeds a tournament definition
func (f *FakeRepository) AddTournament(t domain.TournamentDefinition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := t
	f.tournaments[t.ID] = &copied
}

// AddShare seeds one share event
func (f *FakeRepository) AddShare(share domain.ShareEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := participantKey(share.TournamentID, share.UserID)
	f.shares[key] = append(f.shares[key], share)
}

func (f *FakeRepository) SaveShare(ctx context.Context, share domain.ShareEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := participantKey(share.TournamentID, share.UserID)
	for _, existing := range f.shares[key] {
		if existing.ID == share.ID {
			return nil
		}
	}
	f.shares[key] = append(f.shares[key], share)
	return nil
}

// CreditCount returns how many prize credits were recorded
func (f *FakeRepository) CreditCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.credits)
}

// CreditFor returns the recorded prize credit for a user, if any
func (f *FakeRepository) CreditFor(tournamentID, userID string) (domain.PrizeWinner, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.credits[participantKey(tournamentID, userID)]
	return w, ok
}

func (f *FakeRepository) GetTournament(ctx context.Context, tournamentID string) (*domain.TournamentDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[tournamentID]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *FakeRepository) ListByStatus(ctx context.Context, status domain.TournamentStatus) ([]domain.TournamentDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TournamentDefinition
	for _, t := range f.tournaments {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeRepository) ListEndedLive(ctx context.Context, now time.Time) ([]domain.TournamentDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TournamentDefinition
	for _, t := range f.tournaments {
		if t.Status == domain.TournamentLive && !t.EndTime.After(now) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeRepository) TransitionStatus(ctx context.Context, tournamentID string, from, to domain.TournamentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailTransition {
		return false, nil
	}
	t, ok := f.tournaments[tournamentID]
	if !ok {
		return false, domain.ErrTournamentNotFound
	}
	if t.Status != from {
		return false, nil
	}
	t.Status = to
	return true, nil
}

func (f *FakeRepository) GetParticipant(ctx context.Context, tournamentID, userID string) (*domain.TournamentParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participants[participantKey(tournamentID, userID)]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *FakeRepository) ListParticipants(ctx context.Context, tournamentID string) ([]domain.TournamentParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TournamentParticipant
	for _, p := range f.participants {
		if p.TournamentID == tournamentID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *FakeRepository) UpsertParticipant(ctx context.Context, participant domain.TournamentParticipant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := participant
	f.participants[participantKey(participant.TournamentID, participant.UserID)] = &copied
	return nil
}

func (f *FakeRepository) UpdateRanks(ctx context.Context, tournamentID string, entries []domain.LeaderboardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		p, ok := f.participants[participantKey(tournamentID, e.UserID)]
		if !ok {
			continue
		}
		p.PreviousRank = p.CurrentRank
		p.CurrentRank = e.Rank
	}
	return nil
}

func (f *FakeRepository) ListVerifiedShares(ctx context.Context, tournamentID, userID string) ([]domain.ShareEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ShareEvent
	for _, share := range f.shares[participantKey(tournamentID, userID)] {
		if share.Verified {
			out = append(out, share)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *FakeRepository) CreditPrize(ctx context.Context, tournamentID, userID string, tier domain.PrizeTier, prize domain.Prize) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := participantKey(tournamentID, userID)
	if _, ok := f.credits[key]; ok {
		return nil
	}
	f.credits[key] = domain.PrizeWinner{UserID: userID, Tier: tier, Prize: prize}
	if p, ok := f.participants[key]; ok {
		t := tier
		p.PrizeTier = &t
	}
	return nil
}

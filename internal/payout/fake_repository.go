package payout

import (
	"context"
	"sync"

	"github.com/shareboost/rewards-engine/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of repository.Payout
// for tests. Creating a request folds its amount into the profile's in-flight
// aggregates the way the real store's atomic read does.
type FakeRepository struct {
	mu       sync.Mutex
	profiles map[string]*domain.PayoutProfile
	requests map[string]*domain.PayoutRequest
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		profiles: make(map[string]*domain.PayoutProfile),
		requests: make(map[string]*domain.PayoutRequest),
	}
}

// SeedProfile stores a payout profile
func (f *FakeRepository) SeedProfile(profile domain.PayoutProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := profile
	f.profiles[profile.UserID] = &copied
}

// RequestCount returns the number of persisted requests
func (f *FakeRepository) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// RequestsFor returns all persisted requests for a user
func (f *FakeRepository) RequestsFor(userID string) []domain.PayoutRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PayoutRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out
}

func (f *FakeRepository) GetProfile(ctx context.Context, userID string) (*domain.PayoutProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *FakeRepository) CreateRequest(ctx context.Context, request domain.PayoutRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := request
	f.requests[request.ID] = &copied

	if p, ok := f.profiles[request.UserID]; ok {
		switch request.Status {
		case domain.PayoutPending, domain.PayoutProcessing, domain.PayoutPendingReview:
			p.DailyTotal += request.AmountPoints
			p.WeeklyTotal += request.AmountPoints
			p.PendingCount++
		case domain.PayoutCompleted:
			p.DailyTotal += request.AmountPoints
			p.WeeklyTotal += request.AmountPoints
			p.MonthlyVolume += request.AmountPoints
			p.PointsBalance -= request.AmountPoints
		}
	}
	return nil
}

func (f *FakeRepository) UpdateStatus(ctx context.Context, requestID string, status domain.PayoutStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return domain.ErrInvalidInput
	}
	r.Status = status
	return nil
}

func (f *FakeRepository) GetRequest(ctx context.Context, requestID string) (*domain.PayoutRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

package payout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/domain"
)

type stubFraudScorer struct {
	score float64
	err   error
}

func (s *stubFraudScorer) Score(ctx context.Context, profile *domain.PayoutProfile, amount int, method domain.PayoutMethod) (float64, error) {
	return s.score, s.err
}

type stubProcessor struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubProcessor) Submit(ctx context.Context, method domain.PayoutMethod, details domain.PayoutDetails, amountPoints int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "tx-123", nil
}

func (s *stubProcessor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newPayoutService(repo *FakeRepository, fraud FraudScorer, proc PaymentProcessor) Service {
	return NewService(repo, fraud, proc, concurrency.NewLockManager(), nil, time.Second)
}

func TestEvaluate_AutoApprove(t *testing.T) {
	repo := NewFakeRepository()
	repo.SeedProfile(*cleanProfile())
	proc := &stubProcessor{}
	svc := newPayoutService(repo, &stubFraudScorer{score: 0.1}, proc)

	decision, err := svc.Evaluate(context.Background(), "alice", 1_000, domain.MethodPayPal, paypalDetails())
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeAutoApprove, decision.Outcome)
	assert.Equal(t, CodeApproved, decision.Code)
	assert.Equal(t, "tx-123", decision.TransactionID)
	assert.Equal(t, domain.RiskLow, decision.RiskLevel)
	assert.Equal(t, 59, decision.Fee.Total)
	assert.Equal(t, 1, proc.callCount())

	stored, err := svc.GetRequest(context.Background(), decision.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutCompleted, stored.Status)
}

func TestEvaluate_HighRiskRoutesToManualReview(t *testing.T) {
	repo := NewFakeRepository()
	profile := cleanProfile()
	profile.Region = "OTHER"
	profile.CountLast30d = 6
	repo.SeedProfile(*profile)
	proc := &stubProcessor{}
	svc := newPayoutService(repo, &stubFraudScorer{score: 0.1}, proc)

	decision, err := svc.Evaluate(context.Background(), "alice", 12_000, domain.MethodCrypto, domain.PayoutDetails{
		WalletAddress: "0xabc", CryptoNetwork: "ethereum",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeManualReview, decision.Outcome)
	assert.Equal(t, CodeHighRisk, decision.Code)
	assert.Equal(t, domain.RiskHigh, decision.RiskLevel)
	assert.GreaterOrEqual(t, decision.RiskScore, 80.0)
	// Never hits the processor
	assert.Equal(t, 0, proc.callCount())

	stored, err := svc.GetRequest(context.Background(), decision.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutPendingReview, stored.Status)
}

func TestEvaluate_ValidationReject(t *testing.T) {
	repo := NewFakeRepository()
	profile := cleanProfile()
	profile.KYCVerified = false
	repo.SeedProfile(*profile)
	proc := &stubProcessor{}
	svc := newPayoutService(repo, &stubFraudScorer{}, proc)

	decision, err := svc.Evaluate(context.Background(), "alice", 1_000, domain.MethodPayPal, paypalDetails())
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeReject, decision.Outcome)
	assert.Equal(t, CodeKYCNotVerified, decision.Code)
	assert.Equal(t, 0, proc.callCount())

	stored, err := svc.GetRequest(context.Background(), decision.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutRejected, stored.Status)
}

func TestEvaluate_FraudScorerDownFailsSafe(t *testing.T) {
	repo := NewFakeRepository()
	repo.SeedProfile(*cleanProfile())
	proc := &stubProcessor{}
	svc := newPayoutService(repo, &stubFraudScorer{err: errors.New("connection refused")}, proc)

	decision, err := svc.Evaluate(context.Background(), "alice", 1_000, domain.MethodPayPal, paypalDetails())
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeManualReview, decision.Outcome)
	assert.Equal(t, CodeDependencyUnavailable, decision.Code)
	assert.Equal(t, 0, proc.callCount())
}

func TestEvaluate_ProcessorFailureIsFailedNotReject(t *testing.T) {
	repo := NewFakeRepository()
	repo.SeedProfile(*cleanProfile())
	proc := &stubProcessor{err: context.DeadlineExceeded}
	svc := newPayoutService(repo, &stubFraudScorer{score: 0.1}, proc)

	decision, err := svc.Evaluate(context.Background(), "alice", 1_000, domain.MethodPayPal, paypalDetails())
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFailed, decision.Outcome)
	assert.Equal(t, CodeProcessorFailure, decision.Code)
	assert.NotEqual(t, domain.OutcomeReject, decision.Outcome)

	stored, err := svc.GetRequest(context.Background(), decision.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutFailed, stored.Status)
}

func TestEvaluate_UnknownUser(t *testing.T) {
	repo := NewFakeRepository()
	svc := newPayoutService(repo, &stubFraudScorer{}, &stubProcessor{})

	_, err := svc.Evaluate(context.Background(), "ghost", 1_000, domain.MethodPayPal, paypalDetails())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Two simultaneous requests must not jointly exceed the daily cap: the
// per-user lock makes the second request observe the first one's total.
func TestEvaluate_ConcurrentRequestsRespectDailyCap(t *testing.T) {
	repo := NewFakeRepository()
	profile := cleanProfile()
	profile.Level = 10
	profile.PointsBalance = 200_000
	repo.SeedProfile(*profile)
	svc := newPayoutService(repo, &stubFraudScorer{score: 0.1}, &stubProcessor{})

	const amount = 15_000 // two of these exceed the 25k daily cap
	var wg sync.WaitGroup
	outcomes := make(chan *domain.PayoutDecision, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := svc.Evaluate(context.Background(), "alice", amount, domain.MethodPayPal, paypalDetails())
			if assert.NoError(t, err) {
				outcomes <- decision
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	approved, capped := 0, 0
	for d := range outcomes {
		switch {
		case d.Outcome == domain.OutcomeAutoApprove:
			approved++
		case d.Outcome == domain.OutcomeReject && d.Code == CodeDailyCapExceeded:
			capped++
		}
	}
	assert.Equal(t, 1, approved)
	assert.Equal(t, 1, capped)
}

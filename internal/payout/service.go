package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/event"
	"github.com/shareboost/rewards-engine/internal/logger"
	"github.com/shareboost/rewards-engine/internal/metrics"
	"github.com/shareboost/rewards-engine/internal/repository"
)

// FraudScorer estimates fraud likelihood for a payout request in [0, 1].
// Implementations are external services; calls are bounded by the service's
// external-call timeout.
type FraudScorer interface {
	Score(ctx context.Context, profile *domain.PayoutProfile, amount int, method domain.PayoutMethod) (float64, error)
}

// PaymentProcessor submits an approved payout for delivery
type PaymentProcessor interface {
	Submit(ctx context.Context, method domain.PayoutMethod, details domain.PayoutDetails, amountPoints int) (transactionID string, err error)
}

type Service interface {
	// Evaluate runs the full decision pipeline for one payout request:
	// validation chain, risk scoring, fee computation, then processor
	// submission for auto-approved requests. Serialized per user so two
	// simultaneous requests cannot jointly exceed the daily or weekly caps.
	//
	// Negative decisions (reject, manual_review, failed) are normal results,
	// not errors; the error return is reserved for storage faults.
	Evaluate(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error)

	GetRequest(ctx context.Context, requestID string) (*domain.PayoutRequest, error)
}

type service struct {
	repo            repository.Payout
	fraud           FraudScorer
	processor       PaymentProcessor
	locks           *concurrency.LockManager
	publisher       *event.ResilientPublisher
	externalTimeout time.Duration
	now             func() time.Time
}

func NewService(repo repository.Payout, fraud FraudScorer, processor PaymentProcessor, locks *concurrency.LockManager, publisher *event.ResilientPublisher, externalTimeout time.Duration) Service {
	return &service{
		repo:            repo,
		fraud:           fraud,
		processor:       processor,
		locks:           locks,
		publisher:       publisher,
		externalTimeout: externalTimeout,
		now:             time.Now,
	}
}

func (s *service) Evaluate(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error) {
	var decision *domain.PayoutDecision
	err := s.locks.WithLock(payoutLockPrefix+userID, func() error {
		var err error
		decision, err = s.evaluate(ctx, userID, amount, method, details)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PayoutDecisions.WithLabelValues(string(decision.Outcome)).Inc()
	if decision.Outcome != domain.OutcomeReject {
		metrics.PayoutRiskScore.Observe(decision.RiskScore)
	}
	if decision.Outcome == domain.OutcomeAutoApprove {
		metrics.PayoutFeePoints.Add(float64(decision.Fee.Total))
	}

	logger.FromContext(ctx).Info(LogMsgPayoutEvaluated,
		"user_id", userID,
		"amount", amount,
		"method", method,
		"outcome", decision.Outcome,
		"code", decision.Code,
		"risk_score", decision.RiskScore)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewPayoutEvaluatedEvent(userID, *decision))
	}
	return decision, nil
}

func (s *service) evaluate(ctx context.Context, userID string, amount int, method domain.PayoutMethod, details domain.PayoutDetails) (*domain.PayoutDecision, error) {
	log := logger.FromContext(ctx)

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}

	request := domain.PayoutRequest{
		ID:           uuid.NewString(),
		UserID:       userID,
		AmountPoints: amount,
		Method:       method,
		Details:      details,
		CreatedAt:    s.now(),
	}

	if v := ValidateRequest(profile, amount, method, details); !v.OK {
		request.Status = domain.PayoutRejected
		s.persist(ctx, request)
		return &domain.PayoutDecision{
			RequestID: request.ID,
			Outcome:   domain.OutcomeReject,
			Code:      v.Code,
		}, nil
	}

	fraudScore, fraudErr := s.fraudScore(ctx, profile, amount, method)
	if fraudErr != nil {
		// Fail safe: an unavailable fraud scorer never auto-approves
		log.Warn(LogMsgFraudScorerDown, "user_id", userID, "error", fraudErr)

		request.Status = domain.PayoutPendingReview
		request.RiskLevel = domain.RiskHigh
		s.persist(ctx, request)
		return &domain.PayoutDecision{
			RequestID: request.ID,
			Outcome:   domain.OutcomeManualReview,
			Code:      CodeDependencyUnavailable,
			RiskLevel: domain.RiskHigh,
		}, nil
	}

	riskScore := ScoreRisk(profile, amount, method, fraudScore)
	riskLevel := ClassifyRisk(riskScore)
	fee := ComputeFee(amount, method, riskLevel, profile.MonthlyVolume)

	request.Fee = fee
	request.RiskScore = riskScore
	request.RiskLevel = riskLevel

	decision := &domain.PayoutDecision{
		RequestID: request.ID,
		Fee:       fee,
		RiskScore: riskScore,
		RiskLevel: riskLevel,
	}

	if riskLevel == domain.RiskHigh {
		request.Status = domain.PayoutPendingReview
		s.persist(ctx, request)
		decision.Outcome = domain.OutcomeManualReview
		decision.Code = CodeHighRisk
		return decision, nil
	}

	txID, procErr := s.submit(ctx, method, details, amount)
	if procErr != nil {
		// A processor fault is failed, not reject; the caller owns retries
		log.Warn(LogMsgProcessorFailed, "user_id", userID, "request_id", request.ID, "error", procErr)

		request.Status = domain.PayoutFailed
		s.persist(ctx, request)
		decision.Outcome = domain.OutcomeFailed
		decision.Code = CodeProcessorFailure
		return decision, nil
	}

	request.Status = domain.PayoutCompleted
	s.persist(ctx, request)
	decision.Outcome = domain.OutcomeAutoApprove
	decision.Code = CodeApproved
	decision.TransactionID = txID
	return decision, nil
}

// fraudScore calls the external fraud service with a bounded timeout
func (s *service) fraudScore(ctx context.Context, profile *domain.PayoutProfile, amount int, method domain.PayoutMethod) (float64, error) {
	if s.fraud == nil {
		return 0, domain.ErrDependencyUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.externalTimeout)
	defer cancel()
	return s.fraud.Score(ctx, profile, amount, method)
}

// submit calls the payment processor with a bounded timeout
func (s *service) submit(ctx context.Context, method domain.PayoutMethod, details domain.PayoutDetails, amount int) (string, error) {
	if s.processor == nil {
		return "", domain.ErrDependencyUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.externalTimeout)
	defer cancel()
	return s.processor.Submit(ctx, method, details, amount)
}

// persist records the request's final decision state. Best effort: a storage
// fault here must not drop the decision already made.
func (s *service) persist(ctx context.Context, request domain.PayoutRequest) {
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		logger.FromContext(ctx).Error(LogMsgPayoutPersistFailed,
			"request_id", request.ID,
			"user_id", request.UserID,
			"error", err)
	}
}

func (s *service) GetRequest(ctx context.Context, requestID string) (*domain.PayoutRequest, error) {
	return s.repo.GetRequest(ctx, requestID)
}

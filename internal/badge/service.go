package badge

import (
	"context"
	"errors"
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

// GrantOutcome is the result of a grant attempt. A negative eligibility
// outcome (already earned, threshold not met, ...) is a normal result with
// Granted=false and a reason code, not an error.
type GrantOutcome struct {
	Granted    bool                 `json:"granted"`
	ReasonCode string               `json:"reason_code"`
	Result     *domain.GrantResult  `json:"result,omitempty"`
}

type Service interface {
	// EvaluateBadge screens a single badge against a fresh snapshot without
	// committing anything.
	EvaluateBadge(ctx context.Context, userID, badgeID string) (domain.EvaluationResult, error)

	// Grant re-validates eligibility against a freshly fetched snapshot and
	// commits the grant atomically. Serialized per (user, badge).
	Grant(ctx context.Context, userID, badgeID string) (*GrantOutcome, error)

	// EvaluateAndGrantAll runs a full pass over every active badge. The
	// working snapshot is logically refreshed after each successful grant so
	// cascading badges (e.g. badge_count thresholds) resolve in one pass.
	// Afterwards, progress records are upserted for every still-unearned badge.
	EvaluateAndGrantAll(ctx context.Context, userID, triggerEvent string) (*domain.BatchGrantResult, error)

	GetProgress(ctx context.Context, userID string) ([]domain.BadgeProgress, error)

	// InvalidateDefinitions drops the cached badge set, e.g. after an admin
	// change.
	InvalidateDefinitions()
}

type service struct {
	repo      repository.Badge
	snapshots repository.StatsSnapshotProvider
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	cache     *definitionCache
	now       func() time.Time
}

func NewService(repo repository.Badge, snapshots repository.StatsSnapshotProvider, locks *concurrency.LockManager, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		snapshots: snapshots,
		locks:     locks,
		publisher: publisher,
		cache:     newDefinitionCache(DefinitionCacheTTL),
		now:       time.Now,
	}
}

func (s *service) EvaluateBadge(ctx context.Context, userID, badgeID string) (domain.EvaluationResult, error) {
	def, err := s.repo.GetBadgeByID(ctx, badgeID)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("fetch badge: %w", err)
	}
	if def == nil {
		return domain.EvaluationResult{}, domain.ErrBadgeNotFound
	}

	snapshot, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("fetch snapshot: %w", err)
	}

	return Evaluate(*def, snapshot, s.now()), nil
}

func (s *service) Grant(ctx context.Context, userID, badgeID string) (*GrantOutcome, error) {
	def, err := s.repo.GetBadgeByID(ctx, badgeID)
	if err != nil {
		return nil, fmt.Errorf("fetch badge: %w", err)
	}
	if def == nil {
		return nil, domain.ErrBadgeNotFound
	}

	var outcome *GrantOutcome
	lockKey := grantLockPrefix + userID + ":" + badgeID
	err = s.locks.WithLock(lockKey, func() error {
		// Re-validate against a snapshot fetched inside the lock; the caller's
		// view may be stale by the time we get here.
		snapshot, err := s.snapshots.Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch snapshot: %w", err)
		}

		result, reason, err := s.tryGrant(ctx, *def, snapshot)
		if err != nil {
			return err
		}
		outcome = &GrantOutcome{Granted: result != nil, ReasonCode: reason, Result: result}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// tryGrant evaluates and, when eligible, commits one grant. Returns a nil
// result with a reason code for negative outcomes.
func (s *service) tryGrant(ctx context.Context, def domain.BadgeDefinition, snapshot *domain.StatsSnapshot) (*domain.GrantResult, string, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	if def.IsRepeatable && def.CooldownDays > 0 {
		last, err := s.repo.GetLastGrant(ctx, snapshot.UserID, def.ID)
		if err != nil {
			return nil, "", fmt.Errorf("fetch last grant: %w", err)
		}
		if last != nil && now.Sub(last.EarnedAt) < time.Duration(def.CooldownDays)*24*time.Hour {
			metrics.GrantRejections.WithLabelValues(domain.ReasonCooldownActive).Inc()
			return nil, domain.ReasonCooldownActive, nil
		}
	}

	eval := Evaluate(def, snapshot, now)
	if !eval.Eligible {
		metrics.GrantRejections.WithLabelValues(eval.ReasonCode).Inc()
		return nil, eval.ReasonCode, nil
	}

	grant := domain.UserBadgeGrant{
		ID:            uuid.NewString(),
		UserID:        snapshot.UserID,
		BadgeID:       def.ID,
		EarnedAt:      now,
		XPAwarded:     def.XPReward,
		PointsAwarded: def.PointsReward,
		ValueAtGrant:  eval.CurrentValue,
		StreakCount:   snapshot.StreakDays,
	}

	if err := s.repo.CommitGrant(ctx, def, grant); err != nil {
		if errors.Is(err, domain.ErrAlreadyGranted) {
			// Lost a commit race to a concurrent grant; success-adjacent
			log.Info(LogMsgGrantRaceLost, "user_id", snapshot.UserID, "badge_id", def.ID)
			metrics.GrantRejections.WithLabelValues(domain.ReasonAlreadyEarned).Inc()
			return nil, domain.ReasonAlreadyEarned, nil
		}
		return nil, "", fmt.Errorf("commit grant: %w", err)
	}

	newLevel := domain.LevelForXP(snapshot.TotalXPEarned + def.XPReward)
	result := &domain.GrantResult{
		Grant:         &grant,
		XPAwarded:     def.XPReward,
		PointsAwarded: def.PointsReward,
		NewLevel:      newLevel,
		LevelChanged:  newLevel != snapshot.Level,
	}

	metrics.BadgesGranted.WithLabelValues(def.ID).Inc()
	metrics.XPAwarded.Add(float64(def.XPReward))
	metrics.PointsAwarded.Add(float64(def.PointsReward))

	log.Info(LogMsgBadgeGranted,
		"user_id", snapshot.UserID,
		"badge_id", def.ID,
		"xp", def.XPReward,
		"points", def.PointsReward,
		"new_level", newLevel)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewBadgeGrantedEvent(grant))
		if result.LevelChanged {
			s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(snapshot.UserID, snapshot.Level, newLevel))
		}
	}

	return result, domain.ReasonEligible, nil
}

func (s *service) EvaluateAndGrantAll(ctx context.Context, userID, triggerEvent string) (*domain.BatchGrantResult, error) {
	log := logger.FromContext(ctx)

	defs, err := s.activeBadges(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	working := cloneSnapshot(snapshot)
	batch := &domain.BatchGrantResult{NewLevel: working.Level}

	for _, def := range defs {
		if def.ThresholdValue <= 0 {
			log.Warn(LogMsgBadgeMisconfigured, "badge_id", def.ID, "threshold", def.ThresholdValue)
			batch.EvaluatedEach = append(batch.EvaluatedEach, domain.EvaluationResult{
				BadgeID:    def.ID,
				ReasonCode: domain.ReasonInvalidConfig,
			})
			continue
		}

		def := def
		var result *domain.GrantResult
		var reason string
		lockKey := grantLockPrefix + userID + ":" + def.ID
		err := s.locks.WithLock(lockKey, func() error {
			var err error
			result, reason, err = s.tryGrant(ctx, def, working)
			return err
		})
		if err != nil {
			return nil, err
		}

		if result == nil {
			eval := Evaluate(def, working, s.now())
			if reason != "" {
				eval.ReasonCode = reason
			}
			batch.EvaluatedEach = append(batch.EvaluatedEach, eval)
			continue
		}

		// Logical refresh: later badges in this pass see the updated
		// counters, so cascades like badge_count thresholds resolve now.
		applyGrant(working, def, result)

		batch.Granted = append(batch.Granted, *result.Grant)
		batch.TotalXP += result.XPAwarded
		batch.TotalPoints += result.PointsAwarded
		batch.NewLevel = result.NewLevel
		batch.LevelChanged = batch.LevelChanged || result.LevelChanged
	}

	s.updateProgress(ctx, defs, working)

	log.Info(LogMsgBatchCompleted,
		"user_id", userID,
		"trigger", triggerEvent,
		"granted", len(batch.Granted),
		"total_xp", batch.TotalXP,
		"total_points", batch.TotalPoints)

	return batch, nil
}

// updateProgress upserts a progress hint for every badge the user has not
// earned. Best effort: failures are logged, never surfaced.
func (s *service) updateProgress(ctx context.Context, defs []domain.BadgeDefinition, snapshot *domain.StatsSnapshot) {
	log := logger.FromContext(ctx)
	now := s.now()

	for _, def := range defs {
		if snapshot.HasBadge(def.ID) || def.ThresholdValue <= 0 {
			continue
		}
		progress := ProgressFor(def, snapshot, now)
		if err := s.repo.UpsertProgress(ctx, progress); err != nil {
			log.Warn(LogMsgProgressUpdateFail, "user_id", snapshot.UserID, "badge_id", def.ID, "error", err)
		}
	}
}

func (s *service) GetProgress(ctx context.Context, userID string) ([]domain.BadgeProgress, error) {
	return s.repo.GetProgress(ctx, userID)
}

func (s *service) InvalidateDefinitions() {
	s.cache.Invalidate()
}

func (s *service) activeBadges(ctx context.Context) ([]domain.BadgeDefinition, error) {
	if defs, ok := s.cache.GetActive(); ok {
		return defs, nil
	}
	defs, err := s.repo.GetActiveBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch active badges: %w", err)
	}
	s.cache.SetActive(defs)
	return defs, nil
}

// cloneSnapshot deep-copies a snapshot so the batch pass can mutate its
// working view without touching the caller's copy
func cloneSnapshot(in *domain.StatsSnapshot) *domain.StatsSnapshot {
	out := *in
	out.EarnedBadges = make(map[string]bool, len(in.EarnedBadges))
	for k, v := range in.EarnedBadges {
		out.EarnedBadges[k] = v
	}
	return &out
}

// applyGrant folds a committed grant's deltas into the working snapshot
func applyGrant(s *domain.StatsSnapshot, def domain.BadgeDefinition, result *domain.GrantResult) {
	s.CurrentXP += result.XPAwarded
	s.CurrentPoints += result.PointsAwarded
	s.TotalXPEarned += result.XPAwarded
	s.TotalPointsEarned += result.PointsAwarded
	s.TotalBadgesEarned++
	if !def.IsRepeatable {
		s.EarnedBadges[def.ID] = true
	}
	s.Level = result.NewLevel
}

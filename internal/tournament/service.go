package tournament

import (
	"context"
	"fmt"
	"time"

	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/domain"
	"github.com/shareboost/rewards-engine/internal/event"
	"github.com/shareboost/rewards-engine/internal/logger"
	"github.com/shareboost/rewards-engine/internal/metrics"
	"github.com/shareboost/rewards-engine/internal/repository"
)

// ScoreUpdate is the outcome of scoring one verified share
type ScoreUpdate struct {
	TournamentID string      `json:"tournament_id"`
	UserID       string      `json:"user_id"`
	NewScore     int         `json:"new_score"`
	PreviousRank int         `json:"previous_rank"`
	NewRank      int         `json:"new_rank"`
	Reward       ShareReward `json:"reward"`
}

// RegistrationOptions carries the eligibility inputs checked at registration
// time
type RegistrationOptions struct {
	Level    int
	Region   string
	Referred bool
}

type Service interface {
	// RegisterParticipant enrolls a user before the registration deadline,
	// enforcing the tournament's level and region gates.
	RegisterParticipant(ctx context.Context, tournamentID, userID string, opts RegistrationOptions) (*domain.TournamentParticipant, error)

	// RecordShare scores one verified share: the participant's score is
	// recomputed from all their verified shares, bonus multipliers are
	// refreshed, and ranks are rebuilt. Serialized per (tournament, user).
	RecordShare(ctx context.Context, share domain.ShareEvent) (*ScoreUpdate, error)

	GetLeaderboard(ctx context.Context, tournamentID string) ([]domain.LeaderboardEntry, error)

	// RecalculateRanks rebuilds and persists the leaderboard from current
	// scores. Safe to call repeatedly; same scores yield the same board.
	RecalculateRanks(ctx context.Context, tournamentID string) ([]domain.LeaderboardEntry, error)

	// CloseTournament transitions live -> completed. Closing an already
	// completed or distributed tournament is a no-op.
	CloseTournament(ctx context.Context, tournamentID string) error

	// DistributePrizes pays out prizes exactly once per tournament. The
	// completed -> prizes_distributed transition is the commit barrier; a
	// second caller gets ErrAlreadyDistributed.
	DistributePrizes(ctx context.Context, tournamentID string) (*domain.DistributionResult, error)

	Disqualify(ctx context.Context, tournamentID, userID, cause string) error
	SubmitAppeal(ctx context.Context, tournamentID, userID string) error

	// ResolveAppeal moves a pending appeal to approved or rejected. Approval
	// reinstates the participant on the board.
	ResolveAppeal(ctx context.Context, tournamentID, userID string, approve bool) error
}

type service struct {
	repo      repository.Tournament
	locks     *concurrency.LockManager
	publisher *event.ResilientPublisher
	now       func() time.Time
}

func NewService(repo repository.Tournament, locks *concurrency.LockManager, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) RegisterParticipant(ctx context.Context, tournamentID, userID string, opts RegistrationOptions) (*domain.TournamentParticipant, error) {
	t, err := s.tournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.After(t.RegistrationDeadline) {
		return nil, domain.ErrRegistrationClosed
	}
	if opts.Level < t.MinLevel {
		return nil, fmt.Errorf("%w: level %d below minimum %d", domain.ErrInvalidInput, opts.Level, t.MinLevel)
	}
	if t.MaxLevel > 0 && opts.Level > t.MaxLevel {
		return nil, fmt.Errorf("%w: level %d above maximum %d", domain.ErrInvalidInput, opts.Level, t.MaxLevel)
	}
	if len(t.EligibleRegions) > 0 && !containsString(t.EligibleRegions, opts.Region) {
		return nil, fmt.Errorf("%w: region %s not eligible", domain.ErrInvalidInput, opts.Region)
	}

	if existing, err := s.repo.GetParticipant(ctx, tournamentID, userID); err != nil {
		return nil, fmt.Errorf("fetch participant: %w", err)
	} else if existing != nil {
		return existing, nil
	}

	p := domain.TournamentParticipant{
		TournamentID: tournamentID,
		UserID:       userID,
		RegisteredAt: now,
		Multipliers:  domain.NewBonusMultipliers(),
		Appeal:       domain.AppealNone,
	}
	if opts.Referred {
		p.Multipliers.Referral = ReferralMultiplier
	}

	if err := s.repo.UpsertParticipant(ctx, p); err != nil {
		return nil, fmt.Errorf("register participant: %w", err)
	}
	return &p, nil
}

func (s *service) RecordShare(ctx context.Context, share domain.ShareEvent) (*ScoreUpdate, error) {
	log := logger.FromContext(ctx)

	if !share.Verified {
		return nil, fmt.Errorf("%w: share %s is not verified", domain.ErrInvalidInput, share.ID)
	}

	t, err := s.tournament(ctx, share.TournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.TournamentLive {
		return nil, domain.ErrTournamentNotLive
	}
	if share.CreatedAt.Before(t.StartTime) || share.CreatedAt.After(t.EndTime) {
		return nil, fmt.Errorf("%w: share outside tournament window", domain.ErrInvalidInput)
	}

	participants, err := s.repo.ListParticipants(ctx, share.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	fieldSize := activeFieldSize(participants)

	var update *ScoreUpdate
	lockKey := scoreLockPrefix + share.TournamentID + ":" + share.UserID
	err = s.locks.WithLock(lockKey, func() error {
		p, err := s.repo.GetParticipant(ctx, share.TournamentID, share.UserID)
		if err != nil {
			return fmt.Errorf("fetch participant: %w", err)
		}
		if p == nil {
			return domain.ErrUserNotFound
		}
		if p.Disqualified {
			return fmt.Errorf("%w: participant is disqualified", domain.ErrInvalidInput)
		}

		if err := s.repo.SaveShare(ctx, share); err != nil {
			return fmt.Errorf("save share: %w", err)
		}

		shares, err := s.repo.ListVerifiedShares(ctx, share.TournamentID, share.UserID)
		if err != nil {
			return fmt.Errorf("list shares: %w", err)
		}

		uniqueDays := uniqueShareDays(shares)
		if isEarlyBird(t, share) || anyEarlyBird(t, shares) {
			p.Multipliers.EarlyBird = EarlyBirdMultiplier
		}
		p.Multipliers.Streak = streakMultiplier(uniqueDays)
		p.Multipliers.Performance = performanceMultiplier(p.CurrentRank, fieldSize)
		p.StreakDays = uniqueDays

		reward := RewardForShare(t, share, p.CurrentRank, fieldSize, uniqueDays)
		p.Score = Score(*t, p.Multipliers, shares)

		if err := s.repo.UpsertParticipant(ctx, *p); err != nil {
			return fmt.Errorf("update participant: %w", err)
		}

		update = &ScoreUpdate{
			TournamentID: share.TournamentID,
			UserID:       share.UserID,
			NewScore:     p.Score,
			PreviousRank: p.CurrentRank,
			Reward:       reward,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries, err := s.RecalculateRanks(ctx, share.TournamentID)
	if err != nil {
		return nil, err
	}
	update.NewRank = rankOf(entries, share.UserID)

	metrics.TournamentScores.Inc()
	log.Info(LogMsgShareScored,
		"tournament_id", share.TournamentID,
		"user_id", share.UserID,
		"share_id", share.ID,
		"new_score", update.NewScore,
		"new_rank", update.NewRank)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewTournamentScoredEvent(
			share.TournamentID, share.UserID, share.ID, update.NewScore, update.NewRank))
	}

	return update, nil
}

func (s *service) GetLeaderboard(ctx context.Context, tournamentID string) ([]domain.LeaderboardEntry, error) {
	participants, err := s.repo.ListParticipants(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return Rank(participants), nil
}

func (s *service) RecalculateRanks(ctx context.Context, tournamentID string) ([]domain.LeaderboardEntry, error) {
	participants, err := s.repo.ListParticipants(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	entries := Rank(participants)
	if err := s.repo.UpdateRanks(ctx, tournamentID, entries); err != nil {
		return nil, fmt.Errorf("update ranks: %w", err)
	}

	logger.FromContext(ctx).Debug(LogMsgRanksRecomputed,
		"tournament_id", tournamentID,
		"entries", len(entries))
	return entries, nil
}

func (s *service) CloseTournament(ctx context.Context, tournamentID string) error {
	log := logger.FromContext(ctx)

	applied, err := s.repo.TransitionStatus(ctx, tournamentID, domain.TournamentLive, domain.TournamentCompleted)
	if err != nil {
		return fmt.Errorf("close tournament: %w", err)
	}
	if !applied {
		t, err := s.tournament(ctx, tournamentID)
		if err != nil {
			return err
		}
		switch t.Status {
		case domain.TournamentCompleted, domain.TournamentPrizesDistributed:
			return nil
		default:
			return domain.ErrTournamentNotLive
		}
	}

	// Freeze final standings as of close time
	entries, err := s.RecalculateRanks(ctx, tournamentID)
	if err != nil {
		return err
	}

	log.Info(LogMsgTournamentClosed, "tournament_id", tournamentID, "participants", len(entries))
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewTournamentClosedEvent(tournamentID, len(entries)))
	}
	return nil
}

func (s *service) DistributePrizes(ctx context.Context, tournamentID string) (*domain.DistributionResult, error) {
	log := logger.FromContext(ctx)

	var result *domain.DistributionResult
	err := s.locks.WithLock(distributeLockPrefix+tournamentID, func() error {
		t, err := s.tournament(ctx, tournamentID)
		if err != nil {
			return err
		}
		switch t.Status {
		case domain.TournamentPrizesDistributed:
			log.Info(LogMsgDistributionNoOp, "tournament_id", tournamentID)
			return domain.ErrAlreadyDistributed
		case domain.TournamentCompleted:
		default:
			return domain.ErrTournamentNotCompleted
		}

		// The status transition is the commit barrier: whoever wins the
		// compare-and-commit owns the distribution, everyone else no-ops.
		applied, err := s.repo.TransitionStatus(ctx, tournamentID, domain.TournamentCompleted, domain.TournamentPrizesDistributed)
		if err != nil {
			return fmt.Errorf("transition status: %w", err)
		}
		if !applied {
			return domain.ErrAlreadyDistributed
		}

		result, err = s.creditWinners(ctx, t)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PrizesDistributed.Inc()
	log.Info(LogMsgPrizesDistributed,
		"tournament_id", tournamentID,
		"winners", len(result.Winners),
		"total_xp", result.TotalXP,
		"total_points", result.TotalPoints)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewPrizesDistributedEvent(*result))
	}
	return result, nil
}

// creditWinners walks the final board and credits each rank's prize tier.
// Credits are idempotent per (tournament, user), so a crashed distribution
// can be resumed without double pay.
func (s *service) creditWinners(ctx context.Context, t *domain.TournamentDefinition) (*domain.DistributionResult, error) {
	participants, err := s.repo.ListParticipants(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	entries := Rank(participants)

	result := &domain.DistributionResult{TournamentID: t.ID}
	for _, entry := range entries {
		tier, prize, ok := tierForRank(t, entry.Rank)
		if !ok {
			continue
		}
		if err := s.repo.CreditPrize(ctx, t.ID, entry.UserID, tier, prize); err != nil {
			return nil, fmt.Errorf("credit prize for %s: %w", entry.UserID, err)
		}
		result.Winners = append(result.Winners, domain.PrizeWinner{
			UserID: entry.UserID,
			Rank:   entry.Rank,
			Tier:   tier,
			Prize:  prize,
		})
		result.TotalXP += prize.XP
		result.TotalPoints += prize.Points
		result.TotalCash += prize.Cash
	}
	return result, nil
}

func (s *service) Disqualify(ctx context.Context, tournamentID, userID, cause string) error {
	p, err := s.participant(ctx, tournamentID, userID)
	if err != nil {
		return err
	}

	p.Disqualified = true
	p.DisqualifyCause = cause
	p.Appeal = domain.AppealNone
	if err := s.repo.UpsertParticipant(ctx, *p); err != nil {
		return fmt.Errorf("disqualify participant: %w", err)
	}

	_, err = s.RecalculateRanks(ctx, tournamentID)
	return err
}

func (s *service) SubmitAppeal(ctx context.Context, tournamentID, userID string) error {
	p, err := s.participant(ctx, tournamentID, userID)
	if err != nil {
		return err
	}
	if !p.Disqualified {
		return fmt.Errorf("%w: participant is not disqualified", domain.ErrInvalidInput)
	}
	if p.Appeal != domain.AppealNone {
		return fmt.Errorf("%w: appeal already %s", domain.ErrInvalidInput, p.Appeal)
	}

	p.Appeal = domain.AppealPending
	return s.repo.UpsertParticipant(ctx, *p)
}

func (s *service) ResolveAppeal(ctx context.Context, tournamentID, userID string, approve bool) error {
	p, err := s.participant(ctx, tournamentID, userID)
	if err != nil {
		return err
	}
	if p.Appeal != domain.AppealPending {
		return domain.ErrAppealNotPending
	}

	if approve {
		p.Appeal = domain.AppealApproved
		p.Disqualified = false
		p.DisqualifyCause = ""
	} else {
		p.Appeal = domain.AppealRejected
	}
	if err := s.repo.UpsertParticipant(ctx, *p); err != nil {
		return fmt.Errorf("resolve appeal: %w", err)
	}

	if approve {
		if _, err := s.RecalculateRanks(ctx, tournamentID); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).Info(LogMsgAppealResolved,
		"tournament_id", tournamentID,
		"user_id", userID,
		"status", p.Appeal)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewAppealResolvedEvent(tournamentID, userID, p.Appeal))
	}
	return nil
}

func (s *service) tournament(ctx context.Context, tournamentID string) (*domain.TournamentDefinition, error) {
	t, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("fetch tournament: %w", err)
	}
	if t == nil {
		return nil, domain.ErrTournamentNotFound
	}
	return t, nil
}

func (s *service) participant(ctx context.Context, tournamentID, userID string) (*domain.TournamentParticipant, error) {
	p, err := s.repo.GetParticipant(ctx, tournamentID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch participant: %w", err)
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}

// activeFieldSize counts non-disqualified participants
func activeFieldSize(participants []domain.TournamentParticipant) int {
	n := 0
	for _, p := range participants {
		if !p.Disqualified {
			n++
		}
	}
	return n
}

// anyEarlyBird reports whether any prior verified share landed in the
// early-bird window
func anyEarlyBird(t *domain.TournamentDefinition, shares []domain.ShareEvent) bool {
	for _, share := range shares {
		if isEarlyBird(t, share) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

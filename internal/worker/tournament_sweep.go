package worker

import (
	"context"
	"time"

	"github.com/shareboost/rewards-engine/internal/logger"
	"github.com/shareboost/rewards-engine/internal/repository"
	"github.com/shareboost/rewards-engine/internal/tournament"
)

// TournamentSweep closes live tournaments whose end time has passed and
// distributes their prizes. It implements Job so the scheduler can run it on
// a fixed interval. Both close and distribute are idempotent in the service,
// so overlapping sweeps and crash-retry runs are safe.
type TournamentSweep struct {
	repo    repository.Tournament
	service tournament.Service
	now     func() time.Time
}

// NewTournamentSweep creates a sweep job over the given repository and service
func NewTournamentSweep(repo repository.Tournament, service tournament.Service) *TournamentSweep {
	return &TournamentSweep{
		repo:    repo,
		service: service,
		now:     time.Now,
	}
}

// Process runs one sweep pass
func (s *TournamentSweep) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	ended, err := s.repo.ListEndedLive(ctx, s.now())
	if err != nil {
		log.Error(LogMsgSweepListFailed, "error", err)
		return err
	}

	if len(ended) == 0 {
		return nil
	}

	log.Info(LogMsgSweepStarting, "count", len(ended))

	var firstErr error
	for _, t := range ended {
		if err := s.service.CloseTournament(ctx, t.ID); err != nil {
			log.Error(LogMsgSweepCloseFailed, "error", err, "tournament_id", t.ID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Info(LogMsgSweepClosed, "tournament_id", t.ID)

		result, err := s.service.DistributePrizes(ctx, t.ID)
		if err != nil {
			log.Error(LogMsgSweepDistributeError, "error", err, "tournament_id", t.ID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Info(LogMsgSweepDistributed,
			"tournament_id", t.ID,
			"winners", len(result.Winners),
			"total_xp", result.TotalXP,
			"total_points", result.TotalPoints)
	}

	log.Info(LogMsgSweepCompleted, "count", len(ended))
	return firstErr
}

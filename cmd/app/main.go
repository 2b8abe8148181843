package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shareboost/rewards-engine/internal/badge"
	"github.com/shareboost/rewards-engine/internal/bootstrap"
	"github.com/shareboost/rewards-engine/internal/concurrency"
	"github.com/shareboost/rewards-engine/internal/config"
	"github.com/shareboost/rewards-engine/internal/database"
	"github.com/shareboost/rewards-engine/internal/database/postgres"
	"github.com/shareboost/rewards-engine/internal/eventlog"
	"github.com/shareboost/rewards-engine/internal/external"
	"github.com/shareboost/rewards-engine/internal/payout"
	"github.com/shareboost/rewards-engine/internal/scheduler"
	"github.com/shareboost/rewards-engine/internal/server"
	"github.com/shareboost/rewards-engine/internal/sse"
	"github.com/shareboost/rewards-engine/internal/tournament"
	"github.com/shareboost/rewards-engine/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLogger(cfg)
	slog.Info("Starting rewards engine",
		"version", cfg.Version,
		"environment", cfg.Environment,
		"port", cfg.Port)

	ctx := context.Background()

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dbPool, err := database.NewPool(ctx, connString, cfg.DBMaxConns, cfg.DBConnMaxIdleTime, cfg.DBConnMaxLifetime)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer dbPool.Close()

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize event system: %w", err)
	}

	badgeRepo := postgres.NewBadgeRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)
	tournamentRepo := postgres.NewTournamentRepository(dbPool)
	payoutRepo := postgres.NewPayoutRepository(dbPool)
	eventLogRepo := postgres.NewEventLogRepository(dbPool)

	if err := bootstrap.SyncBadgeDefinitions(ctx, badgeRepo, cfg.BadgeConfigPath); err != nil {
		return fmt.Errorf("failed to sync badge definitions: %w", err)
	}

	auditService := eventlog.NewService(eventLogRepo)
	if err := auditService.Subscribe(bus); err != nil {
		return fmt.Errorf("failed to subscribe event audit logger: %w", err)
	}

	locks := concurrency.NewLockManager()

	fraudClient := external.NewFraudClient(cfg.FraudAPIURL, cfg.FraudAPIKey)
	processorClient := external.NewProcessorClient(cfg.ProcessorAPIURL, cfg.ProcessorAPIKey)

	badgeService := badge.NewService(badgeRepo, statsRepo, locks, publisher)
	tournamentService := tournament.NewService(tournamentRepo, locks, publisher)
	payoutService := payout.NewService(payoutRepo, fraudClient, processorClient, locks, publisher, cfg.ExternalCallTimeout)

	sseHub := sse.NewHub()
	sseHub.Start()
	sse.NewSubscriber(sseHub, bus).Subscribe()

	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.TournamentSweepInterval, worker.NewTournamentSweep(tournamentRepo, tournamentService))
	sched.Schedule(cfg.EventCleanupInterval, eventlog.NewCleanupJob(auditService, cfg.EventRetentionDays))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, badgeService, tournamentService, payoutService, sseHub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         workerPool,
		SSEHub:             sseHub,
		ResilientPublisher: publisher,
	})

	return nil
}

package bootstrap

import (
	"context"
	"log/slog"

	"github.com/shareboost/rewards-engine/internal/event"
	"github.com/shareboost/rewards-engine/internal/scheduler"
	"github.com/shareboost/rewards-engine/internal/server"
	"github.com/shareboost/rewards-engine/internal/sse"
	"github.com/shareboost/rewards-engine/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown shuts down application components in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler, then the worker pool (drain queued jobs)
// 3. SSE hub (disconnect stream clients)
// 4. Event publisher (flush in-flight retries)
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgShuttingDownWorkers)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	slog.Info(LogMsgServerStopped)
}

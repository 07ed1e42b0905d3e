package bootstrap

import (
	"context"
	"log/slog"

	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/notify"
	"github.com/gauss2302/agrogame/internal/scheduler"
	"github.com/gauss2302/agrogame/internal/server"
	"github.com/gauss2302/agrogame/internal/sse"
	"github.com/gauss2302/agrogame/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	GrowthWorker       *worker.GrowthWorker
	SSEHub             *sse.Hub
	Notifier           *notify.DiscordNotifier
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application in dependency order:
//  1. HTTP server, so no new requests start
//  2. reconcile scheduler and worker pool
//  3. growth worker, cancelling timers and waiting for in-flight transitions
//  4. event publisher, flushing events those transitions emitted
//  5. subscribers that only consume events (event stream, Discord)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.GrowthWorker != nil {
		if err := c.GrowthWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgGrowthWorkerFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.SSEHub != nil {
		c.SSEHub.Stop()
	}
	if c.Notifier != nil {
		if err := c.Notifier.Stop(ctx); err != nil {
			slog.Error(LogMsgNotifierFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

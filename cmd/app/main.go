package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gauss2302/agrogame/internal/bootstrap"
	"github.com/gauss2302/agrogame/internal/clock"
	"github.com/gauss2302/agrogame/internal/config"
	"github.com/gauss2302/agrogame/internal/database"
	"github.com/gauss2302/agrogame/internal/eventlog"
	"github.com/gauss2302/agrogame/internal/farm"
	"github.com/gauss2302/agrogame/internal/handler"
	"github.com/gauss2302/agrogame/internal/scheduler"
	"github.com/gauss2302/agrogame/internal/server"
	"github.com/gauss2302/agrogame/internal/sse"
	"github.com/gauss2302/agrogame/internal/worker"
)

const (
	shutdownTimeout    = 30 * time.Second
	reconcileWorkers   = 1
	reconcileQueueSize = 4
)

// @title Agrogame API
// @version 1.0
// @description Farming game backend: plots, server-driven crop growth, harvests and real product deliveries.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatalf("agrogame: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn(w)
	}
	handler.Version = cfg.Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.PoolConfig())
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if _, err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	crops, err := bootstrap.SyncCropCatalog(ctx, cfg.CropCatalogPath, repos.Catalog)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	clk := clock.NewRealClock()
	farmService := farm.NewService(repos.Farm, crops, cfg.FarmOptions(), publisher, clk)

	if _, err := farmService.GetOrCreateFarm(ctx, cfg.DefaultFarmID); err != nil {
		return err
	}

	growthWorker := worker.NewGrowthWorker(farmService, crops, clk, worker.GrowthWorkerConfig{
		MinStepDelay: cfg.MinStepDelay,
	})

	hub := sse.NewHub()
	hub.Start()

	eventLog := eventlog.NewService(repos.EventLog, clk)

	notifier, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:     eventBus,
		GrowthWorker: growthWorker,
		SSEHub:       hub,
		EventLog:     eventLog,
		Config:       cfg,
	})
	if err != nil {
		return err
	}

	// A failed resume is retried by the reconcile sweep
	if err := growthWorker.Start(ctx); err != nil {
		slog.Error("Initial growth resume failed", "error", err)
	}

	pool := worker.NewPool(reconcileWorkers, reconcileQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(cfg.ReconcileInterval, &worker.ReconcileJob{Worker: growthWorker})
	sched.Schedule(cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(eventLog, cfg.EventLogRetention))

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
		DefaultFarmID:  cfg.DefaultFarmID,
		ClaimCacheSize: cfg.ClaimCacheSize,
		ClaimCacheTTL:  cfg.ClaimCacheTTL,
	}, server.Dependencies{
		DBPool:   dbPool,
		Farm:     farmService,
		Catalog:  crops,
		SSEHub:   hub,
		Activity: eventLog,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		GrowthWorker:       growthWorker,
		SSEHub:             hub,
		Notifier:           notifier,
		ResilientPublisher: publisher,
	})
	return err
}

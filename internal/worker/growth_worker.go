package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gauss2302/agrogame/internal/clock"
	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/growth"
	"github.com/gauss2302/agrogame/internal/logger"
	"github.com/gauss2302/agrogame/internal/metrics"
)

// GrowthService is the part of the farm service the worker drives
type GrowthService interface {
	AdvancePlotStage(ctx context.Context, farmID, plotID int64, target domain.Stage) (*domain.Plot, error)
	GetPlot(ctx context.Context, farmID, plotID int64) (*domain.Plot, error)
	ListActivePlots(ctx context.Context) ([]domain.Plot, error)
}

// CropDurations resolves how long a crop takes to grow
type CropDurations interface {
	GrowDuration(crop domain.CropType) (time.Duration, error)
}

// GrowthWorkerConfig tunes the growth worker
type GrowthWorkerConfig struct {
	// MinStepDelay spaces consecutive transitions of one plot when both are overdue
	MinStepDelay time.Duration
}

// GrowthWorker moves planted crops through their stages on the server.
// It keeps at most one timer per plot, always for the plot's next pending
// transition, and recomputes from the persisted plot after every step.
type GrowthWorker struct {
	BaseWorker
	service      GrowthService
	durations    CropDurations
	minStepDelay time.Duration
}

// NewGrowthWorker creates a new GrowthWorker. A nil clock uses real time.
func NewGrowthWorker(service GrowthService, durations CropDurations, clk clock.Clock, cfg GrowthWorkerConfig) *GrowthWorker {
	w := &GrowthWorker{
		service:      service,
		durations:    durations,
		minStepDelay: cfg.MinStepDelay,
	}
	w.init(clk)
	return w
}

// Start schedules every plot that was still growing when the process last stopped
func (w *GrowthWorker) Start(ctx context.Context) error {
	_, err := w.Resume(ctx)
	return err
}

// Resume loads all planted and growing plots and (re)schedules their next
// transition from server time. Overdue steps are scheduled to run at once.
func (w *GrowthWorker) Resume(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGrowthResumeStarting)

	plots, err := w.service.ListActivePlots(ctx)
	if err != nil {
		log.Error(LogMsgGrowthResumeFailed, "error", err)
		return 0, err
	}

	scheduled := 0
	for _, p := range plots {
		if w.Schedule(ctx, p) {
			scheduled++
		}
	}

	log.Info(LogMsgGrowthResumeCompleted, "active_plots", len(plots), "scheduled", scheduled)
	return scheduled, nil
}

// Schedule arms the timer for the plot's next transition, replacing any
// earlier timer for the same plot. It reports whether a timer was armed.
func (w *GrowthWorker) Schedule(ctx context.Context, plot domain.Plot) bool {
	if plot.Crop == nil || plot.PlantedAt == nil || (plot.Stage != domain.StagePlanted && plot.Stage != domain.StageGrowing) {
		w.Cancel(plot.ID)
		logger.FromContext(ctx).Debug(LogMsgGrowthNothingPending, logger.AttrKeyPlotID, plot.ID, "stage", plot.Stage)
		return false
	}
	return w.scheduleNext(ctx, plot, 0)
}

// Cancel drops the pending timer for a plot, if any
func (w *GrowthWorker) Cancel(plotID int64) {
	if w.stopTimer(plotID) {
		metrics.GrowthTimersActive.Set(float64(w.pending()))
	}
}

// Subscribe registers the worker on the bus so plantings get timers and
// harvested plots lose theirs
func (w *GrowthWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.CropPlanted, w.handleCropPlanted)
	bus.Subscribe(event.CropHarvested, w.handleCropHarvested)
}

// Shutdown cancels all pending timers and waits for in-flight transitions
func (w *GrowthWorker) Shutdown(ctx context.Context) error {
	err := w.shutdownInternal(ctx, GrowthWorkerName)
	metrics.GrowthTimersActive.Set(0)
	return err
}

// scheduleNext arms the first pending transition of plot, waiting at least floor
func (w *GrowthWorker) scheduleNext(ctx context.Context, plot domain.Plot, floor time.Duration) bool {
	log := logger.FromContext(ctx)

	if plot.Crop == nil {
		return false
	}
	duration, err := w.durations.GrowDuration(*plot.Crop)
	if err != nil {
		log.Warn(LogMsgGrowthDurationUnknown, logger.AttrKeyPlotID, plot.ID, "crop", *plot.Crop, "error", err)
		metrics.GrowthTransitionFailures.WithLabelValues(string(plot.Stage)).Inc()
		return false
	}

	pending := growth.PendingTransitions(plot, duration, w.clock.Now(), growth.WithMinStepDelay(w.minStepDelay))
	if len(pending) == 0 {
		log.Debug(LogMsgGrowthNothingPending, logger.AttrKeyPlotID, plot.ID, "stage", plot.Stage)
		return false
	}

	next := pending[0]
	delay := max(next.Delay, floor)
	farmID, plotID := plot.FarmID, plot.ID

	if !w.arm(plotID, delay, func() { w.advance(farmID, plotID, next.Target) }) {
		return false
	}

	metrics.GrowthPlotsScheduled.Inc()
	metrics.GrowthTimersActive.Set(float64(w.pending()))
	log.Debug(LogMsgGrowthScheduled, logger.AttrKeyFarmID, farmID, logger.AttrKeyPlotID, plotID, "target", next.Target, "delay", delay)
	return true
}

// advance runs one fired timer. Failures other than "not due" are logged
// and counted; the next reconcile sweep picks the plot up again.
func (w *GrowthWorker) advance(farmID, plotID int64, target domain.Stage) {
	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Debug(LogMsgGrowthTransitionFired, logger.AttrKeyFarmID, farmID, logger.AttrKeyPlotID, plotID, "target", target)

	plot, err := w.service.AdvancePlotStage(ctx, farmID, plotID, target)
	switch {
	case err == nil:
		log.Debug(LogMsgGrowthTransitionDone, logger.AttrKeyPlotID, plotID, "stage", plot.Stage)
		w.scheduleNext(ctx, *plot, w.minStepDelay)

	case errors.Is(err, domain.ErrStageNotDue):
		log.Debug(LogMsgGrowthNotDue, logger.AttrKeyPlotID, plotID, "target", target)
		current, gerr := w.service.GetPlot(ctx, farmID, plotID)
		if gerr != nil {
			w.recordFailure(log, plotID, target, gerr)
			break
		}
		w.scheduleNext(ctx, *current, NotDueRetryDelay)

	case errors.Is(err, domain.ErrNotFound):
		log.Info(LogMsgGrowthPlotGone, logger.AttrKeyPlotID, plotID)

	default:
		w.recordFailure(log, plotID, target, err)
	}

	metrics.GrowthTimersActive.Set(float64(w.pending()))
}

func (w *GrowthWorker) recordFailure(log *slog.Logger, plotID int64, target domain.Stage, err error) {
	log.Error(LogMsgGrowthTransitionFailed, logger.AttrKeyPlotID, plotID, "target", target, "error", err)
	metrics.GrowthTransitionFailures.WithLabelValues(string(target)).Inc()
}

func (w *GrowthWorker) handleCropPlanted(ctx context.Context, e event.Event) error {
	p, err := event.DecodePayload[domain.CropPlantedPayload](e.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodePlantedPayload, err)
	}

	plot, err := w.service.GetPlot(ctx, p.FarmID, p.PlotID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadPlantedPlot, err)
	}
	w.Schedule(ctx, *plot)
	return nil
}

func (w *GrowthWorker) handleCropHarvested(ctx context.Context, e event.Event) error {
	p, err := event.DecodePayload[domain.CropHarvestedPayload](e.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodeHarvestedPayload, err)
	}
	if w.stopTimer(p.PlotID) {
		logger.FromContext(ctx).Debug(LogMsgGrowthTimerCancelled, logger.AttrKeyPlotID, p.PlotID)
		metrics.GrowthTimersActive.Set(float64(w.pending()))
	}
	return nil
}

// ReconcileJob is the periodic sweep that recovers transitions whose timers
// were lost or failed
type ReconcileJob struct {
	Worker *GrowthWorker
}

// Process implements Job
func (j *ReconcileJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgReconcileStarting)
	metrics.GrowthReconcileRuns.Inc()

	scheduled, err := j.Worker.Resume(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgReconcileFailed, err)
	}
	log.Debug(LogMsgReconcileCompleted, "scheduled", scheduled)
	return nil
}

package farm

import (
	"context"
	"fmt"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/growth"
	"github.com/gauss2302/agrogame/internal/logger"
)

// AdvancePlotStage moves a plot forward to target, persisting growing before
// ready. Each step is a compare-and-swap on the stored stage and planting, so
// a timer racing a harvest or another timer never moves a plot twice.
func (s *service) AdvancePlotStage(ctx context.Context, farmID, plotID int64, target domain.Stage) (*domain.Plot, error) {
	log := logger.FromContext(ctx)

	if !target.IsTimeDriven() {
		return nil, fmt.Errorf("%w: %s: %q", domain.ErrInvalidStage, ErrMsgTargetNotTimeDriven, target)
	}

	for attempt := 0; attempt < maxAdvanceAttempts; {
		plot, err := s.GetPlot(ctx, farmID, plotID)
		if err != nil {
			return nil, err
		}
		if err := growth.CheckPlotInvariant(*plot); err != nil {
			return nil, err
		}

		if growth.Reached(*plot, target) {
			log.Debug(LogMsgStageAlreadyAt, logger.AttrKeyPlotID, plotID, "stage", plot.Stage, "target", target)
			return plot, nil
		}

		next, ok := plot.Stage.Next()
		if !ok {
			return nil, fmt.Errorf("%w: plot %d cannot advance from %s", domain.ErrInvariantViolation, plotID, plot.Stage)
		}

		duration, err := s.catalog.GrowDuration(*plot.Crop)
		if err != nil {
			return nil, err
		}
		// target due implies every earlier step is due, so nothing is
		// persisted for a call that would fail part way
		now := s.now()
		if err := growth.CheckDue(*plot, duration, target, now); err != nil {
			return nil, err
		}

		changed, err := s.repo.AdvancePlotStage(ctx, plotID, *plot.PlantedAt, plot.Stage, next)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAdvanceStage, err)
		}
		if !changed {
			attempt++
			log.Debug(LogMsgStageCASLost, logger.AttrKeyPlotID, plotID, "from", plot.Stage, "to", next)
			continue
		}

		from := plot.Stage
		plot.Stage = next
		log.Info(LogMsgStageAdvanced, logger.AttrKeyFarmID, farmID, logger.AttrKeyPlotID, plotID, "from", from, "to", next)
		s.publish(ctx, event.NewPlotStageChangedEvent(*plot, from, now))

		if next == target {
			return plot, nil
		}
	}

	return nil, fmt.Errorf("%w: plot %d: %s", domain.ErrPreconditionFailed, plotID, ErrMsgAdvanceContended)
}

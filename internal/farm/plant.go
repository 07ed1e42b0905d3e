package farm

import (
	"context"
	"fmt"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/logger"
	"github.com/gauss2302/agrogame/internal/repository"
)

// PlantCrop debits the plant cost and plants crop on an empty plot
func (s *service) PlantCrop(ctx context.Context, farmID, plotID int64, crop domain.CropType) (*domain.PlantResult, error) {
	log := logger.FromContext(ctx)

	if _, err := s.catalog.Get(crop); err != nil {
		return nil, err
	}

	// 1. Begin transaction
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 2. Lock the plot
	plot, err := tx.GetPlotForUpdate(ctx, plotID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockPlot, err)
	}
	if plot.FarmID != farmID {
		return nil, domain.ErrPlotNotFound
	}
	if !plot.IsEmpty() {
		return nil, fmt.Errorf("%w: plot %d is %s", domain.ErrPlotNotEmpty, plotID, plot.Stage)
	}

	// 3. Pay for the seed; the update refuses to overdraw
	balance, err := tx.DebitCoins(ctx, farmID, s.opts.PlantCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDebitCoins, err)
	}

	// 4. Plant
	planted, err := tx.PlantPlot(ctx, plotID, crop, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPlant, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}

	log.Info(LogMsgCropPlanted, logger.AttrKeyFarmID, farmID, logger.AttrKeyPlotID, plotID, "crop", crop, "balance", balance)
	s.publish(ctx, event.NewCropPlantedEvent(*planted, s.opts.PlantCost, balance))

	return &domain.PlantResult{Plot: *planted, NewCoinBalance: balance}, nil
}

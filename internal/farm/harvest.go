package farm

import (
	"context"
	"errors"
	"fmt"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/logger"
	"github.com/gauss2302/agrogame/internal/repository"
)

// HarvestCrop collects a ready plot: coins and one virtual harvest are
// credited, history is appended and the plot is reset, all in one transaction.
func (s *service) HarvestCrop(ctx context.Context, farmID, plotID int64) (*domain.HarvestResult, error) {
	log := logger.FromContext(ctx)

	// 1. Begin transaction
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 2. Lock and check the plot
	plot, err := tx.GetPlotForUpdate(ctx, plotID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockPlot, err)
	}
	if plot.FarmID != farmID {
		return nil, domain.ErrPlotNotFound
	}
	if plot.Stage != domain.StageReady {
		return nil, fmt.Errorf("%w: plot %d is %s", domain.ErrCropNotReady, plotID, plot.Stage)
	}
	if plot.Crop == nil {
		return nil, fmt.Errorf("%w: plot %d: %s", domain.ErrInvariantViolation, plotID, ErrMsgPlotMissingCrop)
	}
	crop := *plot.Crop

	entry, err := s.catalog.Get(crop)
	if err != nil {
		return nil, err
	}

	// 3. Credit coins and the virtual harvest counter together
	farm, err := tx.CreditHarvest(ctx, farmID, entry.HarvestValue)
	if err != nil {
		if errors.Is(err, domain.ErrFarmNotFound) {
			return nil, fmt.Errorf("%w: farm %d: %s", domain.ErrInvariantViolation, farmID, ErrMsgFarmMissingOnHarvest)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreditHarvest, err)
	}

	// 4. History and reset
	now := s.now()
	if err := tx.InsertHarvestHistory(ctx, &domain.HarvestHistoryEntry{
		FarmID:      farmID,
		CropType:    crop,
		CoinsEarned: entry.HarvestValue,
		HarvestedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToRecordHarvest, err)
	}

	reset, err := tx.ResetPlot(ctx, plotID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToResetPlot, err)
	}

	conv, err := Convert(farm.VirtualHarvestTotal, s.opts.VirtualToRealRatio)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}

	result := &domain.HarvestResult{
		Plot:                 *reset,
		NewCoinBalance:       farm.CoinBalance,
		TotalVirtualHarvests: farm.VirtualHarvestTotal,
		RealProductsReady:    conv.Ready,
		ProgressToNextReal:   conv.Progress,
		HarvestedCrop:        crop,
		EarnedCoins:          entry.HarvestValue,
		RealProductUnlocked:  conv.Unlocked(),
	}

	log.Info(LogMsgCropHarvested, logger.AttrKeyFarmID, farmID, logger.AttrKeyPlotID, plotID, "crop", crop,
		"coins", entry.HarvestValue, "virtual_total", farm.VirtualHarvestTotal)
	s.publish(ctx, event.NewCropHarvestedEvent(farmID, plotID, result, now))

	if result.RealProductUnlocked {
		log.Info(LogMsgRealProductUnlock, logger.AttrKeyFarmID, farmID, "ready", conv.Ready)
		s.publish(ctx, event.NewRealProductUnlockedEvent(farmID, conv.Ready, now))
	}

	return result, nil
}

// GetHarvestStats counts successful harvests per crop type
func (s *service) GetHarvestStats(ctx context.Context, farmID int64) (*domain.HarvestStats, error) {
	counts, err := s.repo.GetHarvestCounts(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountHarvests, err)
	}

	stats := &domain.HarvestStats{CountsByCropType: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// GetHarvestHistory returns the most recent harvests first
func (s *service) GetHarvestHistory(ctx context.Context, farmID int64, limit int) ([]domain.HarvestHistoryEntry, error) {
	history, err := s.repo.ListHarvestHistory(ctx, farmID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListHistory, err)
	}
	return history, nil
}

package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/gauss2302/agrogame/internal/clock"
	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/logger"
	"github.com/gauss2302/agrogame/internal/repository"
)

// Service defines the farming business operations. Every operation names
// the farm it acts on.
type Service interface {
	// GetOrCreateFarm returns the farm and its grid, creating both on first use
	GetOrCreateFarm(ctx context.Context, farmID int64) (*domain.FarmView, error)

	// PlantCrop debits the plant cost and plants crop on an empty plot
	PlantCrop(ctx context.Context, farmID, plotID int64, crop domain.CropType) (*domain.PlantResult, error)

	// AdvancePlotStage moves a plot forward to target once it is due.
	// A plot already at or past target is returned unchanged.
	AdvancePlotStage(ctx context.Context, farmID, plotID int64, target domain.Stage) (*domain.Plot, error)

	// HarvestCrop collects a ready plot and credits its value
	HarvestCrop(ctx context.Context, farmID, plotID int64) (*domain.HarvestResult, error)

	// ClaimRealProducts converts whole real products into a delivery order
	ClaimRealProducts(ctx context.Context, farmID int64, req domain.ClaimRequest) (*domain.ClaimResult, error)

	GetDeliveryStatus(ctx context.Context, farmID int64) (*domain.DeliveryStatus, error)
	GetHarvestStats(ctx context.Context, farmID int64) (*domain.HarvestStats, error)
	GetHarvestHistory(ctx context.Context, farmID int64, limit int) ([]domain.HarvestHistoryEntry, error)

	GetPlot(ctx context.Context, farmID, plotID int64) (*domain.Plot, error)
	ListActivePlots(ctx context.Context) ([]domain.Plot, error)

	ListOrders(ctx context.Context, farmID int64, limit int) ([]domain.DeliveryOrder, error)
	GetOrder(ctx context.Context, farmID, orderID int64) (*domain.DeliveryOrder, error)
	UpdateOrderStatus(ctx context.Context, farmID, orderID int64, status domain.OrderStatus) (*domain.DeliveryOrder, error)
}

// Catalog is the crop lookup the service needs
type Catalog interface {
	Get(crop domain.CropType) (domain.CropCatalogEntry, error)
	GrowDuration(crop domain.CropType) (time.Duration, error)
}

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

type service struct {
	repo      repository.Farm
	catalog   Catalog
	opts      domain.FarmOptions
	publisher EventPublisher
	clock     clock.Clock
}

// NewService creates a new farm service. publisher may be nil.
func NewService(repo repository.Farm, catalog Catalog, opts domain.FarmOptions, publisher EventPublisher, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		repo:      repo,
		catalog:   catalog,
		opts:      opts,
		publisher: publisher,
		clock:     clk,
	}
}

// now is the persisted timestamp precision: UTC, microseconds
func (s *service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

// GetOrCreateFarm returns the farm and its grid, creating both on first use
func (s *service) GetOrCreateFarm(ctx context.Context, farmID int64) (*domain.FarmView, error) {
	created, err := s.repo.EnsureFarm(ctx, farmID, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEnsureFarm, err)
	}
	if created {
		logger.FromContext(ctx).Info(LogMsgFarmCreated, logger.AttrKeyFarmID, farmID, "plots", s.opts.PlotCount())
	}

	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetFarm, err)
	}
	plots, err := s.repo.GetPlots(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlots, err)
	}
	return &domain.FarmView{Farm: *farm, Plots: plots}, nil
}

// GetPlot returns a plot only if it belongs to farmID
func (s *service) GetPlot(ctx context.Context, farmID, plotID int64) (*domain.Plot, error) {
	plot, err := s.repo.GetPlot(ctx, plotID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlot, err)
	}
	if plot.FarmID != farmID {
		return nil, domain.ErrPlotNotFound
	}
	return plot, nil
}

// ListActivePlots returns every planted or growing plot across farms
func (s *service) ListActivePlots(ctx context.Context) ([]domain.Plot, error) {
	plots, err := s.repo.ListActivePlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListActive, err)
	}
	return plots, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

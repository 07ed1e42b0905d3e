package repository

import (
	"context"
	"time"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Farm handles farm, plot, harvest and delivery order persistence
type Farm interface {
	// EnsureFarm creates the farm and its GridSize*GridSize empty plots if they
	// do not exist yet. It reports whether the farm row was created.
	EnsureFarm(ctx context.Context, farmID int64, opts domain.FarmOptions) (bool, error)

	GetFarm(ctx context.Context, farmID int64) (*domain.Farm, error)

	// GetPlots returns the farm's plots ordered by position
	GetPlots(ctx context.Context, farmID int64) ([]domain.Plot, error)
	GetPlot(ctx context.Context, plotID int64) (*domain.Plot, error)

	// ListActivePlots returns every planted or growing plot across all farms
	ListActivePlots(ctx context.Context) ([]domain.Plot, error)

	// AdvancePlotStage moves a plot from one stage to another only if it is
	// still in from and still holds the planting made at plantedAt. It reports
	// whether the row changed.
	AdvancePlotStage(ctx context.Context, plotID int64, plantedAt time.Time, from, to domain.Stage) (bool, error)

	GetHarvestCounts(ctx context.Context, farmID int64) (map[domain.CropType]int, error)
	ListHarvestHistory(ctx context.Context, farmID int64, limit int) ([]domain.HarvestHistoryEntry, error)

	ListDeliveryOrders(ctx context.Context, farmID int64, limit int) ([]domain.DeliveryOrder, error)
	GetDeliveryOrder(ctx context.Context, farmID, orderID int64) (*domain.DeliveryOrder, error)
	UpdateDeliveryOrderStatus(ctx context.Context, farmID, orderID int64, status domain.OrderStatus, at time.Time) (*domain.DeliveryOrder, error)

	// Transaction support
	BeginTx(ctx context.Context) (FarmTx, error)
}

// FarmTx defines the operations that run inside one farm transaction
type FarmTx interface {
	Tx

	// GetFarmForUpdate retrieves the farm row with FOR UPDATE lock
	GetFarmForUpdate(ctx context.Context, farmID int64) (*domain.Farm, error)

	// GetPlotForUpdate retrieves the plot row with FOR UPDATE lock
	GetPlotForUpdate(ctx context.Context, plotID int64) (*domain.Plot, error)

	// DebitCoins subtracts amount only if the balance covers it, returning
	// domain.ErrInsufficientFunds otherwise
	DebitCoins(ctx context.Context, farmID int64, amount int) (int, error)

	// CreditHarvest adds coins and one virtual harvest in a single update
	CreditHarvest(ctx context.Context, farmID int64, coins int) (*domain.Farm, error)

	// ConsumeVirtualHarvests removes count*ratio virtual harvests and adds
	// count to total_delivered, returning domain.ErrInsufficientInventory
	// when the farm cannot cover it
	ConsumeVirtualHarvests(ctx context.Context, farmID int64, count, ratio int) (*domain.Farm, error)

	PlantPlot(ctx context.Context, plotID int64, crop domain.CropType, plantedAt time.Time) (*domain.Plot, error)
	ResetPlot(ctx context.Context, plotID int64) (*domain.Plot, error)

	InsertHarvestHistory(ctx context.Context, entry *domain.HarvestHistoryEntry) error
	CreateDeliveryOrder(ctx context.Context, order *domain.DeliveryOrder) (*domain.DeliveryOrder, error)
}

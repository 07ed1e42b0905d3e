package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/repository"
)

// FarmRepository implements repository.Farm for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new farm repository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

var _ repository.Farm = (*FarmRepository)(nil)

// EnsureFarm creates the farm row and any missing grid plots in one transaction
func (r *FarmRepository) EnsureFarm(ctx context.Context, farmID int64, opts domain.FarmOptions) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, SQLEnsureFarm, farmID, opts.FarmName, opts.InitialCoins)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToEnsureFarm, err)
	}

	if _, err := tx.Exec(ctx, SQLEnsurePlots, farmID, opts.PlotCount()); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToEnsurePlots, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToEnsureFarm, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetFarm retrieves a farm by id
func (r *FarmRepository) GetFarm(ctx context.Context, farmID int64) (*domain.Farm, error) {
	return getFarm(ctx, r.db, SQLGetFarm, farmID)
}

// GetPlots returns the farm's plots ordered by position
func (r *FarmRepository) GetPlots(ctx context.Context, farmID int64) ([]domain.Plot, error) {
	rows, err := r.db.Query(ctx, SQLGetPlots, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlots, err)
	}
	plots, err := collect(rows, scanPlot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlots, err)
	}
	return plots, nil
}

// GetPlot retrieves a plot by id
func (r *FarmRepository) GetPlot(ctx context.Context, plotID int64) (*domain.Plot, error) {
	return getPlot(ctx, r.db, SQLGetPlot, plotID)
}

// ListActivePlots returns every planted or growing plot
func (r *FarmRepository) ListActivePlots(ctx context.Context) ([]domain.Plot, error) {
	rows, err := r.db.Query(ctx, SQLListActivePlots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListActive, err)
	}
	plots, err := collect(rows, scanPlot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListActive, err)
	}
	return plots, nil
}

// AdvancePlotStage moves the plot to `to` only while it is still in `from` with the same planting
func (r *FarmRepository) AdvancePlotStage(ctx context.Context, plotID int64, plantedAt time.Time, from, to domain.Stage) (bool, error) {
	tag, err := r.db.Exec(ctx, SQLAdvancePlotStage, plotID, string(from), string(to), plantedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToAdvanceStage, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetHarvestCounts counts harvests per crop type for a farm
func (r *FarmRepository) GetHarvestCounts(ctx context.Context, farmID int64) (map[domain.CropType]int, error) {
	rows, err := r.db.Query(ctx, SQLGetHarvestCounts, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountHarvests, err)
	}
	defer rows.Close()

	counts := make(map[domain.CropType]int)
	for rows.Next() {
		var (
			crop  string
			count int64
		)
		if err := rows.Scan(&crop, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountHarvests, err)
		}
		counts[domain.CropType(crop)] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCountHarvests, err)
	}
	return counts, nil
}

// ListHarvestHistory returns the most recent harvests first
func (r *FarmRepository) ListHarvestHistory(ctx context.Context, farmID int64, limit int) ([]domain.HarvestHistoryEntry, error) {
	rows, err := r.db.Query(ctx, SQLListHarvestHistory, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListHistory, err)
	}
	entries, err := collect(rows, func(row pgx.Row) (*domain.HarvestHistoryEntry, error) {
		var (
			e    domain.HarvestHistoryEntry
			crop string
		)
		if err := row.Scan(&e.ID, &e.FarmID, &crop, &e.CoinsEarned, &e.HarvestedAt); err != nil {
			return nil, err
		}
		e.CropType = domain.CropType(crop)
		return &e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListHistory, err)
	}
	return entries, nil
}

// ListDeliveryOrders returns the farm's orders, newest first
func (r *FarmRepository) ListDeliveryOrders(ctx context.Context, farmID int64, limit int) ([]domain.DeliveryOrder, error) {
	rows, err := r.db.Query(ctx, SQLListDeliveryOrders, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOrders, err)
	}
	orders, err := collect(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOrders, err)
	}
	return orders, nil
}

// GetDeliveryOrder retrieves one order belonging to the farm
func (r *FarmRepository) GetDeliveryOrder(ctx context.Context, farmID, orderID int64) (*domain.DeliveryOrder, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, SQLGetDeliveryOrder, farmID, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetOrder, err)
	}
	return o, nil
}

// UpdateDeliveryOrderStatus stores a new status and stamps its milestone time once
func (r *FarmRepository) UpdateDeliveryOrderStatus(ctx context.Context, farmID, orderID int64, status domain.OrderStatus, at time.Time) (*domain.DeliveryOrder, error) {
	confirmed, shipped, delivered := orderMilestones(status, at)
	o, err := scanOrder(r.db.QueryRow(ctx, SQLUpdateDeliveryOrderStatus,
		farmID, orderID, string(status), confirmed, shipped, delivered))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateOrderStatus, err)
	}
	return o, nil
}

// BeginTx starts a transaction and returns a FarmTx
func (r *FarmRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &farmTx{tx: tx}, nil
}

// farmTx implements repository.FarmTx
type farmTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *farmTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *farmTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *farmTx) GetFarmForUpdate(ctx context.Context, farmID int64) (*domain.Farm, error) {
	return getFarm(ctx, t.tx, SQLGetFarmForUpdate, farmID)
}

func (t *farmTx) GetPlotForUpdate(ctx context.Context, plotID int64) (*domain.Plot, error) {
	return getPlot(ctx, t.tx, SQLGetPlotForUpdate, plotID)
}

func (t *farmTx) DebitCoins(ctx context.Context, farmID int64, amount int) (int, error) {
	var balance int
	err := t.tx.QueryRow(ctx, SQLDebitCoins, farmID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDebitCoins, err)
	}
	return balance, nil
}

func (t *farmTx) CreditHarvest(ctx context.Context, farmID int64, coins int) (*domain.Farm, error) {
	f, err := scanFarm(t.tx.QueryRow(ctx, SQLCreditHarvest, farmID, coins))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreditHarvest, err)
	}
	return f, nil
}

func (t *farmTx) ConsumeVirtualHarvests(ctx context.Context, farmID int64, count, ratio int) (*domain.Farm, error) {
	f, err := scanFarm(t.tx.QueryRow(ctx, SQLConsumeVirtualHarvests, farmID, count*ratio, count))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInsufficientInventory
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConsumeHarvests, err)
	}
	return f, nil
}

func (t *farmTx) PlantPlot(ctx context.Context, plotID int64, crop domain.CropType, plantedAt time.Time) (*domain.Plot, error) {
	p, err := scanPlot(t.tx.QueryRow(ctx, SQLPlantPlot, plotID, string(crop), plantedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlotNotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPlantPlot, err)
	}
	return p, nil
}

func (t *farmTx) ResetPlot(ctx context.Context, plotID int64) (*domain.Plot, error) {
	p, err := scanPlot(t.tx.QueryRow(ctx, SQLResetPlot, plotID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToResetPlot, err)
	}
	return p, nil
}

func (t *farmTx) InsertHarvestHistory(ctx context.Context, entry *domain.HarvestHistoryEntry) error {
	err := t.tx.QueryRow(ctx, SQLInsertHarvestHistory,
		entry.FarmID, string(entry.CropType), entry.CoinsEarned, entry.HarvestedAt).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertHistory, err)
	}
	return nil
}

func (t *farmTx) CreateDeliveryOrder(ctx context.Context, order *domain.DeliveryOrder) (*domain.DeliveryOrder, error) {
	o, err := scanOrder(t.tx.QueryRow(ctx, SQLCreateDeliveryOrder,
		order.FarmID, order.Reference, order.Quantity, order.VirtualUnitsConsumed, string(order.Status),
		order.Recipient.Name, order.Recipient.Phone, order.Recipient.Address, order.Recipient.Notes))
	if isPgError(err, PgErrorCodeUniqueViolation) {
		return nil, fmt.Errorf("%w: order reference %q already used", domain.ErrInvariantViolation, order.Reference)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateOrder, err)
	}
	return o, nil
}

func getFarm(ctx context.Context, q querier, sql string, farmID int64) (*domain.Farm, error) {
	f, err := scanFarm(q.QueryRow(ctx, sql, farmID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFarmNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetFarm, err)
	}
	return f, nil
}

func getPlot(ctx context.Context, q querier, sql string, plotID int64) (*domain.Plot, error) {
	p, err := scanPlot(q.QueryRow(ctx, sql, plotID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlot, err)
	}
	return p, nil
}

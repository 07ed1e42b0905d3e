package farm

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/repository"
)

// memState is the full store contents. Transactions work on a copy.
type memState struct {
	farms   map[int64]domain.Farm
	plots   map[int64]domain.Plot
	history []domain.HarvestHistoryEntry
	orders  map[int64]domain.DeliveryOrder

	nextPlotID    int64
	nextHistoryID int64
	nextOrderID   int64
}

func newMemState() *memState {
	return &memState{
		farms:  make(map[int64]domain.Farm),
		plots:  make(map[int64]domain.Plot),
		orders: make(map[int64]domain.DeliveryOrder),
	}
}

// clone copies the maps; stored values are never mutated in place
func (s *memState) clone() *memState {
	c := &memState{
		farms:         make(map[int64]domain.Farm, len(s.farms)),
		plots:         make(map[int64]domain.Plot, len(s.plots)),
		history:       append([]domain.HarvestHistoryEntry(nil), s.history...),
		orders:        make(map[int64]domain.DeliveryOrder, len(s.orders)),
		nextPlotID:    s.nextPlotID,
		nextHistoryID: s.nextHistoryID,
		nextOrderID:   s.nextOrderID,
	}
	for k, v := range s.farms {
		c.farms[k] = v
	}
	for k, v := range s.plots {
		c.plots[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return c
}

// memRepository is an in-memory repository.Farm. Writers are serialized by
// writeMu, which plays the part of the row locks a real transaction takes.
type memRepository struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   *memState

	// beforeAdvance runs inside AdvancePlotStage before the compare, once
	beforeAdvance func(s *memState)
}

var _ repository.Farm = (*memRepository)(nil)

func newMemRepository() *memRepository {
	return &memRepository{state: newMemState()}
}

func (r *memRepository) read(f func(s *memState)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f(r.state)
}

func (r *memRepository) write(f func(s *memState)) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	f(r.state)
}

func (r *memRepository) EnsureFarm(ctx context.Context, farmID int64, opts domain.FarmOptions) (bool, error) {
	created := false
	r.write(func(s *memState) {
		if _, ok := s.farms[farmID]; ok {
			return
		}
		created = true
		now := time.Now().UTC()
		s.farms[farmID] = domain.Farm{ID: farmID, Name: opts.FarmName, CoinBalance: opts.InitialCoins, CreatedAt: now, UpdatedAt: now}
		for pos := 0; pos < opts.PlotCount(); pos++ {
			s.nextPlotID++
			s.plots[s.nextPlotID] = domain.Plot{ID: s.nextPlotID, FarmID: farmID, Position: pos, Stage: domain.StageEmpty}
		}
	})
	return created, nil
}

func (r *memRepository) GetFarm(ctx context.Context, farmID int64) (*domain.Farm, error) {
	var (
		farm domain.Farm
		ok   bool
	)
	r.read(func(s *memState) { farm, ok = s.farms[farmID] })
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	return &farm, nil
}

func (r *memRepository) GetPlots(ctx context.Context, farmID int64) ([]domain.Plot, error) {
	var plots []domain.Plot
	r.read(func(s *memState) {
		for _, p := range s.plots {
			if p.FarmID == farmID {
				plots = append(plots, p)
			}
		}
	})
	sort.Slice(plots, func(i, j int) bool { return plots[i].Position < plots[j].Position })
	return plots, nil
}

func (r *memRepository) GetPlot(ctx context.Context, plotID int64) (*domain.Plot, error) {
	var (
		plot domain.Plot
		ok   bool
	)
	r.read(func(s *memState) { plot, ok = s.plots[plotID] })
	if !ok {
		return nil, domain.ErrPlotNotFound
	}
	return &plot, nil
}

func (r *memRepository) ListActivePlots(ctx context.Context) ([]domain.Plot, error) {
	var plots []domain.Plot
	r.read(func(s *memState) {
		for _, p := range s.plots {
			if p.Stage == domain.StagePlanted || p.Stage == domain.StageGrowing {
				plots = append(plots, p)
			}
		}
	})
	sort.Slice(plots, func(i, j int) bool { return plots[i].ID < plots[j].ID })
	return plots, nil
}

func (r *memRepository) AdvancePlotStage(ctx context.Context, plotID int64, plantedAt time.Time, from, to domain.Stage) (bool, error) {
	changed := false
	r.write(func(s *memState) {
		if r.beforeAdvance != nil {
			r.beforeAdvance(s)
			r.beforeAdvance = nil
		}
		p, ok := s.plots[plotID]
		if !ok || p.Stage != from || p.PlantedAt == nil || !p.PlantedAt.Equal(plantedAt) {
			return
		}
		p.Stage = to
		s.plots[plotID] = p
		changed = true
	})
	return changed, nil
}

func (r *memRepository) GetHarvestCounts(ctx context.Context, farmID int64) (map[domain.CropType]int, error) {
	counts := make(map[domain.CropType]int)
	r.read(func(s *memState) {
		for _, h := range s.history {
			if h.FarmID == farmID {
				counts[h.CropType]++
			}
		}
	})
	return counts, nil
}

func (r *memRepository) ListHarvestHistory(ctx context.Context, farmID int64, limit int) ([]domain.HarvestHistoryEntry, error) {
	var out []domain.HarvestHistoryEntry
	r.read(func(s *memState) {
		for i := len(s.history) - 1; i >= 0 && len(out) < limit; i-- {
			if s.history[i].FarmID == farmID {
				out = append(out, s.history[i])
			}
		}
	})
	return out, nil
}

func (r *memRepository) ListDeliveryOrders(ctx context.Context, farmID int64, limit int) ([]domain.DeliveryOrder, error) {
	var out []domain.DeliveryOrder
	r.read(func(s *memState) {
		for _, o := range s.orders {
			if o.FarmID == farmID {
				out = append(out, o)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepository) GetDeliveryOrder(ctx context.Context, farmID, orderID int64) (*domain.DeliveryOrder, error) {
	var (
		order domain.DeliveryOrder
		ok    bool
	)
	r.read(func(s *memState) { order, ok = s.orders[orderID] })
	if !ok || order.FarmID != farmID {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (r *memRepository) UpdateDeliveryOrderStatus(ctx context.Context, farmID, orderID int64, status domain.OrderStatus, at time.Time) (*domain.DeliveryOrder, error) {
	var (
		order domain.DeliveryOrder
		ok    bool
	)
	r.write(func(s *memState) {
		order, ok = s.orders[orderID]
		if !ok || order.FarmID != farmID {
			ok = false
			return
		}
		stamp := at
		order.Status = status
		order.UpdatedAt = at
		switch {
		case status == domain.OrderStatusConfirmed && order.ConfirmedAt == nil:
			order.ConfirmedAt = &stamp
		case status == domain.OrderStatusShipped && order.ShippedAt == nil:
			order.ShippedAt = &stamp
		case status == domain.OrderStatusDelivered && order.DeliveredAt == nil:
			order.DeliveredAt = &stamp
		}
		s.orders[orderID] = order
	})
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (r *memRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	r.writeMu.Lock()
	r.mu.RLock()
	work := r.state.clone()
	r.mu.RUnlock()
	return &memTx{repo: r, work: work}, nil
}

// setVirtualTotal seeds a farm counter directly
func (r *memRepository) setVirtualTotal(farmID int64, total int) {
	r.write(func(s *memState) {
		f := s.farms[farmID]
		f.VirtualHarvestTotal = total
		s.farms[farmID] = f
	})
}

// setPlot overwrites a stored plot
func (r *memRepository) setPlot(p domain.Plot) {
	r.write(func(s *memState) { s.plots[p.ID] = p })
}

type memTx struct {
	repo   *memRepository
	work   *memState
	closed bool
}

func (t *memTx) finish() error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.repo.writeMu.Unlock()
	return nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.repo.mu.Lock()
	t.repo.state = t.work
	t.repo.mu.Unlock()
	return t.finish()
}

func (t *memTx) Rollback(ctx context.Context) error {
	return t.finish()
}

func (t *memTx) GetFarmForUpdate(ctx context.Context, farmID int64) (*domain.Farm, error) {
	f, ok := t.work.farms[farmID]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	return &f, nil
}

func (t *memTx) GetPlotForUpdate(ctx context.Context, plotID int64) (*domain.Plot, error) {
	p, ok := t.work.plots[plotID]
	if !ok {
		return nil, domain.ErrPlotNotFound
	}
	return &p, nil
}

func (t *memTx) DebitCoins(ctx context.Context, farmID int64, amount int) (int, error) {
	f, ok := t.work.farms[farmID]
	if !ok || f.CoinBalance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	f.CoinBalance -= amount
	t.work.farms[farmID] = f
	return f.CoinBalance, nil
}

func (t *memTx) CreditHarvest(ctx context.Context, farmID int64, coins int) (*domain.Farm, error) {
	f, ok := t.work.farms[farmID]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	f.CoinBalance += coins
	f.VirtualHarvestTotal++
	t.work.farms[farmID] = f
	return &f, nil
}

func (t *memTx) ConsumeVirtualHarvests(ctx context.Context, farmID int64, count, ratio int) (*domain.Farm, error) {
	f, ok := t.work.farms[farmID]
	if !ok || f.VirtualHarvestTotal < count*ratio {
		return nil, domain.ErrInsufficientInventory
	}
	f.VirtualHarvestTotal -= count * ratio
	f.TotalDelivered += count
	t.work.farms[farmID] = f
	return &f, nil
}

func (t *memTx) PlantPlot(ctx context.Context, plotID int64, crop domain.CropType, plantedAt time.Time) (*domain.Plot, error) {
	p, ok := t.work.plots[plotID]
	if !ok || p.Stage != domain.StageEmpty {
		return nil, domain.ErrPlotNotEmpty
	}
	at := plantedAt
	p.Crop = &crop
	p.Stage = domain.StagePlanted
	p.PlantedAt = &at
	t.work.plots[plotID] = p
	return &p, nil
}

func (t *memTx) ResetPlot(ctx context.Context, plotID int64) (*domain.Plot, error) {
	p, ok := t.work.plots[plotID]
	if !ok {
		return nil, domain.ErrPlotNotFound
	}
	p.Crop = nil
	p.Stage = domain.StageEmpty
	p.PlantedAt = nil
	t.work.plots[plotID] = p
	return &p, nil
}

func (t *memTx) InsertHarvestHistory(ctx context.Context, entry *domain.HarvestHistoryEntry) error {
	t.work.nextHistoryID++
	entry.ID = t.work.nextHistoryID
	t.work.history = append(t.work.history, *entry)
	return nil
}

func (t *memTx) CreateDeliveryOrder(ctx context.Context, order *domain.DeliveryOrder) (*domain.DeliveryOrder, error) {
	t.work.nextOrderID++
	created := *order
	created.ID = t.work.nextOrderID
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	t.work.orders[created.ID] = created
	return &created, nil
}

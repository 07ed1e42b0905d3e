package farm

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauss2302/agrogame/internal/catalog"
	"github.com/gauss2302/agrogame/internal/clock"
	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
)

const testFarmID int64 = 1

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// recordingPublisher keeps every published event in order
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) Types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]event.Type, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type fixture struct {
	svc   Service
	repo  *memRepository
	pub   *recordingPublisher
	clock *clock.SimulatedClock
	plots []domain.Plot
}

func newFixture(t testing.TB, mutate ...func(*domain.FarmOptions)) *fixture {
	t.Helper()
	opts := domain.DefaultFarmOptions()
	for _, m := range mutate {
		m(&opts)
	}

	f := &fixture{
		repo:  newMemRepository(),
		pub:   &recordingPublisher{},
		clock: clock.NewSimulatedClock(epoch),
	}
	f.svc = NewService(f.repo, catalog.Default(), opts, f.pub, f.clock)

	view, err := f.svc.GetOrCreateFarm(context.Background(), testFarmID)
	require.NoError(t, err)
	f.plots = view.Plots
	return f
}

// plantReady plants crop on plot i and forces it to ready
func (f *fixture) plantReady(t testing.TB, i int, crop domain.CropType) int64 {
	t.Helper()
	res, err := f.svc.PlantCrop(context.Background(), testFarmID, f.plots[i].ID, crop)
	require.NoError(t, err)
	p := res.Plot
	p.Stage = domain.StageReady
	f.repo.setPlot(p)
	return p.ID
}

func TestGetOrCreateFarm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.Len(t, f.plots, 25)
	for i, p := range f.plots {
		assert.Equal(t, i, p.Position)
		assert.True(t, p.IsEmpty())
	}

	view, err := f.svc.GetOrCreateFarm(ctx, testFarmID)
	require.NoError(t, err)
	assert.Equal(t, "My Farm", view.Farm.Name)
	assert.Equal(t, 100, view.Farm.CoinBalance)
	assert.Equal(t, f.plots, view.Plots)
}

func TestPlantCrop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clock.Set(epoch.Add(1234567 * time.Nanosecond))

	res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[2].ID, domain.CropPotato)
	require.NoError(t, err)

	assert.Equal(t, 95, res.NewCoinBalance)
	assert.Equal(t, domain.StagePlanted, res.Plot.Stage)
	require.NotNil(t, res.Plot.Crop)
	assert.Equal(t, domain.CropPotato, *res.Plot.Crop)
	require.NotNil(t, res.Plot.PlantedAt)
	assert.Equal(t, epoch.Add(1234*time.Microsecond), *res.Plot.PlantedAt)
	assert.Equal(t, []event.Type{event.CropPlanted}, f.pub.Types())

	stored, err := f.repo.GetPlot(ctx, f.plots[2].ID)
	require.NoError(t, err)
	assert.Equal(t, res.Plot, *stored)
}

func TestPlantCrop_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("occupied plot keeps balance", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		require.NoError(t, err)

		_, err = f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropPotato)
		assert.ErrorIs(t, err, domain.ErrPlotNotEmpty)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

		farm, err := f.repo.GetFarm(ctx, testFarmID)
		require.NoError(t, err)
		assert.Equal(t, 95, farm.CoinBalance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		f := newFixture(t, func(o *domain.FarmOptions) { o.InitialCoins = 4 })
		_, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		plot, err := f.repo.GetPlot(ctx, f.plots[0].ID)
		require.NoError(t, err)
		assert.True(t, plot.IsEmpty())
		assert.Empty(t, f.pub.Types())
	})

	t.Run("unknown crop", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, "pumpkin")
		assert.ErrorIs(t, err, domain.ErrUnknownCrop)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("plot of another farm", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.GetOrCreateFarm(ctx, 2)
		require.NoError(t, err)
		_, err = f.svc.PlantCrop(ctx, 2, f.plots[0].ID, domain.CropCarrot)
		assert.ErrorIs(t, err, domain.ErrPlotNotFound)
	})

	t.Run("missing plot", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.PlantCrop(ctx, testFarmID, 9999, domain.CropCarrot)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAdvancePlotStage(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses early transitions", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		require.NoError(t, err)
		f.pub.Reset()

		f.clock.Advance(4499 * time.Millisecond)
		_, err = f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageGrowing)
		assert.ErrorIs(t, err, domain.ErrStageNotDue)
		assert.Empty(t, f.pub.Types())
	})

	t.Run("steps growing then ready", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		require.NoError(t, err)
		f.pub.Reset()

		f.clock.Advance(4500 * time.Millisecond)
		plot, err := f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageGrowing)
		require.NoError(t, err)
		assert.Equal(t, domain.StageGrowing, plot.Stage)

		// ready is not due until the full duration
		_, err = f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageReady)
		assert.ErrorIs(t, err, domain.ErrStageNotDue)

		f.clock.Advance(4500 * time.Millisecond)
		plot, err = f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageReady)
		require.NoError(t, err)
		assert.Equal(t, domain.StageReady, plot.Stage)
		assert.Equal(t, []event.Type{event.PlotStageChanged, event.PlotStageChanged}, f.pub.Types())
	})

	t.Run("ready not due leaves planted plot untouched", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		require.NoError(t, err)
		f.pub.Reset()

		// growing is due, ready is not
		f.clock.Advance(5 * time.Second)
		_, err = f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageReady)
		assert.ErrorIs(t, err, domain.ErrStageNotDue)

		plot, err := f.svc.GetPlot(ctx, testFarmID, res.Plot.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StagePlanted, plot.Stage)
		assert.Empty(t, f.pub.Types())
	})

	t.Run("overdue planted plot passes through growing", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropWatermelon)
		require.NoError(t, err)
		f.pub.Reset()

		f.clock.Advance(time.Hour)
		plot, err := f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageReady)
		require.NoError(t, err)
		assert.Equal(t, domain.StageReady, plot.Stage)

		f.pub.mu.Lock()
		defer f.pub.mu.Unlock()
		require.Len(t, f.pub.events, 2)
		first := f.pub.events[0].Payload.(domain.PlotStageChangedPayload)
		second := f.pub.events[1].Payload.(domain.PlotStageChangedPayload)
		assert.Equal(t, domain.StageGrowing, first.ToStage)
		assert.Equal(t, domain.StageGrowing, second.FromStage)
		assert.Equal(t, domain.StageReady, second.ToStage)
	})

	t.Run("idempotent once reached", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
		_, err = f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageReady)
		require.NoError(t, err)
		f.pub.Reset()

		for _, target := range []domain.Stage{domain.StageGrowing, domain.StageReady} {
			plot, err := f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, target)
			require.NoError(t, err)
			assert.Equal(t, domain.StageReady, plot.Stage)
		}
		assert.Empty(t, f.pub.Types())
	})

	t.Run("stale timer on harvested plot is a no-op", func(t *testing.T) {
		f := newFixture(t)
		plot, err := f.svc.AdvancePlotStage(ctx, testFarmID, f.plots[5].ID, domain.StageGrowing)
		require.NoError(t, err)
		assert.True(t, plot.IsEmpty())
	})

	t.Run("rejects user-driven targets", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.AdvancePlotStage(ctx, testFarmID, f.plots[0].ID, domain.StageEmpty)
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
		_, err = f.svc.AdvancePlotStage(ctx, testFarmID, f.plots[0].ID, domain.StagePlanted)
		assert.ErrorIs(t, err, domain.ErrInvalidStage)
	})

	t.Run("lost compare-and-swap reloads", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
		require.NoError(t, err)
		f.pub.Reset()
		f.clock.Advance(5 * time.Second)

		// another writer advances the plot first
		f.repo.beforeAdvance = func(s *memState) {
			p := s.plots[res.Plot.ID]
			p.Stage = domain.StageGrowing
			s.plots[res.Plot.ID] = p
		}

		plot, err := f.svc.AdvancePlotStage(ctx, testFarmID, res.Plot.ID, domain.StageGrowing)
		require.NoError(t, err)
		assert.Equal(t, domain.StageGrowing, plot.Stage)
		assert.Empty(t, f.pub.Types(), "the winner publishes, not us")
	})

	t.Run("replanted plot does not inherit old timer", func(t *testing.T) {
		f := newFixture(t)
		id := f.plantReady(t, 0, domain.CropCarrot)
		_, err := f.svc.HarvestCrop(ctx, testFarmID, id)
		require.NoError(t, err)

		f.clock.Advance(time.Minute)
		_, err = f.svc.PlantCrop(ctx, testFarmID, id, domain.CropCarrot)
		require.NoError(t, err)

		_, err = f.svc.AdvancePlotStage(ctx, testFarmID, id, domain.StageGrowing)
		assert.ErrorIs(t, err, domain.ErrStageNotDue)
	})
}

func TestHarvestCrop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.plantReady(t, 0, domain.CropWatermelon)
	f.pub.Reset()

	res, err := f.svc.HarvestCrop(ctx, testFarmID, id)
	require.NoError(t, err)

	assert.Equal(t, domain.CropWatermelon, res.HarvestedCrop)
	assert.Equal(t, 25, res.EarnedCoins)
	assert.Equal(t, 120, res.NewCoinBalance)
	assert.Equal(t, 1, res.TotalVirtualHarvests)
	assert.Equal(t, 0, res.RealProductsReady)
	assert.Equal(t, 1, res.ProgressToNextReal)
	assert.False(t, res.RealProductUnlocked)
	assert.True(t, res.Plot.IsEmpty())
	assert.Nil(t, res.Plot.Crop)
	assert.Nil(t, res.Plot.PlantedAt)
	assert.Equal(t, []event.Type{event.CropHarvested}, f.pub.Types())

	history, err := f.svc.GetHarvestHistory(ctx, testFarmID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 25, history[0].CoinsEarned)
	assert.Equal(t, epoch, history[0].HarvestedAt)

	_, err = f.svc.HarvestCrop(ctx, testFarmID, id)
	assert.ErrorIs(t, err, domain.ErrCropNotReady)
}

func TestHarvestCrop_NotReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
	require.NoError(t, err)

	_, err = f.svc.HarvestCrop(ctx, testFarmID, res.Plot.ID)
	assert.ErrorIs(t, err, domain.ErrCropNotReady)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	farm, err := f.repo.GetFarm(ctx, testFarmID)
	require.NoError(t, err)
	assert.Zero(t, farm.VirtualHarvestTotal)
}

func TestHarvestCrop_UnlocksRealProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.setVirtualTotal(testFarmID, 99)

	id := f.plantReady(t, 0, domain.CropCarrot)
	f.pub.Reset()

	res, err := f.svc.HarvestCrop(ctx, testFarmID, id)
	require.NoError(t, err)
	assert.Equal(t, 100, res.TotalVirtualHarvests)
	assert.Equal(t, 1, res.RealProductsReady)
	assert.Zero(t, res.ProgressToNextReal)
	assert.True(t, res.RealProductUnlocked)
	assert.Equal(t, []event.Type{event.CropHarvested, event.RealProductUnlocked}, f.pub.Types())
}

func TestHarvestCrop_ConcurrentHarvestsAllCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 10
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = f.plantReady(t, i, domain.CropCarrot)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.svc.HarvestCrop(ctx, testFarmID, id)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	farm, err := f.repo.GetFarm(ctx, testFarmID)
	require.NoError(t, err)
	assert.Equal(t, n, farm.VirtualHarvestTotal)
	assert.Equal(t, 100-n*5+n*10, farm.CoinBalance)

	stats, err := f.svc.GetHarvestStats(ctx, testFarmID)
	require.NoError(t, err)
	assert.Equal(t, n, stats.Total)
	assert.Equal(t, map[domain.CropType]int{domain.CropCarrot: n}, stats.CountsByCropType)
}

func TestClaimRealProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.setVirtualTotal(testFarmID, 250)

	res, err := f.svc.ClaimRealProducts(ctx, testFarmID, domain.ClaimRequest{
		Count:     2,
		Recipient: domain.Recipient{Name: "Ana", Address: "1 Field Rd"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Claimed)
	assert.Zero(t, res.Remaining)
	assert.Len(t, res.Reference, ReferenceLength)
	assert.Equal(t, fmt.Sprintf("Order #%d created! 2 real product(s) ready for delivery!", res.OrderID), res.Message)
	assert.Equal(t, []event.Type{event.DeliveryClaimed}, f.pub.Types())

	status, err := f.svc.GetDeliveryStatus(ctx, testFarmID)
	require.NoError(t, err)
	assert.Equal(t, 50, status.TotalVirtualHarvests)
	assert.Zero(t, status.RealProductsReady)
	assert.Equal(t, 50, status.PercentToNext)
	assert.Equal(t, 2, status.TotalDelivered)

	order, err := f.svc.GetOrder(ctx, testFarmID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 200, order.VirtualUnitsConsumed)
	assert.Equal(t, "Ana", order.Recipient.Name)

	// nothing left to claim and nothing changes
	_, err = f.svc.ClaimRealProducts(ctx, testFarmID, domain.ClaimRequest{Count: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	farm, err := f.repo.GetFarm(ctx, testFarmID)
	require.NoError(t, err)
	assert.Equal(t, 50, farm.VirtualHarvestTotal)

	orders, err := f.svc.ListOrders(ctx, testFarmID, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestClaimRealProducts_InvalidCount(t *testing.T) {
	f := newFixture(t)
	for _, n := range []int{0, -3} {
		_, err := f.svc.ClaimRealProducts(context.Background(), testFarmID, domain.ClaimRequest{Count: n})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestClaimRealProducts_ConcurrentNeverOverspend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.setVirtualTotal(testFarmID, 300)

	const claims = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < claims; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ClaimRealProducts(ctx, testFarmID, domain.ClaimRequest{Count: 1})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	farm, err := f.repo.GetFarm(ctx, testFarmID)
	require.NoError(t, err)
	assert.Zero(t, farm.VirtualHarvestTotal)
	assert.Equal(t, 3, farm.TotalDelivered)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.setVirtualTotal(testFarmID, 100)

	res, err := f.svc.ClaimRealProducts(ctx, testFarmID, domain.ClaimRequest{Count: 1})
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(ctx, testFarmID, res.OrderID, "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)

	order, err := f.svc.UpdateOrderStatus(ctx, testFarmID, res.OrderID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
	require.NotNil(t, order.ShippedAt)
	assert.Equal(t, epoch, *order.ShippedAt)

	_, err = f.svc.UpdateOrderStatus(ctx, 2, res.OrderID, domain.OrderStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListActivePlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PlantCrop(ctx, testFarmID, f.plots[0].ID, domain.CropCarrot)
	require.NoError(t, err)
	f.plantReady(t, 1, domain.CropPotato)

	active, err := f.svc.ListActivePlots(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, f.plots[0].ID, active[0].ID)
}

func TestGetPlot_WrongFarm(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetPlot(context.Background(), 42, f.plots[0].ID)
	assert.ErrorIs(t, err, domain.ErrPlotNotFound)
}

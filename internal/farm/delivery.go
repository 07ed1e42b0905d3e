package farm

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/logger"
	"github.com/gauss2302/agrogame/internal/repository"
)

// ClaimRealProducts converts req.Count whole real products into one pending
// delivery order. The farm row stays locked from the availability check to
// the commit, so concurrent claims can never spend the same units.
func (s *service) ClaimRealProducts(ctx context.Context, farmID int64, req domain.ClaimRequest) (*domain.ClaimResult, error) {
	log := logger.FromContext(ctx)
	ratio := s.opts.VirtualToRealRatio

	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidCount, req.Count)
	}

	reference, err := gonanoid.Generate(ReferenceAlphabet, ReferenceLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGenerateRef, err)
	}

	// 1. Begin transaction
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// 2. Lock the farm and check availability
	farm, err := tx.GetFarmForUpdate(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockFarm, err)
	}
	available := farm.VirtualHarvestTotal / ratio
	if req.Count > available {
		log.Info(LogMsgClaimRejected, logger.AttrKeyFarmID, farmID, "requested", req.Count, "available", available)
		return nil, fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientInventory, req.Count, available)
	}

	// 3. Spend the units
	updated, err := tx.ConsumeVirtualHarvests(ctx, farmID, req.Count, ratio)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConsume, err)
	}

	// 4. Record the order
	order, err := tx.CreateDeliveryOrder(ctx, &domain.DeliveryOrder{
		FarmID:               farmID,
		Reference:            reference,
		Quantity:             req.Count,
		VirtualUnitsConsumed: req.Count * ratio,
		Status:               domain.OrderStatusPending,
		Recipient:            req.Recipient,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateOrder, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}

	remaining := updated.VirtualHarvestTotal / ratio
	log.Info(LogMsgClaimCreated, logger.AttrKeyFarmID, farmID, logger.AttrKeyOrderID, order.ID, "reference", order.Reference,
		"quantity", req.Count, "remaining", remaining)
	s.publish(ctx, event.NewDeliveryClaimedEvent(order, remaining))

	return &domain.ClaimResult{
		OrderID:   order.ID,
		Reference: order.Reference,
		Claimed:   req.Count,
		Remaining: remaining,
		Message:   fmt.Sprintf(ClaimMessageFormat, order.ID, req.Count),
	}, nil
}

// GetDeliveryStatus reports conversion progress for a farm
func (s *service) GetDeliveryStatus(ctx context.Context, farmID int64) (*domain.DeliveryStatus, error) {
	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetFarm, err)
	}

	conv, err := Convert(farm.VirtualHarvestTotal, s.opts.VirtualToRealRatio)
	if err != nil {
		return nil, err
	}
	return &domain.DeliveryStatus{
		TotalVirtualHarvests: farm.VirtualHarvestTotal,
		RealProductsReady:    conv.Ready,
		ProgressToNextReal:   conv.Progress,
		PercentToNext:        conv.PercentToNext,
		TotalDelivered:       farm.TotalDelivered,
		Ratio:                s.opts.VirtualToRealRatio,
	}, nil
}

// ListOrders returns the farm's delivery orders, newest first
func (s *service) ListOrders(ctx context.Context, farmID int64, limit int) ([]domain.DeliveryOrder, error) {
	orders, err := s.repo.ListDeliveryOrders(ctx, farmID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOrders, err)
	}
	return orders, nil
}

// GetOrder returns one delivery order of the farm
func (s *service) GetOrder(ctx context.Context, farmID, orderID int64) (*domain.DeliveryOrder, error) {
	order, err := s.repo.GetDeliveryOrder(ctx, farmID, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetOrder, err)
	}
	return order, nil
}

// UpdateOrderStatus stores a new status. Milestone timestamps are stamped
// the first time their status is reached; no transition rules apply.
func (s *service) UpdateOrderStatus(ctx context.Context, farmID, orderID int64, status domain.OrderStatus) (*domain.DeliveryOrder, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOrderStatus, status)
	}

	order, err := s.repo.UpdateDeliveryOrderStatus(ctx, farmID, orderID, status, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateOrder, err)
	}

	logger.FromContext(ctx).Info(LogMsgOrderStatusSet, logger.AttrKeyFarmID, farmID, logger.AttrKeyOrderID, orderID, "status", status)
	return order, nil
}

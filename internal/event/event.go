package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Farm event types
const (
	CropPlanted         Type = domain.EventTypeCropPlanted
	PlotStageChanged    Type = domain.EventTypePlotStageChanged
	CropHarvested       Type = domain.EventTypeCropHarvested
	RealProductUnlocked Type = domain.EventTypeRealProductUnlocked
	DeliveryClaimed     Type = domain.EventTypeDeliveryClaimed
)

// FarmTypes lists every farm event type, for subscribers that want them all
func FarmTypes() []Type {
	return []Type{CropPlanted, PlotStageChanged, CropHarvested, RealProductUnlocked, DeliveryClaimed}
}

// NewCropPlantedEvent creates a crop planted event
func NewCropPlantedEvent(plot domain.Plot, coinsSpent, newBalance int) Event {
	payload := domain.CropPlantedPayload{
		FarmID:         plot.FarmID,
		PlotID:         plot.ID,
		Position:       plot.Position,
		CoinsSpent:     coinsSpent,
		NewCoinBalance: newBalance,
	}
	if plot.Crop != nil {
		payload.Crop = *plot.Crop
	}
	if plot.PlantedAt != nil {
		payload.PlantedAt = plot.PlantedAt.UnixMilli()
	}
	return Event{Version: EventSchemaVersion, Type: CropPlanted, Payload: payload}
}

// NewPlotStageChangedEvent creates an event for one persisted stage step
func NewPlotStageChangedEvent(plot domain.Plot, from domain.Stage, at time.Time) Event {
	payload := domain.PlotStageChangedPayload{
		FarmID:    plot.FarmID,
		PlotID:    plot.ID,
		Position:  plot.Position,
		FromStage: from,
		ToStage:   plot.Stage,
		Timestamp: at.UnixMilli(),
	}
	if plot.Crop != nil {
		payload.Crop = *plot.Crop
	}
	return Event{Version: EventSchemaVersion, Type: PlotStageChanged, Payload: payload}
}

// NewCropHarvestedEvent creates a crop harvested event
func NewCropHarvestedEvent(farmID, plotID int64, result *domain.HarvestResult, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropHarvested,
		Payload: domain.CropHarvestedPayload{
			FarmID:               farmID,
			PlotID:               plotID,
			Crop:                 result.HarvestedCrop,
			CoinsEarned:          result.EarnedCoins,
			NewCoinBalance:       result.NewCoinBalance,
			TotalVirtualHarvests: result.TotalVirtualHarvests,
			Timestamp:            at.UnixMilli(),
		},
	}
}

// NewRealProductUnlockedEvent creates an event for a completed real product
func NewRealProductUnlockedEvent(farmID int64, readyCount int, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RealProductUnlocked,
		Payload: domain.RealProductUnlockedPayload{
			FarmID:            farmID,
			RealProductsReady: readyCount,
			Timestamp:         at.UnixMilli(),
		},
	}
}

// NewDeliveryClaimedEvent creates an event for a newly created delivery order
func NewDeliveryClaimedEvent(order *domain.DeliveryOrder, remaining int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DeliveryClaimed,
		Payload: domain.DeliveryClaimedPayload{
			FarmID:        order.FarmID,
			OrderID:       order.ID,
			Reference:     order.Reference,
			Quantity:      order.Quantity,
			VirtualUsed:   order.VirtualUnitsConsumed,
			Remaining:     remaining,
			RecipientName: order.Recipient.Name,
			Timestamp:     order.CreatedAt.UnixMilli(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// HandlerError reports the subscribers that failed one publish. Failed
// holds only those handlers, so a retry can skip the ones that succeeded.
type HandlerError struct {
	EventType Type
	Failed    []Handler
	Errs      []error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf(LogMsgHandlerErrorFormat, len(e.Errs), e.EventType, e.Errs)
}

// Unwrap exposes the individual handler errors to errors.Is and errors.As
func (e *HandlerError) Unwrap() []error {
	return e.Errs
}

// Publish runs every subscriber synchronously. Failures are returned as a
// *HandlerError.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	return Deliver(ctx, event, handlers)
}

// Deliver runs handlers for event in order and collects the ones that fail
func Deliver(ctx context.Context, event Event, handlers []Handler) error {
	var herr *HandlerError
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			if herr == nil {
				herr = &HandlerError{EventType: event.Type}
			}
			herr.Failed = append(herr.Failed, handler)
			herr.Errs = append(herr.Errs, err)
		}
	}

	if herr != nil {
		return herr
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes handler to every farm event type
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range FarmTypes() {
		bus.Subscribe(t, handler)
	}
}

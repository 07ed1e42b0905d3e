package metrics

import (
	"context"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all farm events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	event.SubscribeAll(bus, e.HandleEvent)
}

// HandleEvent processes events and updates metrics. Payload problems are
// logged and never returned, so metrics cannot make a publish fail.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.CropPlanted:
		var p domain.CropPlantedPayload
		if p, err = event.DecodePayload[domain.CropPlantedPayload](evt.Payload); err == nil {
			CropsPlanted.WithLabelValues(string(p.Crop)).Inc()
			CoinsSpent.Add(float64(p.CoinsSpent))
		}

	case event.PlotStageChanged:
		var p domain.PlotStageChangedPayload
		if p, err = event.DecodePayload[domain.PlotStageChangedPayload](evt.Payload); err == nil {
			StageTransitions.WithLabelValues(string(p.ToStage)).Inc()
		}

	case event.CropHarvested:
		var p domain.CropHarvestedPayload
		if p, err = event.DecodePayload[domain.CropHarvestedPayload](evt.Payload); err == nil {
			CropsHarvested.WithLabelValues(string(p.Crop)).Inc()
			CoinsEarned.Add(float64(p.CoinsEarned))
		}

	case event.RealProductUnlocked:
		RealProductsUnlocked.Inc()

	case event.DeliveryClaimed:
		var p domain.DeliveryClaimedPayload
		if p, err = event.DecodePayload[domain.DeliveryClaimedPayload](evt.Payload); err == nil {
			DeliveryOrders.Inc()
			RealProductsClaimed.Add(float64(p.Quantity))
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

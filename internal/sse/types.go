package sse

import (
	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
)

// ConnectedPayload is the body of the first message on a stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters,omitempty"`
}

// eventTypes maps bus events to the names clients subscribe to
var eventTypes = map[event.Type]string{
	event.CropPlanted:         EventTypePlotPlanted,
	event.PlotStageChanged:    EventTypePlotStageChanged,
	event.CropHarvested:       EventTypePlotHarvested,
	event.RealProductUnlocked: EventTypeRealProductUnlocked,
	event.DeliveryClaimed:     EventTypeDeliveryClaimed,
}

// StreamTypes lists every event type a client can filter on
func StreamTypes() []string {
	return []string{
		EventTypePlotPlanted,
		EventTypePlotStageChanged,
		EventTypePlotHarvested,
		EventTypeRealProductUnlocked,
		EventTypeDeliveryClaimed,
	}
}

// decodePayload turns a bus payload into the typed struct for its event type
func decodePayload(evt event.Event) (interface{}, error) {
	switch evt.Type {
	case event.CropPlanted:
		return event.DecodePayload[domain.CropPlantedPayload](evt.Payload)
	case event.PlotStageChanged:
		return event.DecodePayload[domain.PlotStageChangedPayload](evt.Payload)
	case event.CropHarvested:
		return event.DecodePayload[domain.CropHarvestedPayload](evt.Payload)
	case event.RealProductUnlocked:
		return event.DecodePayload[domain.RealProductUnlockedPayload](evt.Payload)
	case event.DeliveryClaimed:
		return event.DecodePayload[domain.DeliveryClaimedPayload](evt.Payload)
	default:
		return evt.Payload, nil
	}
}

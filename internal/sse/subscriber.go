package sse

import (
	"context"
	"log/slog"

	"github.com/gauss2302/agrogame/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub. Events reach
// clients only after the operation that emitted them has committed.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the handler for every farm event type
func (s *Subscriber) Subscribe() {
	event.SubscribeAll(s.bus, s.handleFarmEvent)
	slog.Info(LogMsgSubscriberReady, "types", StreamTypes())
}

func (s *Subscriber) handleFarmEvent(_ context.Context, evt event.Event) error {
	sseType, ok := eventTypes[evt.Type]
	if !ok {
		return nil
	}

	payload, err := decodePayload(evt)
	if err != nil {
		// a malformed payload must not fail the publisher
		slog.Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(sseType, payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", sseType)
	return nil
}

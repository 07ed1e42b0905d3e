package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout bounds each write to a client connection
	WriteTimeout = 10 * time.Second
)

// Event types pushed to clients
const (
	EventTypePlotPlanted         = "plot.planted"
	EventTypePlotStageChanged    = "plot.stage_changed"
	EventTypePlotHarvested       = "plot.harvested"
	EventTypeRealProductUnlocked = "real_product.unlocked"
	EventTypeDeliveryClaimed     = "delivery.claimed"

	// EventTypeConnected is the first message on every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// TypesQueryParam selects event types, comma separated
const TypesQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgBroadcastDropped   = "SSE broadcast buffer full, dropping event"
	LogMsgClientLagging      = "SSE client buffer full, skipping event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgPayloadError       = "Failed to decode event payload for SSE"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)

// ErrMsgStreamingNotSupported is returned when the response writer cannot flush
const ErrMsgStreamingNotSupported = "SSE not supported"

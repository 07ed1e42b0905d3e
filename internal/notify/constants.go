package notify

import "time"

// Queue and delivery settings
const (
	QueueSize   = 64
	SendTimeout = 10 * time.Second
)

// Embed colours
const (
	ColorDeliveryClaimed = 0x2ecc71 // Green
	ColorRealUnlocked    = 0xf1c40f // Yellow
)

// Embed text
const (
	FooterText                 = "Agrogame delivery desk"
	TitleDeliveryClaimed       = "📦 New delivery order"
	TitleRealProductUnlocked   = "🌾 Real product unlocked"
	DescDeliveryClaimedFormat  = "Order **#%d** (`%s`) claims %d real product(s) using %d virtual harvests."
	DescRealProductUnlockedFmt = "Farm %d now has %d real product(s) ready for delivery."
	FieldRecipient             = "Recipient"
	FieldRemaining             = "Still ready"
)

// Log messages
const (
	LogMsgNotifierDisabled  = "Discord webhook not configured, delivery notifications disabled"
	LogMsgNotifierStarted   = "Discord notifier started"
	LogMsgNotificationSent  = "Discord notification sent"
	LogMsgNotificationError = "Failed to send Discord notification"
	LogMsgQueueFull         = "Discord notification queue full, dropping message"
	LogMsgPayloadError      = "Failed to decode event payload for notification"
)

// ErrMsgCreateSession is returned when the webhook session cannot be built
const ErrMsgCreateSession = "error creating Discord session"

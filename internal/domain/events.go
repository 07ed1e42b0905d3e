package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: farm.<action>
const (
	// EventTypeCropPlanted is published after a plot was planted and coins debited
	EventTypeCropPlanted = "farm.crop_planted"

	// EventTypePlotStageChanged is published for every persisted time-driven stage step
	EventTypePlotStageChanged = "farm.plot_stage_changed"

	// EventTypeCropHarvested is published after a ready plot was harvested
	EventTypeCropHarvested = "farm.crop_harvested"

	// EventTypeRealProductUnlocked is published when a harvest completes a new real product
	EventTypeRealProductUnlocked = "farm.real_product_unlocked"

	// EventTypeDeliveryClaimed is published after a delivery order was created
	EventTypeDeliveryClaimed = "farm.delivery_claimed"
)

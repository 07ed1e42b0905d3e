package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric of the service
const Namespace = "agrogame"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Farm metric names
const (
	MetricNameCropsPlanted         = "crops_planted_total"
	MetricNameCropsHarvested       = "crops_harvested_total"
	MetricNameStageTransitions     = "plot_stage_transitions_total"
	MetricNameCoinsEarned          = "coins_earned_total"
	MetricNameCoinsSpent           = "coins_spent_total"
	MetricNameRealProductsUnlocked = "real_products_unlocked_total"
	MetricNameDeliveryOrders       = "delivery_orders_total"
	MetricNameRealProductsClaimed  = "real_products_claimed_total"
)

// Growth worker metric names
const (
	MetricNameGrowthTimersActive       = "growth_timers_active"
	MetricNameGrowthTransitionFailures = "growth_transition_failures_total"
	MetricNameGrowthReconcileRuns      = "growth_reconcile_runs_total"
	MetricNameGrowthPlotsScheduled     = "growth_plots_scheduled_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Farm metric help text
const (
	HelpTextCropsPlanted         = "Total number of crops planted"
	HelpTextCropsHarvested       = "Total number of crops harvested"
	HelpTextStageTransitions     = "Total number of persisted time-driven stage changes"
	HelpTextCoinsEarned          = "Total coins earned from harvests"
	HelpTextCoinsSpent           = "Total coins spent on planting"
	HelpTextRealProductsUnlocked = "Total number of harvests that completed a real product"
	HelpTextDeliveryOrders       = "Total number of delivery orders created"
	HelpTextRealProductsClaimed  = "Total number of real products claimed for delivery"
)

// Growth worker help text
const (
	HelpTextGrowthTimersActive       = "Current number of pending plot growth timers"
	HelpTextGrowthTransitionFailures = "Total number of scheduled stage transitions that failed"
	HelpTextGrowthReconcileRuns      = "Total number of growth reconcile sweeps"
	HelpTextGrowthPlotsScheduled     = "Total number of plot growth timers scheduled"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelCrop   = "crop"
	LabelStage  = "stage"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)

package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Growth Worker
// ============================================================================

// Log messages for growth worker operations
const (
	LogMsgGrowthResumeStarting   = "Resuming growth timers for active plots"
	LogMsgGrowthResumeCompleted  = "Growth timers resumed"
	LogMsgGrowthResumeFailed     = "Failed to load active plots for growth timers"
	LogMsgGrowthScheduled        = "Scheduled plot stage transition"
	LogMsgGrowthNothingPending   = "Plot has no pending stage transition"
	LogMsgGrowthTransitionFired  = "Executing scheduled stage transition"
	LogMsgGrowthTransitionDone   = "Scheduled stage transition persisted"
	LogMsgGrowthTransitionFailed = "Scheduled stage transition failed"
	LogMsgGrowthNotDue           = "Stage transition not due yet, rescheduling"
	LogMsgGrowthPlotGone         = "Plot no longer exists, dropping timer"
	LogMsgGrowthDurationUnknown  = "Cannot schedule plot with unknown crop"
	LogMsgGrowthTimerCancelled   = "Cancelled growth timer for harvested plot"
	LogMsgReconcileStarting      = "Growth reconcile sweep starting"
	LogMsgReconcileCompleted     = "Growth reconcile sweep completed"
)

// Error messages for growth worker event handlers
const (
	ErrMsgDecodePlantedPayload   = "failed to decode crop planted payload"
	ErrMsgDecodeHarvestedPayload = "failed to decode crop harvested payload"
	ErrMsgLoadPlantedPlot        = "failed to load planted plot"
	ErrMsgReconcileFailed        = "growth reconcile failed"
)

// GrowthWorkerName is used in shutdown logs
const GrowthWorkerName = "growth worker"

// NotDueRetryDelay is the shortest wait before retrying a transition the
// service reported as not yet due
const NotDueRetryDelay = 250 * time.Millisecond

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)

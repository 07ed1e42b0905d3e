package eventlog

// Log messages - service events
const (
	LogMsgEventPayloadNoFarm = "Event payload carries no farm, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgEncodePayload = "failed to encode event payload"
	ErrMsgLogEvent      = "failed to log farm event"
	ErrMsgListEvents    = "failed to list farm events"
	ErrMsgCleanupEvents = "failed to clean up farm events"
)

// Log field keys
const (
	LogFieldType         = "type"
	LogFieldFarmID       = "farm_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deleted_count"
)

package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path and query parameter messages
	ErrMsgInvalidFarmID  = "Invalid farm ID"
	ErrMsgInvalidPlotID  = "Invalid plot ID"
	ErrMsgInvalidOrderID = "Invalid order ID"
	ErrMsgInvalidLimit   = "Invalid limit parameter"

	// Export
	ErrMsgExportFailed = "Failed to export orders"
)

// Header names
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// Operation names used in logs
const (
	OpGetFarm           = "Get farm"
	OpPlantCrop         = "Plant crop"
	OpAdvanceStage      = "Advance plot stage"
	OpHarvestCrop       = "Harvest crop"
	OpDeliveryStatus    = "Get delivery status"
	OpClaimRealProducts = "Claim real products"
	OpHarvestStats      = "Get harvest stats"
	OpHarvestHistory    = "Get harvest history"
	OpListOrders        = "List orders"
	OpGetOrder          = "Get order"
	OpUpdateOrderStatus = "Update order status"
	OpExportOrders      = "Export orders"
	OpFarmActivity      = "Get farm activity"
)

// Log messages
const (
	LogMsgServiceCallFailed = "Service call failed"
	LogMsgClaimReplayed     = "Claim replayed from idempotency cache"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"

	LogMsgCropPlanted         = "Crop planted"
	LogMsgCropHarvested       = "Crop harvested"
	LogMsgRealProductsClaimed = "Real products claimed"
	LogMsgOrderStatusUpdated  = "Order status updated"
	LogMsgInvalidURLParam     = "Invalid URL parameter"
	LogMsgDecodeFailedFormat  = "Failed to decode %s request"
	LogMsgDecodedFormat       = "%s request decoded"
)

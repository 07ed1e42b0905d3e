package farm

// Order reference generation
const (
	// ReferenceAlphabet avoids characters that are easy to misread on a label
	ReferenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	ReferenceLength   = 10
)

// maxAdvanceAttempts bounds the reload-and-retry loop when a stage
// compare-and-swap loses to a concurrent writer
const maxAdvanceAttempts = 5

// Limits for list endpoints
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ClaimMessageFormat is the user-facing confirmation of a claim
const ClaimMessageFormat = "Order #%d created! %d real product(s) ready for delivery!"

// Error message constants
const (
	ErrMsgFailedToEnsureFarm     = "failed to ensure farm"
	ErrMsgFailedToGetFarm        = "failed to get farm"
	ErrMsgFailedToGetPlots       = "failed to get plots"
	ErrMsgFailedToGetPlot        = "failed to get plot"
	ErrMsgFailedToBeginTx        = "failed to begin transaction"
	ErrMsgFailedToCommitTx       = "failed to commit transaction"
	ErrMsgFailedToLockPlot       = "failed to lock plot"
	ErrMsgFailedToLockFarm       = "failed to lock farm"
	ErrMsgFailedToDebitCoins     = "failed to debit coins"
	ErrMsgFailedToPlant          = "failed to plant crop"
	ErrMsgFailedToAdvanceStage   = "failed to advance plot stage"
	ErrMsgFailedToCreditHarvest  = "failed to credit harvest"
	ErrMsgFailedToRecordHarvest  = "failed to record harvest history"
	ErrMsgFailedToResetPlot      = "failed to reset plot"
	ErrMsgFailedToConsume        = "failed to consume virtual harvests"
	ErrMsgFailedToCreateOrder    = "failed to create delivery order"
	ErrMsgFailedToGenerateRef    = "failed to generate order reference"
	ErrMsgFailedToCountHarvests  = "failed to count harvests"
	ErrMsgFailedToListHistory    = "failed to list harvest history"
	ErrMsgFailedToListOrders     = "failed to list delivery orders"
	ErrMsgFailedToGetOrder       = "failed to get delivery order"
	ErrMsgFailedToUpdateOrder    = "failed to update delivery order status"
	ErrMsgFailedToListActive     = "failed to list active plots"
	ErrMsgAdvanceContended       = "plot stage kept changing underneath the update"
	ErrMsgFarmMissingOnHarvest   = "farm disappeared while harvesting"
	ErrMsgPlotMissingCrop        = "ready plot has no crop"
	ErrMsgTargetNotTimeDriven    = "target stage is not reached by growth"
	ErrMsgInvalidConversionRatio = "conversion ratio must be positive"
)

// Log message constants
const (
	LogMsgFarmCreated       = "Farm created"
	LogMsgCropPlanted       = "Crop planted"
	LogMsgStageAdvanced     = "Plot stage advanced"
	LogMsgStageAlreadyAt    = "Plot already at or past target stage"
	LogMsgStageCASLost      = "Plot stage changed concurrently, reloading"
	LogMsgCropHarvested     = "Crop harvested"
	LogMsgRealProductUnlock = "Real product unlocked"
	LogMsgClaimCreated      = "Delivery order created"
	LogMsgClaimRejected     = "Claim rejected"
	LogMsgOrderStatusSet    = "Delivery order status updated"
)

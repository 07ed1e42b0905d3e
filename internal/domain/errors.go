package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Error classes
	ErrMsgNotFound              = "not found"
	ErrMsgPreconditionFailed    = "precondition failed"
	ErrMsgInsufficientFunds     = "insufficient funds"
	ErrMsgInsufficientInventory = "insufficient real products"
	ErrMsgInvalidInput          = "invalid input"
	ErrMsgInvariantViolation    = "invariant violation"

	// Not found
	ErrMsgFarmNotFound  = "farm not found"
	ErrMsgPlotNotFound  = "plot not found"
	ErrMsgOrderNotFound = "order not found"

	// Stage preconditions
	ErrMsgPlotNotEmpty  = "plot is not empty"
	ErrMsgCropNotReady  = "crop is not ready for harvest"
	ErrMsgPlotEmpty     = "plot has no crop"
	ErrMsgStageNotDue   = "stage transition is not due yet"
	ErrMsgPlotInvariant = "plot crop, stage and planted_at disagree"

	// Input
	ErrMsgUnknownCrop        = "unknown crop type"
	ErrMsgInvalidStage       = "invalid stage"
	ErrMsgInvalidOrderStatus = "invalid order status"
	ErrMsgInvalidCount       = "count must be positive"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Error classes. Every specific error below wraps exactly one of these so
// callers can branch on the class with errors.Is.
var (
	ErrNotFound              = errors.New(ErrMsgNotFound)
	ErrPreconditionFailed    = errors.New(ErrMsgPreconditionFailed)
	ErrInsufficientFunds     = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientInventory = errors.New(ErrMsgInsufficientInventory)
	ErrInvalidInput          = errors.New(ErrMsgInvalidInput)
	ErrInvariantViolation    = errors.New(ErrMsgInvariantViolation)
	ErrDatabaseError         = errors.New(ErrMsgDatabaseError)
)

// Specific domain errors
var (
	ErrFarmNotFound  = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgFarmNotFound)
	ErrPlotNotFound  = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgPlotNotFound)
	ErrOrderNotFound = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgOrderNotFound)

	ErrPlotNotEmpty = fmt.Errorf("%w: %s", ErrPreconditionFailed, ErrMsgPlotNotEmpty)
	ErrCropNotReady = fmt.Errorf("%w: %s", ErrPreconditionFailed, ErrMsgCropNotReady)
	ErrPlotEmpty    = fmt.Errorf("%w: %s", ErrPreconditionFailed, ErrMsgPlotEmpty)
	ErrStageNotDue  = fmt.Errorf("%w: %s", ErrPreconditionFailed, ErrMsgStageNotDue)

	ErrPlotInvariant = fmt.Errorf("%w: %s", ErrInvariantViolation, ErrMsgPlotInvariant)

	ErrUnknownCrop        = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgUnknownCrop)
	ErrInvalidStage       = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidStage)
	ErrInvalidOrderStatus = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidOrderStatus)
	ErrInvalidCount       = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidCount)
)

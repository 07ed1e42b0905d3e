package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode first so an encoding failure can still produce a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceCallFailed, "operation", opName, "error", err)
	} else {
		log.Info(LogMsgServiceCallFailed, "operation", opName, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgFarmNotFoundError  = "Farm not found"
	ErrMsgPlotNotFoundError  = "Plot not found"
	ErrMsgOrderNotFoundError = "Order not found"
	ErrMsgNotFoundError      = "Resource not found"

	ErrMsgPlotNotEmptyError   = "That plot already has a crop"
	ErrMsgCropNotReadyError   = "That crop is not ready to harvest yet"
	ErrMsgPlotEmptyError      = "That plot has nothing growing"
	ErrMsgStageNotDueError    = "That crop is not ready for this stage yet"
	ErrMsgPreconditionError   = "The plot changed, please refresh and try again"
	ErrMsgNotEnoughCoinsError = "Not enough coins to plant"
	ErrMsgNotEnoughRealError  = "Not enough real products ready"

	ErrMsgUnknownCropError   = "Unknown crop type"
	ErrMsgInvalidStageError  = "Invalid stage"
	ErrMsgInvalidStatusError = "Invalid order status"
	ErrMsgInvalidCountError  = "Count must be positive"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message that is safe to show to the player. Not found maps to 404,
// failed preconditions to 409, bad input and shortfalls to 400, anything
// else to 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrFarmNotFound):
		return http.StatusNotFound, ErrMsgFarmNotFoundError
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, ErrMsgPlotNotFoundError
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrMsgOrderNotFoundError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError

	case errors.Is(err, domain.ErrPlotNotEmpty):
		return http.StatusConflict, ErrMsgPlotNotEmptyError
	case errors.Is(err, domain.ErrCropNotReady):
		return http.StatusConflict, ErrMsgCropNotReadyError
	case errors.Is(err, domain.ErrPlotEmpty):
		return http.StatusConflict, ErrMsgPlotEmptyError
	case errors.Is(err, domain.ErrStageNotDue):
		return http.StatusConflict, ErrMsgStageNotDueError
	case errors.Is(err, domain.ErrPreconditionFailed):
		return http.StatusConflict, ErrMsgPreconditionError

	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusBadRequest, ErrMsgNotEnoughRealError

	case errors.Is(err, domain.ErrUnknownCrop):
		return http.StatusBadRequest, ErrMsgUnknownCropError
	case errors.Is(err, domain.ErrInvalidStage):
		return http.StatusBadRequest, ErrMsgInvalidStageError
	case errors.Is(err, domain.ErrInvalidOrderStatus):
		return http.StatusBadRequest, ErrMsgInvalidStatusError
	case errors.Is(err, domain.ErrInvalidCount):
		return http.StatusBadRequest, ErrMsgInvalidCountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

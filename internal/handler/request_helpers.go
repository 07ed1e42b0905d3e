package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gauss2302/agrogame/internal/logger"
)

// URL parameter names shared by the router and the handlers
const (
	ParamFarmID  = "farmID"
	ParamPlotID  = "plotID"
	ParamOrderID = "orderID"
)

// Query parameters
const (
	QueryLimit        = "limit"
	DefaultListLimit  = 50
	MaxListLimit      = 500
	MaxRequestBodyLen = 1 << 20
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req PlantCropRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpPlantCrop); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf(LogMsgDecodeFailedFormat, actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf(LogMsgDecodedFormat, actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter from the request,
// returning defaultValue when it is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseLimit reads the limit query parameter. A missing value yields
// DefaultListLimit and anything above MaxListLimit is clamped.
func parseLimit(r *http.Request, w http.ResponseWriter) (int, bool) {
	raw := GetOptionalQueryParam(r, QueryLimit, "")
	if raw == "" {
		return DefaultListLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return min(limit, MaxListLimit), true
}

// idParam reads a positive integer URL parameter
func idParam(r *http.Request, w http.ResponseWriter, name, errMsg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		logger.FromContext(r.Context()).Warn(LogMsgInvalidURLParam, "param", name, "value", chi.URLParam(r, name))
		respondError(w, http.StatusBadRequest, errMsg)
		return 0, false
	}
	return id, true
}

// farmIDFrom resolves the farm a request targets. Routes mounted without a
// farmID parameter act on the configured default farm.
func farmIDFrom(r *http.Request, w http.ResponseWriter, defaultFarmID int64) (int64, bool) {
	if chi.URLParam(r, ParamFarmID) == "" {
		return defaultFarmID, true
	}
	return idParam(r, w, ParamFarmID, ErrMsgInvalidFarmID)
}

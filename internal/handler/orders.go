package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/export"
	"github.com/gauss2302/agrogame/internal/logger"
)

// ExportMaxOrders caps the rows in one spreadsheet export
const ExportMaxOrders = 10000

// UpdateOrderStatusRequest is the body of the order status endpoint
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// ListOrders handles GET /farms/{farmID}/orders
// @Summary List delivery orders
// @Description Newest orders first
// @Tags orders
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param limit query int false "Maximum orders" default(50)
// @Success 200 {array} domain.DeliveryOrder
// @Failure 400 {object} ErrorResponse
// @Router /farms/{farmID}/orders [get]
func (h *FarmHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}
	limit, ok := parseLimit(r, w)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(r.Context(), farmID, limit)
	if err != nil {
		respondServiceError(w, r, OpListOrders, err)
		return
	}
	if orders == nil {
		orders = []domain.DeliveryOrder{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /farms/{farmID}/orders/{orderID}
// @Summary Get delivery order
// @Tags orders
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param orderID path int true "Order ID"
// @Success 200 {object} domain.DeliveryOrder
// @Failure 404 {object} ErrorResponse
// @Router /farms/{farmID}/orders/{orderID} [get]
func (h *FarmHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	farmID, orderID, ok := h.orderTarget(r, w)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(r.Context(), farmID, orderID)
	if err != nil {
		respondServiceError(w, r, OpGetOrder, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles POST /farms/{farmID}/orders/{orderID}/status
// @Summary Update order status
// @Description Records a new fulfilment status. Milestone timestamps are stamped the first time a status is reached.
// @Tags orders
// @Accept json
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param orderID path int true "Order ID"
// @Param request body UpdateOrderStatusRequest true "New status"
// @Success 200 {object} domain.DeliveryOrder
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /farms/{farmID}/orders/{orderID}/status [post]
func (h *FarmHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	farmID, orderID, ok := h.orderTarget(r, w)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpUpdateOrderStatus); err != nil {
		return
	}

	order, err := h.svc.UpdateOrderStatus(r.Context(), farmID, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(w, r, OpUpdateOrderStatus, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgOrderStatusUpdated, logger.AttrKeyFarmID, farmID, logger.AttrKeyOrderID, orderID, "status", order.Status)
	respondJSON(w, http.StatusOK, order)
}

// ExportOrders handles GET /farms/{farmID}/orders/export
// @Summary Export delivery orders
// @Description Downloads the farm's orders as an xlsx workbook
// @Tags orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param farmID path int true "Farm ID"
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /farms/{farmID}/orders/export [get]
func (h *FarmHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(r.Context(), farmID, ExportMaxOrders)
	if err != nil {
		respondServiceError(w, r, OpExportOrders, err)
		return
	}

	// Render fully before writing headers so a failure can still be a 500
	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		log.Error(ErrMsgExportFailed, logger.AttrKeyFarmID, farmID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgExportFailed)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(farmID)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error(LogMsgWriteFailed, "error", err)
	}
}

func (h *FarmHandler) orderTarget(r *http.Request, w http.ResponseWriter) (int64, int64, bool) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return 0, 0, false
	}
	orderID, ok := idParam(r, w, ParamOrderID, ErrMsgInvalidOrderID)
	if !ok {
		return 0, 0, false
	}
	return farmID, orderID, true
}

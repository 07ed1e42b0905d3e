package handler

import (
	"context"
	"net/http"

	"github.com/gauss2302/agrogame/internal/eventlog"
)

// ActivityLister reads a farm's logged events
type ActivityLister interface {
	ListFarmEvents(ctx context.Context, farmID int64, limit int) ([]eventlog.Entry, error)
}

// GetActivity handles GET /farms/{farmID}/activity
// @Summary Farm activity
// @Description Logged farm events, most recent first
// @Tags farm
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} eventlog.Entry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farms/{farmID}/activity [get]
func (h *FarmHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}
	limit, ok := parseLimit(r, w)
	if !ok {
		return
	}

	entries, err := h.activity.ListFarmEvents(r.Context(), farmID, limit)
	if err != nil {
		respondServiceError(w, r, OpFarmActivity, err)
		return
	}
	if entries == nil {
		entries = []eventlog.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

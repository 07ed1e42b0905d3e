package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gauss2302/agrogame/internal/database"
	"github.com/gauss2302/agrogame/internal/logger"
)

// ReadinessTimeout bounds the database ping behind /readyz
const ReadinessTimeout = 2 * time.Second

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealthz answers as long as the process serves HTTP
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz reports ready only while the database answers a ping.
// Growth transitions and every farm operation need it.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		start := time.Now()
		err := dbPool.Ping(ctx)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err, "elapsed", time.Since(start))
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: HealthStatusUnavailable,
				Checks: map[string]string{"database": HealthStatusUnavailable},
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{
			Status: HealthStatusOK,
			Checks: map[string]string{"database": HealthStatusOK},
		})
	}
}

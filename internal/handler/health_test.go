package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
func (f pingFunc) Close()                         {}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "database reachable",
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: HealthStatusOK, Checks: map[string]string{"database": HealthStatusOK}},
		},
		{
			name:       "connection refused",
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: HealthStatusUnavailable, Checks: map[string]string{"database": HealthStatusUnavailable}},
		},
		{
			name:       "ping timed out",
			pingErr:    context.DeadlineExceeded,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: HealthStatusUnavailable, Checks: map[string]string{"database": HealthStatusUnavailable}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawDeadline bool
			pool := pingFunc(func(ctx context.Context) error {
				_, sawDeadline = ctx.Deadline()
				return tt.pingErr
			})

			w := httptest.NewRecorder()
			HandleReadyz(pool).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, sawDeadline, "ping must run under the readiness timeout")

			var body HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestBufferPool_DropsOversizedBuffers(t *testing.T) {
	buf := getBuffer()
	buf.Grow(bufferMaxPooledSize * 2)
	buf.WriteString("x")
	putBuffer(buf)

	// a reset buffer comes back empty either way
	next := getBuffer()
	assert.Zero(t, next.Len())
	putBuffer(next)
}

package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gauss2302/agrogame/internal/catalog"
	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/server"
	"github.com/gauss2302/agrogame/mocks"
)

type stubPool struct{ err error }

func (p stubPool) Ping(context.Context) error { return p.err }
func (p stubPool) Close()                     {}

func newRouter(t *testing.T) (*mocks.MockFarmService, http.Handler) {
	t.Helper()
	svc := mocks.NewMockFarmService(t)
	r := server.NewRouter(server.Config{
		RateLimit:      100,
		DefaultFarmID:  1,
		ClaimCacheSize: 8,
		ClaimCacheTTL:  time.Minute,
	}, server.Dependencies{
		DBPool:  stubPool{},
		Farm:    svc,
		Catalog: catalog.Default(),
	})
	return svc, r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicEndpoints(t *testing.T) {
	_, r := newRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics", "/api/v1/catalog"} {
		t.Run(path, func(t *testing.T) {
			w := serve(r, http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, server.HeaderValueNoSniff, w.Header().Get(server.HeaderContentType))
		})
	}
}

func TestRouter_FarmRoutes(t *testing.T) {
	svc, r := newRouter(t)
	svc.On("GetOrCreateFarm", mock.Anything, int64(1)).Return(&domain.FarmView{Farm: domain.Farm{ID: 1}}, nil)
	svc.On("GetOrCreateFarm", mock.Anything, int64(9)).Return(&domain.FarmView{Farm: domain.Farm{ID: 9}}, nil)
	svc.On("GetDeliveryStatus", mock.Anything, int64(1)).Return(&domain.DeliveryStatus{Ratio: 100}, nil)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/farm", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/farms/9", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/farm/delivery", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(r, http.MethodGet, "/api/v1/farm/plots/1/harvest", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/v1/nowhere", "").Code)
}

func TestRouter_RequestSizeLimit(t *testing.T) {
	_, r := newRouter(t)

	body := `{"crop":"` + strings.Repeat("a", server.MaxRequestBodyBytes) + `"}`
	w := serve(r, http.MethodPost, "/api/v1/farm/plots/1/plant", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_NotReady(t *testing.T) {
	r := server.NewRouter(server.Config{RateLimit: 10, DefaultFarmID: 1}, server.Dependencies{
		DBPool:  stubPool{err: assert.AnError},
		Farm:    mocks.NewMockFarmService(t),
		Catalog: catalog.Default(),
	})

	w := serve(r, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_SwaggerDocument(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Agrogame API")
	assert.Contains(t, w.Body.String(), "/farms/{farmID}/delivery/claim")
}

func TestRouter_ActivityRouteNeedsEventLog(t *testing.T) {
	_, r := newRouter(t)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/v1/farm/activity", "").Code)
}

package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauss2302/agrogame/internal/eventlog"
	"github.com/gauss2302/agrogame/internal/handler"
	"github.com/gauss2302/agrogame/mocks"
)

type activityFunc func(ctx context.Context, farmID int64, limit int) ([]eventlog.Entry, error)

func (f activityFunc) ListFarmEvents(ctx context.Context, farmID int64, limit int) ([]eventlog.Entry, error) {
	return f(ctx, farmID, limit)
}

func newActivityRouter(t *testing.T, lister handler.ActivityLister) http.Handler {
	t.Helper()
	h := handler.NewFarmHandler(mocks.NewMockFarmService(t), handler.FarmHandlerConfig{
		DefaultFarmID:  testDefaultFarmID,
		ClaimCacheSize: 4,
		ClaimCacheTTL:  time.Minute,
		Activity:       lister,
	})
	r := chi.NewRouter()
	r.Route("/farms/{farmID}", h.Routes)
	r.Route("/farm", h.Routes)
	return r
}

func TestGetActivity(t *testing.T) {
	var gotFarm int64
	var gotLimit int
	lister := activityFunc(func(_ context.Context, farmID int64, limit int) ([]eventlog.Entry, error) {
		gotFarm, gotLimit = farmID, limit
		if farmID == 99 {
			return nil, errors.New("db down")
		}
		if farmID == 5 {
			return nil, nil
		}
		return []eventlog.Entry{{
			ID:        1,
			FarmID:    farmID,
			EventType: "farm.crop_planted",
			Payload:   json.RawMessage(`{"farm_id":3}`),
		}}, nil
	})
	r := newActivityRouter(t, lister)

	t.Run("lists entries", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/farms/3/activity?limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var entries []eventlog.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "farm.crop_planted", entries[0].EventType)
		assert.JSONEq(t, `{"farm_id":3}`, string(entries[0].Payload))
		assert.Equal(t, int64(3), gotFarm)
		assert.Equal(t, 10, gotLimit)
	})

	t.Run("default farm and limit", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/farm/activity", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testDefaultFarmID, gotFarm)
		assert.Equal(t, handler.DefaultListLimit, gotLimit)
	})

	t.Run("empty log is an empty array", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/farms/5/activity", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/farms/99/activity", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetActivity_NotMountedWithoutLister(t *testing.T) {
	r := newActivityRouter(t, nil)
	w := doRequest(t, r, http.MethodGet, "/farm/activity", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/handler"
	"github.com/gauss2302/agrogame/mocks"
)

const testDefaultFarmID = int64(1)

func newTestRouter(t *testing.T) (*mocks.MockFarmService, http.Handler) {
	t.Helper()
	handler.InitValidator()

	svc := mocks.NewMockFarmService(t)
	h := handler.NewFarmHandler(svc, handler.FarmHandlerConfig{
		DefaultFarmID:  testDefaultFarmID,
		ClaimCacheSize: 16,
		ClaimCacheTTL:  time.Minute,
	})

	r := chi.NewRouter()
	r.Route("/farms/{farmID}", h.Routes)
	r.Route("/farm", h.Routes)
	return svc, r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func readyCarrotPlot(farmID, plotID int64) domain.Plot {
	crop := domain.CropType("carrot")
	planted := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return domain.Plot{ID: plotID, FarmID: farmID, Crop: &crop, Stage: domain.StageReady, PlantedAt: &planted}
}

func TestFarmHandler_GetFarm(t *testing.T) {
	t.Run("creates on first use", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("GetOrCreateFarm", mock.Anything, int64(7)).
			Return(&domain.FarmView{Farm: domain.Farm{ID: 7, CoinBalance: 100}, Plots: make([]domain.Plot, 9)}, nil)

		w := doRequest(t, r, http.MethodGet, "/farms/7", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var view domain.FarmView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, int64(7), view.Farm.ID)
		assert.Len(t, view.Plots, 9)
	})

	t.Run("default farm alias", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("GetOrCreateFarm", mock.Anything, testDefaultFarmID).
			Return(&domain.FarmView{Farm: domain.Farm{ID: testDefaultFarmID}}, nil)

		w := doRequest(t, r, http.MethodGet, "/farm", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	for _, bad := range []string{"abc", "0", "-3"} {
		t.Run("invalid farm id "+bad, func(t *testing.T) {
			_, r := newTestRouter(t)
			w := doRequest(t, r, http.MethodGet, "/farms/"+bad, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, handler.ErrMsgInvalidFarmID, decodeError(t, w))
		})
	}

	t.Run("internal error is not leaked", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("GetOrCreateFarm", mock.Anything, int64(7)).
			Return(nil, fmt.Errorf("query failed: %w", domain.ErrDatabaseError))

		w := doRequest(t, r, http.MethodGet, "/farms/7", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, handler.ErrMsgGenericServerError, decodeError(t, w))
		assert.NotContains(t, w.Body.String(), "query failed")
	})
}

func TestFarmHandler_PlantCrop(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockFarmService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Success",
			body: handler.PlantCropRequest{Crop: "carrot"},
			setupMock: func(m *mocks.MockFarmService) {
				crop := domain.CropType("carrot")
				m.On("PlantCrop", mock.Anything, int64(1), int64(4), crop).
					Return(&domain.PlantResult{
						Plot:           domain.Plot{ID: 4, FarmID: 1, Crop: &crop, Stage: domain.StagePlanted},
						NewCoinBalance: 95,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed JSON",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequest,
		},
		{
			name:           "Bad crop format",
			body:           handler.PlantCropRequest{Crop: "Carrot!"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgInvalidRequestSummary,
		},
		{
			name: "Unknown crop",
			body: handler.PlantCropRequest{Crop: "pumpkin"},
			setupMock: func(m *mocks.MockFarmService) {
				m.On("PlantCrop", mock.Anything, int64(1), int64(4), domain.CropType("pumpkin")).
					Return(nil, domain.ErrUnknownCrop)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgUnknownCropError,
		},
		{
			name: "Plot not empty",
			body: handler.PlantCropRequest{Crop: "carrot"},
			setupMock: func(m *mocks.MockFarmService) {
				m.On("PlantCrop", mock.Anything, int64(1), int64(4), domain.CropType("carrot")).
					Return(nil, fmt.Errorf("plant: %w", domain.ErrPlotNotEmpty))
			},
			expectedStatus: http.StatusConflict,
			expectedError:  handler.ErrMsgPlotNotEmptyError,
		},
		{
			name: "Not enough coins",
			body: handler.PlantCropRequest{Crop: "carrot"},
			setupMock: func(m *mocks.MockFarmService) {
				m.On("PlantCrop", mock.Anything, int64(1), int64(4), domain.CropType("carrot")).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgNotEnoughCoinsError,
		},
		{
			name: "Plot of another farm",
			body: handler.PlantCropRequest{Crop: "carrot"},
			setupMock: func(m *mocks.MockFarmService) {
				m.On("PlantCrop", mock.Anything, int64(1), int64(4), domain.CropType("carrot")).
					Return(nil, domain.ErrPlotNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  handler.ErrMsgPlotNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := newTestRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := doRequest(t, r, http.MethodPost, "/farms/1/plots/4/plant", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w))
			}
		})
	}

	t.Run("invalid plot id", func(t *testing.T) {
		_, r := newTestRouter(t)
		w := doRequest(t, r, http.MethodPost, "/farms/1/plots/x/plant", handler.PlantCropRequest{Crop: "carrot"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handler.ErrMsgInvalidPlotID, decodeError(t, w))
	})
}

func TestFarmHandler_AdvanceStage(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		svc, r := newTestRouter(t)
		plot := readyCarrotPlot(1, 2)
		svc.On("AdvancePlotStage", mock.Anything, int64(1), int64(2), domain.StageReady).Return(&plot, nil)

		w := doRequest(t, r, http.MethodPost, "/farms/1/plots/2/stage", handler.AdvanceStageRequest{Stage: "ready"})

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.Plot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, domain.StageReady, got.Stage)
	})

	t.Run("planted is rejected before the service", func(t *testing.T) {
		_, r := newTestRouter(t)
		w := doRequest(t, r, http.MethodPost, "/farms/1/plots/2/stage", handler.AdvanceStageRequest{Stage: "planted"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp handler.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "stage")
	})

	t.Run("not due", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("AdvancePlotStage", mock.Anything, int64(1), int64(2), domain.StageReady).Return(nil, domain.ErrStageNotDue)

		w := doRequest(t, r, http.MethodPost, "/farms/1/plots/2/stage", handler.AdvanceStageRequest{Stage: "ready"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, handler.ErrMsgStageNotDueError, decodeError(t, w))
	})

	t.Run("plot changed underneath", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("AdvancePlotStage", mock.Anything, int64(1), int64(2), domain.StageGrowing).Return(nil, domain.ErrPreconditionFailed)

		w := doRequest(t, r, http.MethodPost, "/farms/1/plots/2/stage", handler.AdvanceStageRequest{Stage: "growing"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, handler.ErrMsgPreconditionError, decodeError(t, w))
	})
}

func TestFarmHandler_HarvestCrop(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("HarvestCrop", mock.Anything, testDefaultFarmID, int64(3)).Return(&domain.HarvestResult{
			Plot:                 domain.Plot{ID: 3, FarmID: 1, Stage: domain.StageEmpty},
			NewCoinBalance:       110,
			TotalVirtualHarvests: 100,
			RealProductsReady:    1,
			HarvestedCrop:        "carrot",
			EarnedCoins:          10,
			RealProductUnlocked:  true,
		}, nil)

		w := doRequest(t, r, http.MethodPost, "/farm/plots/3/harvest", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.HarvestResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.RealProductUnlocked)
		assert.Equal(t, 1, got.RealProductsReady)
	})

	t.Run("not ready", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("HarvestCrop", mock.Anything, int64(1), int64(3)).Return(nil, domain.ErrCropNotReady)

		w := doRequest(t, r, http.MethodPost, "/farms/1/plots/3/harvest", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, handler.ErrMsgCropNotReadyError, decodeError(t, w))
	})
}

func TestFarmHandler_DeliveryStatus(t *testing.T) {
	svc, r := newTestRouter(t)
	svc.On("GetDeliveryStatus", mock.Anything, int64(1)).Return(&domain.DeliveryStatus{
		TotalVirtualHarvests: 250,
		RealProductsReady:    2,
		ProgressToNextReal:   50,
		PercentToNext:        50,
		Ratio:                100,
	}, nil)

	w := doRequest(t, r, http.MethodGet, "/farms/1/delivery", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.DeliveryStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.RealProductsReady)
	assert.Equal(t, 50, got.ProgressToNextReal)
}

func TestFarmHandler_ClaimRealProducts(t *testing.T) {
	claim := handler.ClaimRequest{Count: 2, RecipientName: "Ada", DeliveryAddress: "1 Field Lane"}
	expectedReq := domain.ClaimRequest{Count: 2, Recipient: domain.Recipient{Name: "Ada", Address: "1 Field Lane"}}
	result := &domain.ClaimResult{OrderID: 11, Reference: "AbC123", Claimed: 2, Remaining: 1, Message: "Order #11 created! 2 real product(s) ready for delivery!"}

	t.Run("success", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("ClaimRealProducts", mock.Anything, int64(1), expectedReq).Return(result, nil).Once()

		w := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim)

		require.Equal(t, http.StatusCreated, w.Code)
		var got domain.ClaimResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, *result, got)
		assert.Empty(t, w.Header().Get(handler.HeaderReplayed))
	})

	t.Run("same idempotency key replays", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("ClaimRealProducts", mock.Anything, int64(1), expectedReq).Return(result, nil).Once()

		first := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-1")
		second := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-1")

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "true", second.Header().Get(handler.HeaderReplayed))
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		svc.AssertNumberOfCalls(t, "ClaimRealProducts", 1)
	})

	t.Run("key is scoped to the farm", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("ClaimRealProducts", mock.Anything, int64(1), expectedReq).Return(result, nil).Once()
		svc.On("ClaimRealProducts", mock.Anything, int64(2), expectedReq).Return(result, nil).Once()

		doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-1")
		w := doRequest(t, r, http.MethodPost, "/farms/2/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-1")

		assert.Empty(t, w.Header().Get(handler.HeaderReplayed))
		svc.AssertNumberOfCalls(t, "ClaimRealProducts", 2)
	})

	t.Run("failed claim is not cached", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("ClaimRealProducts", mock.Anything, int64(1), expectedReq).Return(nil, domain.ErrInsufficientInventory).Once()
		svc.On("ClaimRealProducts", mock.Anything, int64(1), expectedReq).Return(result, nil).Once()

		first := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-2")
		second := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-2")

		assert.Equal(t, http.StatusBadRequest, first.Code)
		assert.Equal(t, handler.ErrMsgNotEnoughRealError, decodeError(t, first))
		assert.Equal(t, http.StatusCreated, second.Code)
	})

	t.Run("concurrent retries claim once", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("ClaimRealProducts", mock.Anything, int64(1), expectedReq).Return(result, nil).Once()

		var wg sync.WaitGroup
		codes := make([]int, 5)
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				codes[i] = doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, "k-3").Code
			}(i)
		}
		wg.Wait()

		for _, c := range codes {
			assert.Equal(t, http.StatusCreated, c)
		}
		svc.AssertNumberOfCalls(t, "ClaimRealProducts", 1)
	})

	t.Run("count must be positive", func(t *testing.T) {
		_, r := newTestRouter(t)
		w := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", handler.ClaimRequest{Count: 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handler.ErrMsgInvalidRequestSummary, decodeError(t, w))
	})

	t.Run("oversized idempotency key", func(t *testing.T) {
		_, r := newTestRouter(t)
		key := strings.Repeat("k", handler.MaxIdempotencyKeyLen+1)
		w := doRequest(t, r, http.MethodPost, "/farms/1/delivery/claim", claim, handler.HeaderIdempotencyKey, key)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFarmHandler_HarvestStats(t *testing.T) {
	svc, r := newTestRouter(t)
	svc.On("GetHarvestStats", mock.Anything, int64(1)).Return(&domain.HarvestStats{
		CountsByCropType: map[domain.CropType]int{"carrot": 3, "potato": 1},
		Total:            4,
	}, nil)

	w := doRequest(t, r, http.MethodGet, "/farms/1/stats/harvests", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"counts_by_crop_type":{"carrot":3,"potato":1},"total":4}`, w.Body.String())
}

func TestFarmHandler_HarvestHistory(t *testing.T) {
	t.Run("default limit and empty list", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("GetHarvestHistory", mock.Anything, int64(1), handler.DefaultListLimit).Return(nil, nil)

		w := doRequest(t, r, http.MethodGet, "/farms/1/stats/harvests/history", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("limit is clamped", func(t *testing.T) {
		svc, r := newTestRouter(t)
		svc.On("GetHarvestHistory", mock.Anything, int64(1), handler.MaxListLimit).Return([]domain.HarvestHistoryEntry{}, nil)

		w := doRequest(t, r, http.MethodGet, "/farms/1/stats/harvests/history?limit=100000", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, r := newTestRouter(t)
		w := doRequest(t, r, http.MethodGet, "/farms/1/stats/harvests/history?limit=zero", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handler.ErrMsgInvalidLimit, decodeError(t, w))
	})
}

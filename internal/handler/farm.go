package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/gauss2302/agrogame/internal/concurrency"
	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/farm"
	"github.com/gauss2302/agrogame/internal/logger"
)

// MaxIdempotencyKeyLen bounds the Idempotency-Key header
const MaxIdempotencyKeyLen = 128

// PlantCropRequest is the body of the plant endpoint
type PlantCropRequest struct {
	Crop string `json:"crop" validate:"required,crop"`
}

// AdvanceStageRequest is the body of the stage endpoint
type AdvanceStageRequest struct {
	Stage string `json:"stage" validate:"required,stage"`
}

// ClaimRequest is the body of the delivery claim endpoint
type ClaimRequest struct {
	Count           int    `json:"count" validate:"min=1,max=1000"`
	RecipientName   string `json:"recipient_name" validate:"max=200,excludesall=\x00"`
	RecipientPhone  string `json:"recipient_phone" validate:"max=50,excludesall=\x00"`
	DeliveryAddress string `json:"delivery_address" validate:"max=500,excludesall=\x00"`
	Notes           string `json:"notes" validate:"max=500,excludesall=\x00"`
}

// FarmHandlerConfig tunes the farm handler
type FarmHandlerConfig struct {
	DefaultFarmID  int64
	ClaimCacheSize int
	ClaimCacheTTL  time.Duration

	// Activity serves the event log feed; the route is omitted when nil
	Activity ActivityLister
}

// FarmHandler handles farm, plot and delivery requests
type FarmHandler struct {
	svc           farm.Service
	activity      ActivityLister
	defaultFarmID int64

	// claims remembers successful claims per farm and Idempotency-Key
	claims *lru.LRU[string, *domain.ClaimResult]
	locks  *concurrency.LockManager
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(svc farm.Service, cfg FarmHandlerConfig) *FarmHandler {
	return &FarmHandler{
		svc:           svc,
		activity:      cfg.Activity,
		defaultFarmID: cfg.DefaultFarmID,
		claims:        lru.NewLRU[string, *domain.ClaimResult](cfg.ClaimCacheSize, nil, cfg.ClaimCacheTTL),
		locks:         concurrency.NewLockManager(),
	}
}

// Routes registers the farm routes below a farm root. Mounted under a
// pattern without {farmID}, the routes act on the default farm.
func (h *FarmHandler) Routes(r chi.Router) {
	r.Get("/", h.GetFarm)
	r.Post("/plots/{plotID}/plant", h.PlantCrop)
	r.Post("/plots/{plotID}/stage", h.AdvanceStage)
	r.Post("/plots/{plotID}/harvest", h.HarvestCrop)
	r.Get("/delivery", h.GetDeliveryStatus)
	r.Post("/delivery/claim", h.ClaimRealProducts)
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/export", h.ExportOrders)
	r.Get("/orders/{orderID}", h.GetOrder)
	r.Post("/orders/{orderID}/status", h.UpdateOrderStatus)
	r.Get("/stats/harvests", h.GetHarvestStats)
	r.Get("/stats/harvests/history", h.GetHarvestHistory)
	if h.activity != nil {
		r.Get("/activity", h.GetActivity)
	}
}

// GetFarm handles GET /farms/{farmID}
// @Summary Get farm
// @Description Returns the farm and its plot grid, creating both on first use
// @Tags farm
// @Produce json
// @Param farmID path int true "Farm ID"
// @Success 200 {object} domain.FarmView
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /farms/{farmID} [get]
func (h *FarmHandler) GetFarm(w http.ResponseWriter, r *http.Request) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}

	view, err := h.svc.GetOrCreateFarm(r.Context(), farmID)
	if err != nil {
		respondServiceError(w, r, OpGetFarm, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// PlantCrop handles POST /farms/{farmID}/plots/{plotID}/plant
// @Summary Plant a crop
// @Description Spends the plant cost and plants a crop on an empty plot
// @Tags farm
// @Accept json
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param plotID path int true "Plot ID"
// @Param request body PlantCropRequest true "Crop to plant"
// @Success 201 {object} domain.PlantResult
// @Failure 400 {object} ErrorResponse "Invalid request, unknown crop or not enough coins"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Plot is not empty"
// @Router /farms/{farmID}/plots/{plotID}/plant [post]
func (h *FarmHandler) PlantCrop(w http.ResponseWriter, r *http.Request) {
	farmID, plotID, ok := h.plotTarget(r, w)
	if !ok {
		return
	}

	var req PlantCropRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpPlantCrop); err != nil {
		return
	}

	result, err := h.svc.PlantCrop(r.Context(), farmID, plotID, domain.CropType(req.Crop))
	if err != nil {
		respondServiceError(w, r, OpPlantCrop, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgCropPlanted, logger.AttrKeyFarmID, farmID, logger.AttrKeyPlotID, plotID, "crop", req.Crop)
	respondJSON(w, http.StatusCreated, result)
}

// AdvanceStage handles POST /farms/{farmID}/plots/{plotID}/stage
// @Summary Advance plot stage
// @Description Moves a plot to growing or ready once that stage is due. Already reached stages are a no-op.
// @Tags farm
// @Accept json
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param plotID path int true "Plot ID"
// @Param request body AdvanceStageRequest true "Target stage"
// @Success 200 {object} domain.Plot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Stage not due yet or plot changed"
// @Router /farms/{farmID}/plots/{plotID}/stage [post]
func (h *FarmHandler) AdvanceStage(w http.ResponseWriter, r *http.Request) {
	farmID, plotID, ok := h.plotTarget(r, w)
	if !ok {
		return
	}

	var req AdvanceStageRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAdvanceStage); err != nil {
		return
	}

	plot, err := h.svc.AdvancePlotStage(r.Context(), farmID, plotID, domain.Stage(req.Stage))
	if err != nil {
		respondServiceError(w, r, OpAdvanceStage, err)
		return
	}
	respondJSON(w, http.StatusOK, plot)
}

// HarvestCrop handles POST /farms/{farmID}/plots/{plotID}/harvest
// @Summary Harvest a ready crop
// @Tags farm
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param plotID path int true "Plot ID"
// @Success 200 {object} domain.HarvestResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Crop not ready"
// @Router /farms/{farmID}/plots/{plotID}/harvest [post]
func (h *FarmHandler) HarvestCrop(w http.ResponseWriter, r *http.Request) {
	farmID, plotID, ok := h.plotTarget(r, w)
	if !ok {
		return
	}

	result, err := h.svc.HarvestCrop(r.Context(), farmID, plotID)
	if err != nil {
		respondServiceError(w, r, OpHarvestCrop, err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgCropHarvested,
		logger.AttrKeyFarmID, farmID,
		logger.AttrKeyPlotID, plotID,
		"crop", result.HarvestedCrop,
		"real_product_unlocked", result.RealProductUnlocked)
	respondJSON(w, http.StatusOK, result)
}

// GetDeliveryStatus handles GET /farms/{farmID}/delivery
// @Summary Delivery status
// @Description Progress of virtual harvests toward real products
// @Tags delivery
// @Produce json
// @Param farmID path int true "Farm ID"
// @Success 200 {object} domain.DeliveryStatus
// @Failure 404 {object} ErrorResponse
// @Router /farms/{farmID}/delivery [get]
func (h *FarmHandler) GetDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}

	status, err := h.svc.GetDeliveryStatus(r.Context(), farmID)
	if err != nil {
		respondServiceError(w, r, OpDeliveryStatus, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// ClaimRealProducts handles POST /farms/{farmID}/delivery/claim
// @Summary Claim real products
// @Description Converts ready real products into a delivery order. Repeating a request with the same Idempotency-Key returns the first result.
// @Tags delivery
// @Accept json
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param Idempotency-Key header string false "Client supplied request key"
// @Param request body ClaimRequest true "Claim details"
// @Success 201 {object} domain.ClaimResult
// @Failure 400 {object} ErrorResponse "Invalid count or not enough real products"
// @Failure 404 {object} ErrorResponse
// @Router /farms/{farmID}/delivery/claim [post]
func (h *FarmHandler) ClaimRealProducts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpClaimRealProducts); err != nil {
		return
	}

	key := r.Header.Get(HeaderIdempotencyKey)
	if len(key) > MaxIdempotencyKeyLen {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return
	}

	var cacheKey string
	if key != "" {
		// Claims with a key are serialized per farm so a retry waits for
		// the first attempt and then sees its cached result.
		unlock := h.locks.Lock(strconv.FormatInt(farmID, 10))
		defer unlock()

		cacheKey = strconv.FormatInt(farmID, 10) + ":" + key
		if cached, hit := h.claims.Get(cacheKey); hit {
			log.Info(LogMsgClaimReplayed, logger.AttrKeyFarmID, farmID, logger.AttrKeyOrderID, cached.OrderID)
			w.Header().Set(HeaderReplayed, "true")
			respondJSON(w, http.StatusCreated, cached)
			return
		}
	}

	result, err := h.svc.ClaimRealProducts(r.Context(), farmID, domain.ClaimRequest{
		Count: req.Count,
		Recipient: domain.Recipient{
			Name:    req.RecipientName,
			Phone:   req.RecipientPhone,
			Address: req.DeliveryAddress,
			Notes:   req.Notes,
		},
	})
	if err != nil {
		respondServiceError(w, r, OpClaimRealProducts, err)
		return
	}

	if cacheKey != "" {
		h.claims.Add(cacheKey, result)
	}

	log.Info(LogMsgRealProductsClaimed, logger.AttrKeyFarmID, farmID, logger.AttrKeyOrderID, result.OrderID, "claimed", result.Claimed)
	respondJSON(w, http.StatusCreated, result)
}

// GetHarvestStats handles GET /farms/{farmID}/stats/harvests
// @Summary Harvest statistics
// @Description Successful harvests counted per crop type
// @Tags stats
// @Produce json
// @Param farmID path int true "Farm ID"
// @Success 200 {object} domain.HarvestStats
// @Router /farms/{farmID}/stats/harvests [get]
func (h *FarmHandler) GetHarvestStats(w http.ResponseWriter, r *http.Request) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}

	stats, err := h.svc.GetHarvestStats(r.Context(), farmID)
	if err != nil {
		respondServiceError(w, r, OpHarvestStats, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetHarvestHistory handles GET /farms/{farmID}/stats/harvests/history
// @Summary Harvest history
// @Description Most recent harvests first
// @Tags stats
// @Produce json
// @Param farmID path int true "Farm ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} domain.HarvestHistoryEntry
// @Router /farms/{farmID}/stats/harvests/history [get]
func (h *FarmHandler) GetHarvestHistory(w http.ResponseWriter, r *http.Request) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return
	}
	limit, ok := parseLimit(r, w)
	if !ok {
		return
	}

	history, err := h.svc.GetHarvestHistory(r.Context(), farmID, limit)
	if err != nil {
		respondServiceError(w, r, OpHarvestHistory, err)
		return
	}
	if history == nil {
		history = []domain.HarvestHistoryEntry{}
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *FarmHandler) plotTarget(r *http.Request, w http.ResponseWriter) (int64, int64, bool) {
	farmID, ok := farmIDFrom(r, w, h.defaultFarmID)
	if !ok {
		return 0, 0, false
	}
	plotID, ok := idParam(r, w, ParamPlotID, ErrMsgInvalidPlotID)
	if !ok {
		return 0, 0, false
	}
	return farmID, plotID, true
}

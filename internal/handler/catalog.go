package handler

import (
	"net/http"

	"github.com/gauss2302/agrogame/internal/domain"
)

// CropLister is the read side of the crop catalog
type CropLister interface {
	All() []domain.CropCatalogEntry
}

// CatalogResponse lists every plantable crop
type CatalogResponse struct {
	Crops []domain.CropCatalogEntry `json:"crops"`
}

// HandleGetCatalog returns the crop catalog
// @Summary Crop catalog
// @Description Every plantable crop with its grow duration and harvest value
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /catalog [get]
func HandleGetCatalog(crops CropLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, CatalogResponse{Crops: crops.All()})
	}
}

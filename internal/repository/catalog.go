package repository

import (
	"context"

	"github.com/gauss2302/agrogame/internal/domain"
)

// Catalog persists the crop catalog mirror
type Catalog interface {
	GetCropCatalog(ctx context.Context) ([]domain.CropCatalogEntry, error)
	UpsertCropCatalogEntry(ctx context.Context, entry domain.CropCatalogEntry) error
}

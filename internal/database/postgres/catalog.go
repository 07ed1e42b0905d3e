package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/repository"
)

// CatalogRepository mirrors the crop catalog into crop_catalog
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ repository.Catalog = (*CatalogRepository)(nil)

// GetCropCatalog returns every stored entry ordered by crop type
func (r *CatalogRepository) GetCropCatalog(ctx context.Context) ([]domain.CropCatalogEntry, error) {
	rows, err := r.db.Query(ctx, SQLGetCropCatalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCatalog, err)
	}
	entries, err := collect(rows, func(row pgx.Row) (*domain.CropCatalogEntry, error) {
		var (
			e    domain.CropCatalogEntry
			crop string
		)
		if err := row.Scan(&crop, &e.Name, &e.GrowDuration, &e.HarvestValue, &e.ImageRef); err != nil {
			return nil, err
		}
		e.Type = domain.CropType(crop)
		return &e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCatalog, err)
	}
	return entries, nil
}

// UpsertCropCatalogEntry inserts or replaces one entry
func (r *CatalogRepository) UpsertCropCatalogEntry(ctx context.Context, e domain.CropCatalogEntry) error {
	_, err := r.db.Exec(ctx, SQLUpsertCropCatalogEntry,
		string(e.Type), e.Name, e.GrowDuration, e.HarvestValue, e.ImageRef)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertEntry, err)
	}
	return nil
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gauss2302/agrogame/internal/catalog"
	"github.com/gauss2302/agrogame/internal/repository"
)

// SyncCropCatalog loads the crop catalog (falling back to the built-in crops
// when the file is missing) and mirrors it into the database.
func SyncCropCatalog(ctx context.Context, path string, repo repository.Catalog) (*catalog.Catalog, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	crops, err := catalog.LoadOrDefault(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCrops, err)
	}

	if _, err := crops.SyncToDatabase(ctx, repo); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncCrops, err)
	}
	return crops, nil
}

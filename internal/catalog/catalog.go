package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/logger"
	"github.com/gauss2302/agrogame/internal/repository"
	"github.com/gauss2302/agrogame/internal/validation"
)

// ErrInvalidCatalog is returned when catalog entries break a catalog rule
var ErrInvalidCatalog = fmt.Errorf("%w: invalid crop catalog", domain.ErrInvalidInput)

// File is the on-disk layout of configs/crops.json
type File struct {
	Version     string                    `json:"version"`
	Description string                    `json:"description,omitempty"`
	Crops       []domain.CropCatalogEntry `json:"crops"`
}

// Catalog is an immutable lookup of plantable crops
type Catalog struct {
	byType map[domain.CropType]domain.CropCatalogEntry
	sorted []domain.CropCatalogEntry
}

// SyncResult contains the result of syncing the catalog to the database
type SyncResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

// New validates entries and builds a catalog from them
func New(entries []domain.CropCatalogEntry) (*Catalog, error) {
	normalized, err := Validate(entries)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		byType: make(map[domain.CropType]domain.CropCatalogEntry, len(normalized)),
		sorted: normalized,
	}
	sort.Slice(c.sorted, func(i, j int) bool { return c.sorted[i].Type < c.sorted[j].Type })
	for _, e := range c.sorted {
		c.byType[e.Type] = e
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New([]domain.CropCatalogEntry{
		{Type: domain.CropCarrot, Name: "Carrot", GrowDuration: 9000, HarvestValue: 10, ImageRef: "/game/carrot/another_carrot_2.png"},
		{Type: domain.CropPotato, Name: "Potato", GrowDuration: 10000, HarvestValue: 15, ImageRef: "/game/potato/potato_plant.png"},
		{Type: domain.CropWatermelon, Name: "Watermelon", GrowDuration: 8000, HarvestValue: 25, ImageRef: "/game/watermelon/watermelon_plant.png"},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file, validating it against SchemaPath before decoding
func Load(path string) (*Catalog, error) {
	return LoadWith(validation.NewSchemaValidator(), path)
}

// LoadWith is Load with a caller-supplied schema validator
func LoadWith(sv validation.SchemaValidator, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadFileFailed, path, err)
	}

	if err := sv.ValidateBytes(data, SchemaPath); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf(ErrMsgParseFailed, path, err)
	}

	return New(f.Crops)
}

// LoadOrDefault loads path, falling back to Default when the file does not exist
func LoadOrDefault(ctx context.Context, path string) (*Catalog, error) {
	log := logger.FromContext(ctx)

	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn(LogMsgCatalogFallback, "path", path)
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgCatalogLoaded, "path", path, "crops", len(c.sorted))
	return c, nil
}

// Validate checks catalog rules and returns a normalized copy of entries.
// A missing display name is derived from the crop type.
func Validate(entries []domain.CropCatalogEntry) ([]domain.CropCatalogEntry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, ErrMsgNoCrops)
	}

	title := cases.Title(language.English)
	seen := make(map[domain.CropType]bool, len(entries))
	out := make([]domain.CropCatalogEntry, 0, len(entries))

	for i, e := range entries {
		switch {
		case e.Type == "":
			return nil, fmt.Errorf("%w: "+ErrMsgEmptyType, ErrInvalidCatalog, i)
		case seen[e.Type]:
			return nil, fmt.Errorf("%w: "+ErrMsgDuplicateType, ErrInvalidCatalog, e.Type)
		case e.GrowDuration <= 0:
			return nil, fmt.Errorf("%w: "+ErrMsgNonPositiveGrow, ErrInvalidCatalog, e.Type)
		case e.HarvestValue < 0:
			return nil, fmt.Errorf("%w: "+ErrMsgNegativeValue, ErrInvalidCatalog, e.Type)
		}
		seen[e.Type] = true

		if e.Name == "" {
			e.Name = title.String(string(e.Type))
		}
		out = append(out, e)
	}
	return out, nil
}

// Get returns the entry for crop, or domain.ErrUnknownCrop
func (c *Catalog) Get(crop domain.CropType) (domain.CropCatalogEntry, error) {
	e, ok := c.byType[crop]
	if !ok {
		return domain.CropCatalogEntry{}, fmt.Errorf("%w: %q", domain.ErrUnknownCrop, crop)
	}
	return e, nil
}

// Has reports whether crop is plantable
func (c *Catalog) Has(crop domain.CropType) bool {
	_, ok := c.byType[crop]
	return ok
}

// All returns every entry sorted by type
func (c *Catalog) All() []domain.CropCatalogEntry {
	out := make([]domain.CropCatalogEntry, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// GrowDuration returns the total grow time of crop
func (c *Catalog) GrowDuration(crop domain.CropType) (time.Duration, error) {
	e, err := c.Get(crop)
	if err != nil {
		return 0, err
	}
	return e.GrowDurationTime(), nil
}

// SyncToDatabase mirrors the catalog into the crop_catalog table
func (c *Catalog) SyncToDatabase(ctx context.Context, repo repository.Catalog) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	existing, err := repo.GetCropCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadExistingCrops, err)
	}
	byType := make(map[domain.CropType]domain.CropCatalogEntry, len(existing))
	for _, e := range existing {
		byType[e.Type] = e
	}

	result := &SyncResult{}
	for _, e := range c.sorted {
		current, found := byType[e.Type]
		if found && current == e {
			result.Skipped++
			continue
		}

		if err := repo.UpsertCropCatalogEntry(ctx, e); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertCropFailed, e.Type, err)
		}
		if found {
			result.Updated++
			log.Info(LogMsgCropUpdated, "crop", e.Type)
		} else {
			result.Inserted++
			log.Info(LogMsgCropInserted, "crop", e.Type)
		}
	}

	log.Info(LogMsgCatalogSynced,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped)
	return result, nil
}

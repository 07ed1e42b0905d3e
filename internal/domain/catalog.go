package domain

import "time"

// CropCatalogEntry describes one plantable crop
type CropCatalogEntry struct {
	Type         CropType `json:"type"`
	Name         string   `json:"name"`
	GrowDuration int64    `json:"grow_duration_ms"`
	HarvestValue int      `json:"harvest_value"`
	ImageRef     string   `json:"image_ref,omitempty"`
}

// GrowDurationTime returns the grow duration as a time.Duration
func (e CropCatalogEntry) GrowDurationTime() time.Duration {
	return time.Duration(e.GrowDuration) * time.Millisecond
}

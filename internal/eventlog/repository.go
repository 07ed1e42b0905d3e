package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one persisted farm event
type Entry struct {
	ID            int64           `json:"id"`
	FarmID        int64           `json:"farm_id"`
	EventType     string          `json:"event_type"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload" swaggertype:"object"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Repository stores the farm event audit log
type Repository interface {
	// LogEvent appends an entry. ID and CreatedAt are assigned by the store.
	LogEvent(ctx context.Context, entry Entry) error

	// ListFarmEvents returns a farm's most recent entries first
	ListFarmEvents(ctx context.Context, farmID int64, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries created before cutoff
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gauss2302/agrogame/internal/eventlog"
)

// EventLogRepository implements eventlog.Repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// LogEvent stores an event in the database
func (r *EventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	_, err := r.db.Exec(ctx, SQLInsertFarmEvent, entry.FarmID, entry.EventType, entry.SchemaVersion, []byte(entry.Payload))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// ListFarmEvents returns a farm's most recent events first
func (r *EventLogRepository) ListFarmEvents(ctx context.Context, farmID int64, limit int) ([]eventlog.Entry, error) {
	rows, err := r.db.Query(ctx, SQLListFarmEvents, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	entries, err := collect(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	return entries, nil
}

// CleanupOldEvents removes events created before cutoff
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLDeleteFarmEventsBefore, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvent(row pgx.Row) (*eventlog.Entry, error) {
	var (
		e       eventlog.Entry
		payload []byte
	)
	if err := row.Scan(&e.ID, &e.FarmID, &e.EventType, &e.SchemaVersion, &payload, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Payload = payload
	return &e, nil
}

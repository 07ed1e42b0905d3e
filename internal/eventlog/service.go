package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gauss2302/agrogame/internal/clock"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/logger"
)

// Service records farm events and serves them back as an activity feed
type Service interface {
	// Subscribe registers the event logger for every farm event type
	Subscribe(bus event.Bus)

	// ListFarmEvents returns a farm's most recent events first
	ListFarmEvents(ctx context.Context, farmID int64, limit int) ([]Entry, error)

	// CleanupOldEvents removes events older than retention
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo  Repository
	clock clock.Clock
}

// NewService creates a new event logging service. A nil clock uses real time.
func NewService(repo Repository, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{repo: repo, clock: clk}
}

func (s *service) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, s.handleEvent)
}

// farmRef picks the farm out of any farm event payload
type farmRef struct {
	FarmID int64 `json:"farm_id"`
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	ref, err := event.DecodePayload[farmRef](evt.Payload)
	if err != nil || ref.FarmID == 0 {
		log.Debug(LogMsgEventPayloadNoFarm, LogFieldType, evt.Type)
		return nil
	}

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodePayload, err)
	}

	entry := Entry{
		FarmID:        ref.FarmID,
		EventType:     string(evt.Type),
		SchemaVersion: evt.Version,
		Payload:       payload,
	}
	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return fmt.Errorf("%s: %w", ErrMsgLogEvent, err)
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldFarmID, ref.FarmID)
	return nil
}

func (s *service) ListFarmEvents(ctx context.Context, farmID int64, limit int) ([]Entry, error) {
	entries, err := s.repo.ListFarmEvents(ctx, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListEvents, err)
	}
	return entries, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	count, err := s.repo.CleanupOldEvents(ctx, s.clock.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgCleanupEvents, err)
	}
	return count, nil
}

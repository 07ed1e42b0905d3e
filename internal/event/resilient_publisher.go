package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gauss2302/agrogame/internal/logger"
)

// retryEntry is one queued event. handlers are the subscribers still owed
// the event; when empty the whole bus is published again.
type retryEntry struct {
	event     Event
	handlers  []Handler
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher publishes to a Bus and retries failed publishes in the
// background with exponential backoff. Events that still fail are written to
// a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker and opens the dead-letter file
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// PublishWithRetry publishes synchronously once. A failure is queued for
// background retry and never reported to the caller. When the bus reports
// which handlers failed, only those are retried.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	p.enqueue(retryEntry{
		event:     evt,
		handlers:  failedHandlers(err),
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(p.retryDelay, 1)),
		lastErr:   err,
	})
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			if !p.waitUntil(entry.nextRetry) {
				p.retryOnce(entry)
				p.drain()
				return
			}
			p.retry(entry)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// waitUntil sleeps until t and reports false if shutdown began first
func (p *ResilientPublisher) waitUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.shutdown:
		return false
	}
}

// failedHandlers returns the handlers named by a *HandlerError, or nil when
// the failure cannot be narrowed down
func failedHandlers(err error) []Handler {
	var herr *HandlerError
	if errors.As(err, &herr) {
		return herr.Failed
	}
	return nil
}

// redeliver sends the event to the handlers still owed it and narrows the
// entry to the ones that failed again
func (p *ResilientPublisher) redeliver(ctx context.Context, entry *retryEntry) error {
	if len(entry.handlers) == 0 {
		return p.bus.Publish(ctx, entry.event)
	}
	err := Deliver(ctx, entry.event, entry.handlers)
	if err != nil {
		entry.handlers = failedHandlers(err)
	}
	return err
}

func (p *ResilientPublisher) retry(entry retryEntry) {
	err := p.redeliver(context.Background(), &entry)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if entry.attempt >= p.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt)
		p.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.nextRetry = time.Now().Add(CalculateRetryDelay(p.retryDelay, entry.attempt))
	logger.Debug(LogMsgEventRetryFailed, "event_type", entry.event.Type, "next_attempt", entry.attempt, "error", err)
	p.enqueue(entry)
}

// retryOnce makes a final attempt without requeueing
func (p *ResilientPublisher) retryOnce(entry retryEntry) {
	if err := p.redeliver(context.Background(), &entry); err != nil {
		entry.lastErr = err
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.retryOnce(entry)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker after one last attempt at every queued
// event. It is safe to call more than once.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout, "error", ctx.Err())
		return ctx.Err()
	}

	if p.deadLetter != nil {
		// second Close returns os.ErrClosed, nothing to report
		_ = p.deadLetter.Close()
	}
	return nil
}

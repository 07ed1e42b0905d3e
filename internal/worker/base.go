package worker

import (
	"context"
	"sync"
	"time"

	"github.com/gauss2302/agrogame/internal/clock"
	"github.com/gauss2302/agrogame/internal/logger"
)

// timerEntry pairs a pending timer with the schedule generation that created it.
// A callback whose seq no longer matches the registered entry was superseded.
type timerEntry struct {
	timer clock.Timer
	seq   uint64
}

// BaseWorker keeps one pending timer per key and tracks in-flight callbacks
type BaseWorker struct {
	clock    clock.Clock
	mu       sync.Mutex
	timers   map[int64]timerEntry
	seq      uint64
	closed   bool
	shutdown chan struct{}
	wg       sync.WaitGroup
}

func (w *BaseWorker) init(clk clock.Clock) {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	w.clock = clk
	if w.timers == nil {
		w.timers = make(map[int64]timerEntry)
	}
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

// arm replaces any pending timer for id with one that runs fn after d.
// fn runs as a tracked execution and is skipped once the worker is closed
// or a newer timer was armed for the same id. It reports false after shutdown.
func (w *BaseWorker) arm(id int64, d time.Duration, fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}
	if existing, ok := w.timers[id]; ok {
		existing.timer.Stop()
	}

	w.seq++
	seq := w.seq
	timer := w.clock.AfterFunc(d, func() {
		if !w.begin(id, seq) {
			return
		}
		defer w.wg.Done()
		fn()
	})
	w.timers[id] = timerEntry{timer: timer, seq: seq}
	return true
}

// begin claims a fired timer for execution
func (w *BaseWorker) begin(id int64, seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.timers[id]
	if !ok || entry.seq != seq {
		return false
	}
	delete(w.timers, id)
	if w.closed {
		return false
	}
	w.wg.Add(1)
	return true
}

func (w *BaseWorker) stopTimer(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	entry, ok := w.timers[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(w.timers, id)
	return true
}

func (w *BaseWorker) pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) isPending(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.timers[id]
	return ok
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.shutdown)
	for id, entry := range w.timers {
		entry.timer.Stop()
		log.Debug("Cancelled pending "+workerName+" execution", logger.AttrKeyPlotID, id)
	}
	w.timers = make(map[int64]timerEntry)
	w.mu.Unlock()

	// Wait for in-flight executions
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}

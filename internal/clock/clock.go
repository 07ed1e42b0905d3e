package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock provides an abstraction for time operations and timers
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the duration since the given time
	Since(t time.Time) time.Duration
	// AfterFunc calls f in its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the subset of *time.Timer the application relies on
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call stopped the timer.
	Stop() bool
}

// RealClock uses the actual system time
type RealClock struct{}

// NewRealClock creates a new RealClock instance
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the duration since the given time
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// AfterFunc wraps time.AfterFunc
func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SimulatedClock allows time manipulation for testing.
// Timers registered through AfterFunc fire only when Advance or Set moves
// the clock past their deadline.
type SimulatedClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*simTimer
	seq     int
}

type simTimer struct {
	clock   *SimulatedClock
	when    time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewSimulatedClock creates a new SimulatedClock starting at the given time
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

// Now returns the simulated current time
func (c *SimulatedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Since returns the duration since the given time
func (c *SimulatedClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// AfterFunc registers f to run once the simulated clock reaches now+d.
// A non-positive d fires on the next Advance, including Advance(0).
func (c *SimulatedClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &simTimer{
		clock: c,
		when:  c.current.Add(d),
		seq:   c.seq,
		f:     f,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the simulated time forward and fires every due timer in
// deadline order. Callbacks run in their own goroutines, like time.AfterFunc.
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	due := c.collectDueLocked()
	c.mu.Unlock()

	for _, t := range due {
		go t.f()
	}
}

// Set jumps the simulated clock to t and fires due timers
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	due := c.collectDueLocked()
	c.mu.Unlock()

	for _, timer := range due {
		go timer.f()
	}
}

// PendingTimers returns the number of timers that have neither fired nor been stopped
func (c *SimulatedClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *SimulatedClock) collectDueLocked() []*simTimer {
	var due, remaining []*simTimer
	for _, t := range c.timers {
		if !t.when.After(c.current) {
			t.fired = true
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining

	sort.Slice(due, func(i, j int) bool {
		if due[i].when.Equal(due[j].when) {
			return due[i].seq < due[j].seq
		}
		return due[i].when.Before(due[j].when)
	})
	return due
}

// Stop removes the timer from the simulated clock
func (t *simTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			break
		}
	}
	return true
}

package clock

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the session clock period.
const DefaultInterval = time.Second

// Scheduler runs a callback periodically until stopped.
type Scheduler interface {
	Start(fn func())
	Stop()
}

// Interval is a Scheduler backed by a time.Ticker.
type Interval struct {
	period time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewInterval creates an Interval firing every period. A non-positive
// period falls back to DefaultInterval.
func NewInterval(period time.Duration) *Interval {
	if period <= 0 {
		period = DefaultInterval
	}
	return &Interval{period: period}
}

// Start begins calling fn once per period. Calling Start while running
// does nothing.
func (i *Interval) Start(fn func()) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	i.cancel = cancel
	i.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(i.period)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Stop may have raced with the tick.
				if ctx.Err() != nil {
					return
				}
				fn()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels the ticker and waits for any in-flight callback to return.
// It is safe to call more than once.
func (i *Interval) Stop() {
	i.mu.Lock()
	cancel, done := i.cancel, i.done
	i.cancel, i.done = nil, nil
	i.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the ticker is active.
func (i *Interval) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.cancel != nil
}

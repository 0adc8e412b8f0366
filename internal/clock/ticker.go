package clock

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the countdown refresh period.
const DefaultInterval = time.Second

// Ticker samples a Clock on a fixed interval. Each view owns one ticker
// and must call Stop when it is torn down.
type Ticker struct {
	clock    Clock
	interval time.Duration
	out      chan time.Time
	stopChan chan struct{}
	sample   time.Time
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// NewTicker creates a ticker over the given clock. A non-positive interval uses DefaultInterval.
func NewTicker(c Clock, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Ticker{
		clock:    c,
		interval: interval,
		out:      make(chan time.Time, 1),
		stopChan: make(chan struct{}),
		sample:   c.Now(),
	}
}

// Start begins sampling and returns the channel samples are delivered on.
// A sample is delivered immediately, then once per interval. Only the latest
// undelivered sample is kept. The channel is closed when Stop is called or ctx is done.
// Calling Start again returns the same channel.
func (t *Ticker) Start(ctx context.Context) <-chan time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return t.out
	}

	t.started = true

	if t.stopped {
		close(t.out)
		return t.out
	}

	go t.run(ctx)

	return t.out
}

// Stop ends sampling. It is safe to call more than once and before Start.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.stopped {
		close(t.stopChan)
		t.stopped = true
	}
}

// Sample returns the most recent clock sample.
func (t *Ticker) Sample() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sample
}

// Interval returns the sampling period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

func (t *Ticker) run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	defer close(t.out)

	t.publish()

	for {
		select {
		case <-ticker.C:
			t.publish()
		case <-ctx.Done():
			return
		case <-t.stopChan:
			return
		}
	}
}

// publish records a new sample and replaces any sample the consumer has not read yet.
func (t *Ticker) publish() {
	now := t.clock.Now()

	t.mu.Lock()
	t.sample = now
	t.mu.Unlock()

	select {
	case <-t.out:
	default:
	}

	t.out <- now
}

package testutil

import (
	"sync"
	"time"

	"learner/internal/clock"
)

// FakeClock provides a controllable clock for tests. Tickers created from it
// fire only when Advance moves time past their next deadline.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

var _ clock.Clock = (*FakeClock)(nil)

// NewFakeClock initializes a FakeClock at the provided start time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker registers a ticker that fires every d of fake time.
func (c *FakeClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticker := &fakeTicker{
		clock:  c,
		period: d,
		next:   c.now.Add(d),
		ch:     make(chan time.Time, 1),
	}
	c.tickers = append(c.tickers, ticker)
	return ticker
}

// Advance moves the fake time forward and fires due tickers. Like time.Ticker,
// a tick is dropped when the previous one has not been received yet.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	due := make([]*fakeTicker, 0, len(c.tickers))
	for _, ticker := range c.tickers {
		if ticker.stopped {
			continue
		}
		if !ticker.next.After(now) {
			due = append(due, ticker)
			for !ticker.next.After(now) {
				ticker.next = ticker.next.Add(ticker.period)
			}
		}
	}
	c.mu.Unlock()
	for _, ticker := range due {
		select {
		case ticker.ch <- now:
		default:
		}
	}
}

// Tickers reports how many tickers are still running.
func (c *FakeClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	active := 0
	for _, ticker := range c.tickers {
		if !ticker.stopped {
			active++
		}
	}
	return active
}

type fakeTicker struct {
	clock   *FakeClock
	period  time.Duration
	next    time.Time
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

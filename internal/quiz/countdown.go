package quiz

import (
	"context"
	"time"

	"learner/internal/clock"
)

// RunCountdown ticks a timed attempt once per second until it completes or ctx
// is cancelled. Untimed attempts return immediately.
func (e *Engine) RunCountdown(ctx context.Context, clk clock.Clock) {
	if _, timed := e.RemainingSeconds(); !timed {
		return
	}
	ticker := clk.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case <-ticker.C():
			if e.Tick() {
				return
			}
		}
	}
}

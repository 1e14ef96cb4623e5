package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds waits in unit tests.
const DefaultTimeout = 5 * time.Second

const pollInterval = 5 * time.Millisecond

// Context returns a context cancelled at the end of the test or after timeout,
// whichever comes first. A zero timeout uses DefaultTimeout.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tt, ok := t.(*testing.T); ok {
		if deadline, ok := tt.Deadline(); ok {
			remaining := time.Until(deadline) - time.Second
			if remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// Eventually polls fn until it returns true, failing the test after
// DefaultTimeout.
func Eventually(t testing.TB, fn func() bool, msg string) {
	t.Helper()
	deadline := time.After(DefaultTimeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !fn() {
		select {
		case <-deadline:
			t.Fatalf("timed out: %s", msg)
		case <-ticker.C:
		}
	}
}

// WaitClosed fails the test unless ch closes within DefaultTimeout.
func WaitClosed(t testing.TB, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(DefaultTimeout):
		t.Fatalf("timed out: %s", msg)
	}
}

// Package retry implements the bounded fixed-delay loop used to wait for
// dependencies at process startup. It is never applied to per-request
// operations.
package retry

import (
	"context"
	"fmt"
	"time"
)

// State tracks a loop's progress through its lifecycle.
type State int

const (
	Connecting State = iota
	Connected
	Failed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Defaults give a dependency roughly 30 minutes to come up.
const (
	DefaultMaxAttempts = 60
	DefaultDelay       = 30 * time.Second
)

// Loop retries an operation a fixed number of times with a fixed delay
// between attempts. Not safe for concurrent use; create one per caller.
type Loop struct {
	MaxAttempts int
	Delay       time.Duration

	state State
}

func New(maxAttempts int, delay time.Duration) *Loop {
	return &Loop{MaxAttempts: maxAttempts, Delay: delay}
}

func (l *Loop) State() State { return l.state }

// Run calls op until it succeeds or MaxAttempts is exhausted. The first nil
// error moves the loop to Connected; exhaustion moves it to Failed and
// returns the last error wrapped. Context cancellation aborts the wait.
func (l *Loop) Run(ctx context.Context, op func(ctx context.Context) error) error {
	l.state = Connecting
	var last error
	for attempt := 1; attempt <= l.MaxAttempts; attempt++ {
		if err := op(ctx); err == nil {
			l.state = Connected
			return nil
		} else {
			last = err
		}
		if attempt == l.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			l.state = Failed
			return ctx.Err()
		case <-time.After(l.Delay):
		}
	}
	l.state = Failed
	return fmt.Errorf("gave up after %d attempts: %w", l.MaxAttempts, last)
}

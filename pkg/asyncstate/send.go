package asyncstate

import (
	"context"
	"time"
)

// send delivers s unless ctx is done first.
func send[T any](ctx context.Context, out chan<- State[T], s State[T]) bool {
	select {
	case out <- s:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

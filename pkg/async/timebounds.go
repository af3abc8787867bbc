package async

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultMinBound = 125 * time.Millisecond
	DefaultMaxBound = time.Second
)

// WithTimeBounds runs fn and shapes its wall-clock duration so that fast
// operations do not flicker in a UI:
//
//   - elapsed > maxBound: returns immediately;
//   - elapsed < minBound: waits maxBound-elapsed before returning;
//   - otherwise returns immediately.
//
// A fast operation is padded up to maxBound, not minBound. The padding wait
// stops early when ctx is done, in which case fn's result is returned along
// with ctx.Err() if fn itself succeeded.
//
// WithTimeBounds panics if minBound > maxBound.
func WithTimeBounds[T any](ctx context.Context, minBound, maxBound time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if minBound > maxBound {
		panic(fmt.Sprintf("async: minBound (%s) must be less than or equal to maxBound (%s)", minBound, maxBound))
	}

	start := time.Now()
	result, err := fn(ctx)
	elapsed := time.Since(start)

	if elapsed > maxBound || elapsed >= minBound {
		return result, err
	}

	timer := time.NewTimer(maxBound - elapsed)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return result, err
}

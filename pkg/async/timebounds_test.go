package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/async"
)

func sleepFor(d time.Duration, v string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		time.Sleep(d)
		return v, nil
	}
}

func TestWithTimeBounds(t *testing.T) {
	t.Parallel()

	t.Run("fast body is padded to max", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		v, err := async.WithTimeBounds(context.Background(), 125*time.Millisecond, 1000*time.Millisecond, sleepFor(10*time.Millisecond, "fast"))
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, "fast", v)
		assert.GreaterOrEqual(t, elapsed, 1000*time.Millisecond)
		assert.Less(t, elapsed, 1300*time.Millisecond)
	})

	t.Run("slow body returns immediately", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		v, err := async.WithTimeBounds(context.Background(), 20*time.Millisecond, 100*time.Millisecond, sleepFor(200*time.Millisecond, "slow"))
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, "slow", v)
		assert.Less(t, elapsed, 300*time.Millisecond)
	})

	t.Run("body within bounds is not padded", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		_, err := async.WithTimeBounds(context.Background(), 20*time.Millisecond, 500*time.Millisecond, sleepFor(50*time.Millisecond, "mid"))
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 250*time.Millisecond)
	})

	t.Run("error is returned after padding", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		start := time.Now()
		_, err := async.WithTimeBounds(context.Background(), 50*time.Millisecond, 100*time.Millisecond, func(context.Context) (int, error) {
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("cancellation cuts the padding", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		v, err := async.WithTimeBounds(ctx, 125*time.Millisecond, time.Second, sleepFor(time.Millisecond, "x"))
		assert.Equal(t, "x", v)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("min greater than max panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			_, _ = async.WithTimeBounds(context.Background(), time.Second, time.Millisecond, sleepFor(0, ""))
		})
	})
}

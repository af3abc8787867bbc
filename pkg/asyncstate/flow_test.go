package asyncstate_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
	"github.com/dmitrymomot/statekit/pkg/backoff"
)

var errSource = errors.New("source failed")

// failOnce fails its first subscription and emits "x" on the next ones.
func failOnce(subscriptions *atomic.Int32) asyncstate.Source[string] {
	return func(ctx context.Context, emit func(string) error) error {
		if subscriptions.Add(1) == 1 {
			return errSource
		}
		return emit("x")
	}
}

func TestFromFlowStopCollection(t *testing.T) {
	t.Parallel()

	src := func(ctx context.Context, emit func(string) error) error {
		if err := emit("a"); err != nil {
			return err
		}
		return errSource
	}

	states := collect(t, asyncstate.FromFlow(context.Background(), src))
	assert.Equal(t, []asyncstate.State[string]{
		asyncstate.Loading[string](),
		asyncstate.Success("a"),
		asyncstate.Error[string](errSource),
	}, states)
}

func TestFromFlowCompletes(t *testing.T) {
	t.Parallel()

	states := collect(t, asyncstate.FromFlow(context.Background(), asyncstate.FromSlice(1, 2, 3)))
	assert.Equal(t, []asyncstate.State[int]{
		asyncstate.Loading[int](),
		asyncstate.Success(1),
		asyncstate.Success(2),
		asyncstate.Success(3),
	}, states)
}

func TestFromFlowRetry(t *testing.T) {
	t.Parallel()

	var subs atomic.Int32
	start := time.Now()
	states := collect(t, asyncstate.FromFlow(context.Background(), failOnce(&subs),
		asyncstate.WithErrorPolicy(asyncstate.Retry(50*time.Millisecond))))

	assert.Equal(t, []asyncstate.State[string]{
		asyncstate.Loading[string](),
		asyncstate.Error[string](errSource),
		asyncstate.Loading[string](),
		asyncstate.Success("x"),
	}, states)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, int32(2), subs.Load())
}

func TestFromFlowSilentRetry(t *testing.T) {
	t.Parallel()

	var subs atomic.Int32
	states := collect(t, asyncstate.FromFlow(context.Background(), failOnce(&subs),
		asyncstate.WithErrorPolicy(asyncstate.SilentRetry(10*time.Millisecond))))

	assert.Equal(t, []asyncstate.State[string]{
		asyncstate.Loading[string](),
		asyncstate.Error[string](errSource),
		asyncstate.Success("x"),
	}, states)
}

func TestFromFlowRetryWithBackoff(t *testing.T) {
	t.Parallel()

	var subs atomic.Int32
	src := func(ctx context.Context, emit func(int) error) error {
		if n := subs.Add(1); n < 4 {
			return errSource
		}
		return emit(4)
	}

	start := time.Now()
	states := collect(t, asyncstate.FromFlow(context.Background(), src,
		asyncstate.WithErrorPolicy(asyncstate.RetryWithBackoff(backoff.NewExponential(10*time.Millisecond, 0), true))))

	// 10ms + 20ms + 40ms between the four subscriptions.
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
	assert.Equal(t, []asyncstate.Kind{
		asyncstate.KindLoading,
		asyncstate.KindError,
		asyncstate.KindError,
		asyncstate.KindError,
		asyncstate.KindSuccess,
	}, kinds(states))
}

func TestFromFlowCancellation(t *testing.T) {
	t.Parallel()

	t.Run("while waiting to retry", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		src := func(context.Context, func(int) error) error { return errSource }
		ch := asyncstate.FromFlow(ctx, src, asyncstate.WithErrorPolicy(asyncstate.Retry(time.Hour)))

		assert.True(t, (<-ch).IsLoading())
		assert.True(t, (<-ch).IsError())
		cancel()
		requireClosed(t, ch, time.Second)
	})

	t.Run("while collecting", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		items := make(chan int)
		ch := asyncstate.FromFlow(ctx, asyncstate.FromChannel(items))
		assert.True(t, (<-ch).IsLoading())
		items <- 1
		assert.Equal(t, asyncstate.Success(1), <-ch)

		cancel()
		for s := range ch {
			assert.False(t, s.IsError())
		}
	})

	t.Run("source returning canceled is not retried", func(t *testing.T) {
		t.Parallel()
		var subs atomic.Int32
		src := func(context.Context, func(int) error) error {
			subs.Add(1)
			return context.Canceled
		}
		states := collect(t, asyncstate.FromFlow(context.Background(), src,
			asyncstate.WithErrorPolicy(asyncstate.Retry(time.Millisecond))))
		assert.Equal(t, []asyncstate.State[int]{asyncstate.Loading[int]()}, states)
		assert.Equal(t, int32(1), subs.Load())
	})
}

func TestFromSubscribe(t *testing.T) {
	t.Parallel()

	var subs atomic.Int32
	src := asyncstate.FromSubscribe(func(ctx context.Context) <-chan string {
		subs.Add(1)
		ch := make(chan string, 2)
		ch <- "a"
		ch <- "b"
		close(ch)
		return ch
	})

	states := collect(t, asyncstate.FromFlow(context.Background(), src, asyncstate.WithBuffer(4)))
	require.Len(t, states, 3)
	assert.Equal(t, asyncstate.Success("b"), states[2])
	assert.Equal(t, int32(1), subs.Load())
}

func TestErrorPolicyFlags(t *testing.T) {
	t.Parallel()

	assert.False(t, asyncstate.StopCollection().Retries())
	assert.True(t, asyncstate.Retry(time.Second).Retries())
	assert.False(t, asyncstate.Retry(time.Second).Silent())
	assert.True(t, asyncstate.SilentRetry(time.Second).Silent())
}

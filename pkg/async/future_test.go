package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/async"
)

// within bounds a wait so a broken future fails the test instead of hanging it.
func within[U any](t *testing.T, f *async.Future[U], d time.Duration) (U, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return f.AwaitContext(ctx)
}

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("result", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(context.Context) (string, error) {
			return "done", nil
		})

		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "done", v)
		assert.True(t, f.IsComplete())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			return 0, boom
		})

		_, err := f.Await()
		assert.Same(t, boom, err)
	})

	t.Run("every waiter sees the same outcome", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			<-release
			return 42, nil
		})

		var wg sync.WaitGroup
		results := make([]int, 6)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = f.Await()
			}(i)
		}
		close(release)
		wg.Wait()

		for _, v := range results {
			assert.Equal(t, 42, v)
		}
	})

	t.Run("done channel", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			<-release
			return 1, nil
		})
		assert.False(t, f.IsComplete())

		close(release)
		select {
		case <-f.Done():
		case <-time.After(time.Second):
			t.Fatal("future did not complete")
		}
	})

	t.Run("ids are distinct", func(t *testing.T) {
		t.Parallel()
		fn := func(context.Context) (int, error) { return 0, nil }
		a := async.Go(context.Background(), fn)
		b := async.Go(context.Background(), fn)
		assert.NotEqual(t, uuid.Nil, a.ID())
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestCancel(t *testing.T) {
	t.Parallel()

	t.Run("body ignoring its context", func(t *testing.T) {
		t.Parallel()
		started := make(chan struct{})
		f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			time.Sleep(200 * time.Millisecond)
			return 1, nil
		})

		<-started
		f.Cancel()

		v, err := within(t, f, 100*time.Millisecond)
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, v)
	})

	t.Run("completes before the body returns", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			<-release
			return 1, nil
		})

		f.Cancel()
		close(release)

		assert.True(t, f.IsComplete())
		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("body observes cancellation", func(t *testing.T) {
		t.Parallel()
		seen := make(chan error, 1)
		started := make(chan struct{})
		f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			seen <- ctx.Err()
			return 0, ctx.Err()
		})

		<-started
		f.Cancel()

		select {
		case err := <-seen:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("body context was not cancelled")
		}
	})

	t.Run("parent cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		f := async.Go(ctx, func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

		cancel()
		_, err := within(t, f, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("cancelled parent skips the body", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := make(chan struct{}, 1)
		f := async.Go(ctx, func(context.Context) (int, error) {
			ran <- struct{}{}
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		select {
		case <-ran:
			t.Fatal("body ran on a cancelled context")
		case <-time.After(20 * time.Millisecond):
		}
	})

	t.Run("after completion keeps the result", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			return 7, nil
		})
		_, err := f.Await()
		require.NoError(t, err)

		f.Cancel()
		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
		time.Sleep(100 * time.Millisecond)
		return 3, nil
	})

	_, err := within(t, f, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())

	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

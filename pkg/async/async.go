package async

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Unit is the result type of futures that only signal completion.
type Unit = struct{}

// Future represents the result of an asynchronous computation. A Future is
// completed exactly once: by its function returning, or by cancellation of
// its context, whichever happens first.
type Future[U any] struct {
	id     uuid.UUID
	result U
	err    error
	once   sync.Once
	done   chan struct{}
	cancel context.CancelFunc
}

func newFuture[U any](cancel context.CancelFunc) *Future[U] {
	return &Future[U]{
		id:     uuid.New(),
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

func (f *Future[U]) complete(result U, err error) {
	f.once.Do(func() {
		f.result = result
		f.err = err
		close(f.done)
	})
}

// ID returns the identifier assigned when the future was created.
func (f *Future[U]) ID() uuid.UUID {
	return f.id
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done. Giving up on the
// wait does not cancel the future; other waiters still observe its result.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// IsComplete reports whether the future has completed, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed on completion.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Cancel cancels the future's context and completes it with
// context.Canceled, unless it already completed. Once Cancel returns the
// future can no longer succeed, even if its function ignores the context.
func (f *Future[U]) Cancel() {
	f.cancel()
	var zero U
	f.complete(zero, context.Canceled)
}

// Go runs fn in its own goroutine under a cancellable child of ctx and
// returns its Future. Cancelling ctx or calling Cancel completes the future
// with the context error immediately, without waiting for fn to return.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	ctx, cancel := context.WithCancel(ctx)
	f := newFuture[U](cancel)

	stop := context.AfterFunc(ctx, func() {
		var zero U
		f.complete(zero, ctx.Err())
	})

	go func() {
		defer cancel()
		defer stop()

		// A pre-cancelled context is completed by the AfterFunc above.
		if ctx.Err() != nil {
			return
		}

		res, err := fn(ctx)
		f.complete(res, err)
	}()

	return f
}

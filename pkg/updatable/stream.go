package updatable

import (
	"context"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
)

// Fold emits initial, then the result of folding each state of in into the
// previous value. The channel is closed when in is closed or ctx is done.
func Fold[T any](ctx context.Context, initial State[T], in <-chan asyncstate.State[T]) <-chan State[T] {
	out := make(chan State[T])
	go func() {
		defer close(out)

		cur := initial
		if !send(ctx, out, cur) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-in:
				if !ok {
					return
				}
				cur = cur.Update(s)
				if !send(ctx, out, cur) {
					return
				}
			}
		}
	}()
	return out
}

// FromFlow folds asyncstate.FromFlow(src) into initial.
func FromFlow[T any](ctx context.Context, initial State[T], src asyncstate.Source[T], opts ...asyncstate.Option) <-chan State[T] {
	return Fold(ctx, initial, asyncstate.FromFlow(ctx, src, opts...))
}

// FromSuspending folds asyncstate.FromSuspending(fn) into initial.
func FromSuspending[T any](ctx context.Context, initial State[T], fn func(context.Context, *asyncstate.Progress) (T, error), opts ...asyncstate.Option) <-chan State[T] {
	return Fold(ctx, initial, asyncstate.FromSuspending(ctx, fn, opts...))
}

// UpdateFromFlow refreshes s from src, starting from s's data with Idle
// activity.
func UpdateFromFlow[T any](ctx context.Context, s State[T], src asyncstate.Source[T], opts ...asyncstate.Option) <-chan State[T] {
	return FromFlow(ctx, Initial[T](s.Value()), src, opts...)
}

// UpdateFromSuspending refreshes s from fn, starting from s's data with Idle
// activity.
func UpdateFromSuspending[T any](ctx context.Context, s State[T], fn func(context.Context, *asyncstate.Progress) (T, error), opts ...asyncstate.Option) <-chan State[T] {
	return FromSuspending(ctx, Initial[T](s.Value()), fn, opts...)
}

// MapStream applies Map to every state of in.
func MapStream[T, U any](ctx context.Context, in <-chan State[T], fn func(T) U) <-chan State[U] {
	out := make(chan State[U])
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-in:
				if !ok {
					return
				}
				if !send(ctx, out, Map(s, fn)) {
					return
				}
			}
		}
	}()
	return out
}

func send[T any](ctx context.Context, out chan<- State[T], s State[T]) bool {
	select {
	case out <- s:
		return true
	case <-ctx.Done():
		return false
	}
}

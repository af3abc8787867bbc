package asyncstate

import "context"

// pipe forwards every state of in through fn until in is closed or ctx is
// done.
func pipe[T, U any](ctx context.Context, in <-chan State[T], fn func(State[T]) State[U]) <-chan State[U] {
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
				if !send(ctx, out, fn(s)) {
					return
				}
			}
		}
	}()
	return out
}

// MapStream applies Map to every state of in.
func MapStream[T, U any](ctx context.Context, in <-chan State[T], fn func(T) U) <-chan State[U] {
	return pipe(ctx, in, func(s State[T]) State[U] { return Map(s, fn) })
}

// NilStreamAsError applies NilAsError to every state of in.
func NilStreamAsError[T any](ctx context.Context, in <-chan State[*T]) <-chan State[*T] {
	return pipe(ctx, in, NilAsError[T])
}

// Handlers are side effects run by Tap. Nil handlers are skipped.
type Handlers[T any] struct {
	OnIdle    func()
	OnLoading func(progress float64, ok bool)
	OnSuccess func(T)
	OnError   func(error)
}

// Tap runs the matching handler for every state of in and forwards the
// state unchanged.
func Tap[T any](ctx context.Context, in <-chan State[T], h Handlers[T]) <-chan State[T] {
	return pipe(ctx, in, func(s State[T]) State[T] {
		switch s.kind {
		case KindIdle:
			if h.OnIdle != nil {
				h.OnIdle()
			}
		case KindLoading:
			if h.OnLoading != nil {
				h.OnLoading(s.Progress())
			}
		case KindSuccess:
			if h.OnSuccess != nil {
				h.OnSuccess(s.data)
			}
		case KindError:
			if h.OnError != nil {
				h.OnError(s.err)
			}
		default:
			panic(unknownKind(s.kind))
		}
		return s
	})
}

// Collect drains in. It returns what was received so far together with
// ctx.Err() if ctx is done before in is closed.
func Collect[T any](ctx context.Context, in <-chan State[T]) ([]State[T], error) {
	var states []State[T]
	for {
		select {
		case <-ctx.Done():
			return states, ctx.Err()
		case s, ok := <-in:
			if !ok {
				return states, nil
			}
			states = append(states, s)
		}
	}
}

// Last drains in and returns its final state, or ErrEmptyStream if in was
// closed without any.
func Last[T any](ctx context.Context, in <-chan State[T]) (State[T], error) {
	var (
		last State[T]
		seen bool
	)
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case s, ok := <-in:
			if !ok {
				if !seen {
					return last, ErrEmptyStream
				}
				return last, nil
			}
			last, seen = s, true
		}
	}
}

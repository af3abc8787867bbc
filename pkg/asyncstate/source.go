package asyncstate

import "context"

// FromChannel reads ch until it is closed. A resubscription continues
// reading the same channel.
func FromChannel[T any](ch <-chan T) Source[T] {
	return func(ctx context.Context, emit func(T) error) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case v, ok := <-ch:
				if !ok {
					return nil
				}
				if err := emit(v); err != nil {
					return err
				}
			}
		}
	}
}

// FromSlice emits items in order and completes.
func FromSlice[T any](items ...T) Source[T] {
	return func(ctx context.Context, emit func(T) error) error {
		for _, v := range items {
			if err := emit(v); err != nil {
				return err
			}
		}
		return nil
	}
}

// FromSubscribe calls subscribe for every subscription and reads the
// returned channel until it is closed. The subscription context is cancelled
// when the stream ends.
func FromSubscribe[T any](subscribe func(context.Context) <-chan T) Source[T] {
	return func(ctx context.Context, emit func(T) error) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		return FromChannel(subscribe(ctx))(ctx, emit)
	}
}

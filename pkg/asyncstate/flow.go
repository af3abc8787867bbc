package asyncstate

import (
	"context"
	"errors"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Source is a re-subscribable sequence of values. It calls emit for every
// item and returns when the sequence ends (nil) or fails. emit blocks until
// the item is delivered and returns the context error once the consumer is
// gone; sources should return when emit fails.
type Source[T any] func(ctx context.Context, emit func(T) error) error

// FromFlow subscribes to src and streams Loading once, then Success per
// item in order. What happens on failure is decided by the ErrorPolicy
// (WithErrorPolicy, StopCollection by default). Items delivered before a
// failure are always observed before its Error.
//
// The channel is closed when src completes, when the policy stops, or when
// ctx is cancelled. Cancellation never produces an Error and is never
// retried.
func FromFlow[T any](ctx context.Context, src Source[T], opts ...Option) <-chan State[T] {
	o := newOptions(opts)
	out := make(chan State[T], o.buffer)

	go func() {
		defer close(out)

		if !send(ctx, out, Loading[T]()) {
			return
		}

		emit := func(v T) error {
			if send(ctx, out, Success(v)) {
				return nil
			}
			return ctx.Err()
		}

		for attempt := 1; ; attempt++ {
			err := src(ctx, emit)
			if err == nil {
				return
			}
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}

			if !send(ctx, out, Error[T](err)) {
				return
			}
			if !o.policy.retry {
				return
			}

			delay := o.policy.delayFor(attempt)
			o.logger.Debug("source failed, retrying",
				logger.Attempt(attempt),
				logger.Duration(delay),
				logger.Error(err),
			)
			if !sleep(ctx, delay) {
				return
			}
			if !o.policy.silent {
				if !send(ctx, out, Loading[T]()) {
					return
				}
			}
		}
	}()

	return out
}

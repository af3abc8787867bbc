package asyncstate

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Progress lets a FromSuspending body report progress. Reports never block:
// only the latest unseen value is kept.
type Progress struct {
	mu     sync.Mutex
	value  float64
	signal chan struct{}
}

func newProgress() *Progress {
	return &Progress{value: math.NaN(), signal: make(chan struct{}, 1)}
}

// Emit reports determinate progress in [0, 1]. Values outside are clamped,
// NaN is indeterminate.
func (p *Progress) Emit(v float64) {
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()

	select {
	case p.signal <- struct{}{}:
	default:
	}
}

// EmitIndeterminate reports progress of unknown extent.
func (p *Progress) EmitIndeterminate() {
	p.Emit(math.NaN())
}

func (p *Progress) latest() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// progressKey buckets reports by whole percent; indeterminate is -1.
func progressKey(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(min(max(v, 0), 1) * 100)
}

// FromSuspending runs fn and streams its lifecycle: Loading first, then a
// Loading(p) per distinct debounced progress report, then Success or Error.
// The channel is closed afterwards.
//
// A report still waiting out the debounce window when fn returns is flushed
// before the terminal state. Cancellation of ctx, or fn returning
// context.Canceled, closes the channel without an Error.
func FromSuspending[T any](ctx context.Context, fn func(context.Context, *Progress) (T, error), opts ...Option) <-chan State[T] {
	o := newOptions(opts)
	out := make(chan State[T], o.buffer)

	go func() {
		defer close(out)

		if !send(ctx, out, Loading[T]()) {
			return
		}

		bodyCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		type result struct {
			data T
			err  error
		}
		progress := newProgress()
		done := make(chan result, 1)
		go func() {
			data, err := fn(bodyCtx, progress)
			done <- result{data, err}
		}()

		var (
			lastKey = progressKey(math.NaN())
			pending float64
			waiting bool
			timer   *time.Timer
			timerC  <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		// observe applies duplicate filtering and reports whether v should
		// be scheduled.
		observe := func(v float64) bool {
			key := progressKey(v)
			if key == lastKey {
				return false
			}
			lastKey = key
			pending, waiting = v, true
			return true
		}

		flush := func() bool {
			if !waiting {
				return true
			}
			waiting = false
			timerC = nil
			return send(ctx, out, LoadingProgress[T](pending))
		}

		for {
			select {
			case <-ctx.Done():
				o.logger.Debug("suspending producer cancelled", logger.Error(ctx.Err()))
				return

			case <-progress.signal:
				if !observe(progress.latest()) {
					continue
				}
				if o.debounce <= 0 {
					if !flush() {
						return
					}
					continue
				}
				if timer == nil {
					timer = time.NewTimer(o.debounce)
				} else {
					timer.Reset(o.debounce)
				}
				timerC = timer.C

			case <-timerC:
				if !flush() {
					return
				}

			case res := <-done:
				// A report made right before returning may not have been
				// picked up yet.
				observe(progress.latest())
				if !flush() {
					return
				}
				if ctx.Err() != nil || errors.Is(res.err, context.Canceled) {
					o.logger.Debug("suspending producer cancelled", logger.Error(res.err))
					return
				}
				if res.err != nil {
					send(ctx, out, Error[T](res.err))
					return
				}
				send(ctx, out, Success(res.data))
				return
			}
		}
	}()

	return out
}

// FromFuture streams the lifecycle of awaiting f. A cancelled future closes
// the stream without an Error; ctx cancellation stops waiting but does not
// cancel f.
func FromFuture[T any](ctx context.Context, f *async.Future[T], opts ...Option) <-chan State[T] {
	return FromSuspending(ctx, func(ctx context.Context, _ *Progress) (T, error) {
		return f.AwaitContext(ctx)
	}, opts...)
}

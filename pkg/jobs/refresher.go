package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

const (
	refreshKey     = "refresh"
	autoRefreshKey = "autoRefresh"
)

// Refresher runs a refresh action at most once at a time, optionally
// repeating it on an interval.
//
// A refresh cycle cancels any scheduled auto-refresh, runs the action and,
// when it succeeds and an interval is set, schedules the next cycle. A
// failed action skips the rescheduling. Concurrent requests join the running
// cycle.
type Refresher struct {
	jobs   *Manager
	action func(context.Context) error
	logger *slog.Logger

	mu       sync.Mutex
	interval time.Duration
}

// NewRefresher creates a Refresher whose cycles run under ctx.
func NewRefresher(ctx context.Context, action func(context.Context) error, opts ...Option) *Refresher {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	l := logger.OrDefault(o.logger).With(logger.Component("refresher"))

	return &Refresher{
		jobs:   NewManager(ctx, WithLogger(l)),
		action: action,
		logger: l,
	}
}

// AutoRefresh sets the interval between successful cycles and triggers a
// refresh. A zero interval disables auto-refresh.
func (r *Refresher) AutoRefresh(every time.Duration) *Refresher {
	r.mu.Lock()
	r.interval = every
	r.mu.Unlock()

	r.Refresh()
	return r
}

// Interval returns the current auto-refresh interval.
func (r *Refresher) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Refresh starts a cycle or joins the running one. Cancelling the returned
// future does not cancel the cycle.
func (r *Refresher) Refresh() *async.Future[Unit] {
	f, _ := r.cycle(nil)
	return follow(r.jobs, f)
}

// AwaitRefresh starts or joins a cycle and waits for it.
func (r *Refresher) AwaitRefresh(ctx context.Context) error {
	f, _ := r.cycle(nil)
	_, err := f.AwaitContext(ctx)
	return err
}

// Stop clears the interval and cancels the scheduled auto-refresh. A
// running cycle is not interrupted.
func (r *Refresher) Stop() {
	r.mu.Lock()
	r.interval = 0
	r.mu.Unlock()

	r.jobs.Cancel(autoRefreshKey)
}

// Close cancels the running cycle and the scheduled auto-refresh.
func (r *Refresher) Close() {
	r.jobs.Close()
}

// RefreshAfter waits for the running cycle, then runs action as the first
// step of a new cycle and returns its result once that cycle completed.
// If another request started a cycle first, RefreshAfter waits for it and
// tries again, so action always runs inside a cycle.
func RefreshAfter[T any](ctx context.Context, r *Refresher, action func(context.Context) (T, error)) (T, error) {
	var zero T
	for {
		if err := r.jobs.Wait(ctx, refreshKey); err != nil {
			return zero, err
		}

		var result T
		f, joined := r.cycle(func(ctx context.Context) error {
			v, err := action(ctx)
			result = v
			return err
		})
		_, err := f.AwaitContext(ctx)
		if !joined {
			if err != nil {
				return zero, err
			}
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		r.logger.Debug("refresh joined a foreign cycle, retrying")
	}
}

// cycle starts or joins the refresh cycle. before runs ahead of the action
// when a new cycle is started.
func (r *Refresher) cycle(before func(context.Context) error) (*async.Future[Unit], bool) {
	return start(r.jobs, refreshKey, StrategyJoin, func(ctx context.Context) (Unit, error) {
		r.jobs.Cancel(autoRefreshKey)

		if before != nil {
			if err := before(ctx); err != nil {
				return Unit{}, err
			}
		}
		if err := r.action(ctx); err != nil {
			r.logger.Debug("refresh failed", logger.Error(err))
			return Unit{}, err
		}

		r.jobs.LaunchReplacing(autoRefreshKey, r.scheduled)
		return Unit{}, nil
	})
}

// scheduled waits one interval and starts the next cycle.
func (r *Refresher) scheduled(ctx context.Context) error {
	interval := r.Interval()
	if interval <= 0 {
		return nil
	}

	t := time.NewTimer(interval)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.logger.Debug("auto refresh", logger.Duration(interval))
	r.cycle(nil)
	return nil
}

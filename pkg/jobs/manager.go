package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Unit is the result type of jobs that only signal completion.
type Unit = async.Unit

type entry struct {
	typ      reflect.Type
	id       uuid.UUID
	handle   any
	done     <-chan struct{}
	cancel   func()
	complete func() bool
}

// Manager runs at most one job per key. Jobs run under the manager's
// domain context: cancelling the context passed to NewManager, or calling
// Close, cancels every job.
//
// Keys must be comparable. A nil key stands for the call site of the
// request.
type Manager struct {
	ctx    context.Context
	close  context.CancelFunc
	logger *slog.Logger

	mu     sync.Mutex
	active map[any]*entry
}

// NewManager creates a manager whose jobs run under a child of ctx.
func NewManager(ctx context.Context, opts ...Option) *Manager {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Manager{
		ctx:    ctx,
		close:  cancel,
		logger: logger.OrDefault(o.logger).With(logger.Component("jobs")),
		active: make(map[any]*entry),
	}
}

// Async requests fn under key with the given strategy.
//
// With StrategyJoin, a running job for key is returned as is; it panics
// with ErrTypeMismatch if that job produces a type other than T. With
// StrategyReplace, a running job is cancelled first. Otherwise fn is
// started and registered until it completes.
func Async[T any](m *Manager, key any, strategy Strategy, fn func(context.Context) (T, error)) *async.Future[T] {
	f, _ := start(m, keyOrCallSite(key, 1), strategy, fn)
	return f
}

// Join is Async with StrategyJoin.
func Join[T any](m *Manager, key any, fn func(context.Context) (T, error)) *async.Future[T] {
	f, _ := start(m, keyOrCallSite(key, 1), StrategyJoin, fn)
	return f
}

// Replace is Async with StrategyReplace.
func Replace[T any](m *Manager, key any, fn func(context.Context) (T, error)) *async.Future[T] {
	f, _ := start(m, keyOrCallSite(key, 1), StrategyReplace, fn)
	return f
}

// start is Async for a resolved key. joined reports whether a running job
// was returned.
func start[T any](m *Manager, key any, strategy Strategy, fn func(context.Context) (T, error)) (f *async.Future[T], joined bool) {
	typ := reflect.TypeFor[T]()

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.active[key]; ok {
		switch strategy {
		case StrategyJoin:
			if !e.complete() {
				if e.typ != typ {
					panic(fmt.Errorf("%w: key %v runs %s, requested %s", ErrTypeMismatch, key, e.typ, typ))
				}
				m.logger.Debug("job joined",
					logger.JobKey(key),
					logger.JobID(e.id),
					logger.Strategy(strategy.String()),
				)
				return e.handle.(*async.Future[T]), true
			}
		case StrategyReplace:
			e.cancel()
			m.logger.Debug("job replaced",
				logger.JobKey(key),
				logger.JobID(e.id),
				logger.Strategy(strategy.String()),
			)
		}
		delete(m.active, key)
	}

	f = async.Go(m.ctx, fn)
	e := &entry{
		typ:      typ,
		id:       f.ID(),
		handle:   f,
		done:     f.Done(),
		cancel:   f.Cancel,
		complete: f.IsComplete,
	}
	m.active[key] = e
	m.logger.Debug("job started",
		logger.JobKey(key),
		logger.JobID(e.id),
		logger.Strategy(strategy.String()),
	)

	go m.release(key, e)
	return f, false
}

// release removes e once it completes, unless it was replaced meanwhile.
func (m *Manager) release(key any, e *entry) {
	<-e.done

	m.mu.Lock()
	if cur, ok := m.active[key]; ok && cur == e {
		delete(m.active, key)
	}
	m.mu.Unlock()

	m.logger.Debug("job finished", logger.JobKey(key), logger.JobID(e.id))
}

// Launch runs fn under key, joining a running job. The returned future
// follows the job; cancelling it stops following without cancelling the
// job.
func (m *Manager) Launch(key any, fn func(context.Context) error) *async.Future[Unit] {
	return m.launch(keyOrCallSite(key, 1), StrategyJoin, fn)
}

// LaunchReplacing runs fn under key, replacing a running job.
func (m *Manager) LaunchReplacing(key any, fn func(context.Context) error) *async.Future[Unit] {
	return m.launch(keyOrCallSite(key, 1), StrategyReplace, fn)
}

func (m *Manager) launch(key any, strategy Strategy, fn func(context.Context) error) *async.Future[Unit] {
	job, _ := start(m, key, strategy, func(ctx context.Context) (Unit, error) {
		return Unit{}, fn(ctx)
	})
	return follow(m, job)
}

// follow returns a future, owned by the manager domain, that completes with
// f.
func follow[T any](m *Manager, f *async.Future[T]) *async.Future[T] {
	return async.Go(m.ctx, func(ctx context.Context) (T, error) {
		return f.AwaitContext(ctx)
	})
}

// Cancel cancels and forgets the job running under key, if any.
func (m *Manager) Cancel(key any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.active[key]
	if !ok {
		return
	}
	e.cancel()
	delete(m.active, key)
	m.logger.Debug("job cancelled", logger.JobKey(key), logger.JobID(e.id))
}

// Wait blocks until the job currently running under key completes, however
// it completes. It returns immediately when there is none, and ctx.Err() if
// ctx is done first.
func (m *Manager) Wait(ctx context.Context, key any) error {
	m.mu.Lock()
	e, ok := m.active[key]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active reports whether a job is running under key.
func (m *Manager) Active(key any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.active[key]
	return ok && !e.complete()
}

// Len returns the number of registered jobs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Context returns the manager domain.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Close cancels the manager domain and with it every job. Futures requested
// after Close complete with context.Canceled.
func (m *Manager) Close() {
	m.close()
}

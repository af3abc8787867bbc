package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/statekit/pkg/jobs"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Token identifies a registered scope.
type Token = uuid.UUID

// Scope is a cancellable lifetime, e.g. of a screen or a request session.
// Work bound to the scope stops when it is unregistered.
type Scope struct {
	token  Token
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	jobsOnce sync.Once
	jobs     *jobs.Manager
}

// Token returns the scope's registry token.
func (s *Scope) Token() Token { return s.token }

// Context is done once the scope is unregistered.
func (s *Scope) Context() context.Context { return s.ctx }

// Done is a shorthand for Context().Done().
func (s *Scope) Done() <-chan struct{} { return s.ctx.Done() }

// Jobs returns the job manager bound to the scope, created on first use.
func (s *Scope) Jobs() *jobs.Manager {
	s.jobsOnce.Do(func() {
		s.jobs = jobs.NewManager(s.ctx, jobs.WithLogger(s.logger))
	})
	return s.jobs
}

// Registry tracks live scopes by token. A scope is removed by Unregister or
// as soon as the parent context it was registered with is done.
type Registry struct {
	logger *slog.Logger

	mu     sync.Mutex
	scopes map[Token]*Scope
	closed bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for debug events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{scopes: make(map[Token]*Scope)}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logger.OrDefault(r.logger).With(logger.Component("lifecycle"))
	return r
}

// Register creates a scope derived from parent. It returns ErrRegistryClosed
// after Close.
func (r *Registry) Register(parent context.Context) (*Scope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Scope{
		token:  uuid.New(),
		ctx:    ctx,
		cancel: cancel,
		logger: r.logger,
	}
	r.scopes[s.token] = s
	context.AfterFunc(ctx, func() { r.Unregister(s.token) })
	r.logger.Debug("scope registered", logger.Token(s.token))
	return s, nil
}

// Lookup returns the live scope registered under token.
func (r *Registry) Lookup(token Token) (*Scope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.scopes[token]
	if !ok {
		return nil, ErrScopeNotFound
	}
	return s, nil
}

// Unregister cancels and removes the scope. Unknown tokens are ignored.
func (r *Registry) Unregister(token Token) {
	r.mu.Lock()
	s, ok := r.scopes[token]
	delete(r.scopes, token)
	r.mu.Unlock()

	if ok {
		s.cancel()
		r.logger.Debug("scope unregistered", logger.Token(token))
	}
}

// Len returns the number of live scopes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes)
}

// Close cancels every scope and rejects further registrations.
func (r *Registry) Close() {
	r.mu.Lock()
	scopes := r.scopes
	r.scopes = make(map[Token]*Scope)
	r.closed = true
	r.mu.Unlock()

	for _, s := range scopes {
		s.cancel()
	}
}

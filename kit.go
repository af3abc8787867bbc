package statekit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/asyncstate"
	"github.com/dmitrymomot/statekit/pkg/config"
	"github.com/dmitrymomot/statekit/pkg/errmsg"
	"github.com/dmitrymomot/statekit/pkg/filecache"
	"github.com/dmitrymomot/statekit/pkg/jobs"
	"github.com/dmitrymomot/statekit/pkg/lifecycle"
	"github.com/dmitrymomot/statekit/pkg/logger"
	"github.com/dmitrymomot/statekit/pkg/statesse"
)

// Kit carries the configured collaborators shared by an application.
type Kit struct {
	cfg        config.Config
	logger     *slog.Logger
	normalizer *errmsg.Normalizer
	scopes     *lifecycle.Registry

	mu      sync.Mutex
	closers []func() error
}

// Option configures a Kit.
type Option func(*Kit)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kit) { k.logger = l }
}

// New builds a Kit from cfg. The configuration is validated first.
func New(cfg config.Config, opts ...Option) (*Kit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := &Kit{cfg: cfg}
	for _, opt := range opts {
		opt(k)
	}

	if k.logger == nil {
		l, err := newLogger(cfg)
		if err != nil {
			return nil, err
		}
		k.logger = l
	}

	k.normalizer = errmsg.NewNormalizer(errmsg.WithDetails(cfg.ShowErrorDetails))
	k.scopes = lifecycle.NewRegistry(lifecycle.WithLogger(k.logger))
	return k, nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	format := logger.Format(cfg.LogFormat)
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, fmt.Errorf("%w: unknown LOG_FORMAT %q", config.ErrInvalidConfig, cfg.LogFormat)
	}
	return logger.New(logger.WithLevel(level), logger.WithFormat(format)), nil
}

func (k *Kit) Config() config.Config          { return k.cfg }
func (k *Kit) Logger() *slog.Logger           { return k.logger }
func (k *Kit) Normalizer() *errmsg.Normalizer { return k.normalizer }

// Scopes returns the shared lifecycle registry.
func (k *Kit) Scopes() *lifecycle.Registry { return k.scopes }

// ProducerOptions returns the state producer options derived from the
// configuration, followed by extra.
func (k *Kit) ProducerOptions(extra ...asyncstate.Option) []asyncstate.Option {
	opts := []asyncstate.Option{
		asyncstate.WithDebounce(k.cfg.ProgressDebounce),
		asyncstate.WithLogger(k.logger),
	}
	return append(opts, extra...)
}

// RetryPolicy retries failed streams after the configured delay.
func (k *Kit) RetryPolicy() asyncstate.ErrorPolicy {
	return asyncstate.Retry(k.cfg.RetryDelay)
}

// NewManager creates a job manager bound to ctx.
func (k *Kit) NewManager(ctx context.Context) *jobs.Manager {
	return jobs.NewManager(ctx, jobs.WithLogger(k.logger))
}

// NewRefresher creates a refresher bound to ctx. Auto-refresh is enabled
// when the configured interval is positive.
func (k *Kit) NewRefresher(ctx context.Context, action func(context.Context) error) *jobs.Refresher {
	r := jobs.NewRefresher(ctx, action, jobs.WithLogger(k.logger))
	if k.cfg.RefreshInterval > 0 {
		r.AutoRefresh(k.cfg.RefreshInterval)
	}
	return r
}

// StreamOptions returns the SSE options sharing the kit normalizer and logger.
func (k *Kit) StreamOptions(extra ...statesse.Option) []statesse.Option {
	opts := []statesse.Option{
		statesse.WithNormalizer(k.normalizer),
		statesse.WithLogger(k.logger),
	}
	return append(opts, extra...)
}

// OpenStorage opens the cache storage selected by the configured backend.
// Connections opened here are released by Close.
func (k *Kit) OpenStorage(ctx context.Context) (filecache.Storage, error) {
	c := k.cfg.Cache
	switch c.Backend {
	case "s3":
		s, err := filecache.NewS3Storage(ctx, c.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		client, err := filecache.ConnectRedis(ctx, c.Redis)
		if err != nil {
			return nil, err
		}
		k.onClose(client.Close)
		s, err := filecache.NewRedisStorage(client,
			filecache.WithKeyPrefix(c.KeyPrefix),
			filecache.WithTTL(c.TTL),
		)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := filecache.NewLocalStorage(c.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// CacheProvider opens the configured storage and wraps it in a provider.
func (k *Kit) CacheProvider(ctx context.Context, opts ...filecache.ProviderOption) (*filecache.Provider, error) {
	storage, err := k.OpenStorage(ctx)
	if err != nil {
		return nil, err
	}
	opts = append([]filecache.ProviderOption{filecache.WithLogger(k.logger)}, opts...)
	return filecache.NewProvider(storage, opts...), nil
}

func (k *Kit) onClose(fn func() error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closers = append(k.closers, fn)
}

// Close tears down every registered scope and releases opened connections.
func (k *Kit) Close() error {
	k.scopes.Close()

	k.mu.Lock()
	closers := k.closers
	k.closers = nil
	k.mu.Unlock()

	var firstErr error
	for _, fn := range closers {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Bounded runs fn through async.WithTimeBounds with the configured bounds.
func Bounded[T any](ctx context.Context, k *Kit, fn func(context.Context) (T, error)) (T, error) {
	return async.WithTimeBounds(ctx, k.cfg.MinBound, k.cfg.MaxBound, fn)
}

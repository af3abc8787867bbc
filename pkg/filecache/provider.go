package filecache

import (
	"log/slog"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Provider hands out typed caches that share a storage and codec.
type Provider struct {
	storage Storage
	codec   Codec
	logger  *slog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithCodec sets the codec used by every cache. Default is JSONCodec.
func WithCodec(c Codec) ProviderOption {
	return func(p *Provider) {
		if c != nil {
			p.codec = c
		}
	}
}

// WithLogger sets the logger for lookup failures.
func WithLogger(l *slog.Logger) ProviderOption {
	return func(p *Provider) { p.logger = l }
}

// NewProvider creates a provider backed by storage.
func NewProvider(storage Storage, opts ...ProviderOption) *Provider {
	p := &Provider{storage: storage, codec: JSONCodec{}}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logger.OrDefault(p.logger).With(logger.Component("filecache"))
	return p
}

// Storage returns the underlying storage.
func (p *Provider) Storage() Storage {
	return p.storage
}

// For returns the cache for name. Names may contain slashes to group related
// caches, e.g. "users/42/profile".
func For[T any](p *Provider, name string) (*Cache[T], error) {
	return NewCache[T](p.storage, p.codec, name, p.logger)
}

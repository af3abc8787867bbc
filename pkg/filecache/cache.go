package filecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Cache stores a single value of type T under a fixed key.
type Cache[T any] struct {
	storage Storage
	codec   Codec
	key     string
	logger  *slog.Logger
}

// NewCache creates a cache for key in storage. The codec extension is
// appended to key.
func NewCache[T any](storage Storage, codec Codec, key string, log *slog.Logger) (*Cache[T], error) {
	if storage == nil || codec == nil {
		return nil, fmt.Errorf("%w: storage and codec are required", ErrInvalidConfig)
	}
	full, err := cleanKey(key + codec.Ext())
	if err != nil {
		return nil, err
	}
	return &Cache[T]{
		storage: storage,
		codec:   codec,
		key:     full,
		logger:  logger.OrDefault(log).With(slog.String("cache_key", full)),
	}, nil
}

// Key returns the storage key including the codec extension.
func (c *Cache[T]) Key() string {
	return c.key
}

// Set encodes value and writes it to storage.
func (c *Cache[T]) Set(ctx context.Context, value T) error {
	data, err := c.codec.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	return c.storage.Write(ctx, c.key, data)
}

// Get reads and decodes the cached value. A missing value returns
// ErrCacheMiss, undecodable bytes return ErrDecode.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	var value T
	data, err := c.storage.Read(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return value, ErrCacheMiss
	}
	if err != nil {
		return value, err
	}
	if err := c.codec.Unmarshal(data, &value); err != nil {
		return value, errors.Join(ErrDecode, err)
	}
	return value, nil
}

// Lookup is Get without errors: any failure is logged and reported as a miss.
func (c *Cache[T]) Lookup(ctx context.Context) (T, bool) {
	value, err := c.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.DebugContext(ctx, "cache lookup failed", logger.Error(err))
		}
		var zero T
		return zero, false
	}
	return value, true
}

func (c *Cache[T]) Exists(ctx context.Context) (bool, error) {
	return c.storage.Exists(ctx, c.key)
}

// Clear removes the cached value. Clearing an empty cache succeeds.
func (c *Cache[T]) Clear(ctx context.Context) error {
	return c.storage.Delete(ctx, c.key)
}

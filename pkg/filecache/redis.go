package filecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage stores objects as Redis strings below a key prefix.
type RedisStorage struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// RedisOption configures RedisStorage.
type RedisOption func(*RedisStorage)

// WithKeyPrefix namespaces every key. Default is "statekit:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStorage) { s.prefix = prefix }
}

// WithTTL expires written values after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStorage) { s.ttl = ttl }
}

// NewRedisStorage creates the storage on top of a connected client.
func NewRedisStorage(client redis.Cmdable, opts ...RedisOption) (*RedisStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil redis client", ErrInvalidConfig)
	}
	s := &RedisStorage{client: client, prefix: "statekit:"}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStorage) key(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return s.prefix + key, nil
}

func (s *RedisStorage) Read(ctx context.Context, key string) ([]byte, error) {
	k, err := s.key(key)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToRead, err)
	}
	return data, nil
}

func (s *RedisStorage) Write(ctx context.Context, key string, data []byte) error {
	k, err := s.key(key)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, k, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToWrite, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	k, err := s.key(key)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToDelete, err)
	}
	return nil
}

func (s *RedisStorage) Exists(ctx context.Context, key string) (bool, error) {
	k, err := s.key(key)
	if err != nil {
		return false, err
	}
	n, err := s.client.Exists(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFailedToStat, err)
	}
	return n > 0, nil
}

// RedisConfig configures ConnectRedis.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis connects to cfg.ConnectionURL, pinging up to RetryAttempts
// times with RetryInterval between attempts.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, fmt.Errorf("%w: empty connection URL", ErrInvalidConfig)
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for attempt := range attempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if attempt == attempts-1 {
			break
		}
		t := time.NewTimer(cfg.RetryInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-t.C:
		}
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

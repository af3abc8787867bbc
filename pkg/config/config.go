package config

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/statekit/pkg/filecache"
)

// DefaultPrefix is prepended to every variable name read by Load.
const DefaultPrefix = "STATEKIT_"

// Config holds the tunables shared by statekit packages.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// ProgressDebounce is the coalescing window for progress reports.
	ProgressDebounce time.Duration `env:"PROGRESS_DEBOUNCE" envDefault:"32ms"`
	// RetryDelay is the pause between re-subscriptions of a retried stream.
	RetryDelay time.Duration `env:"RETRY_DELAY" envDefault:"5s"`

	MinBound time.Duration `env:"TIME_BOUNDS_MIN" envDefault:"125ms"`
	MaxBound time.Duration `env:"TIME_BOUNDS_MAX" envDefault:"1s"`

	// RefreshInterval enables auto-refresh for refreshers built by the kit. Zero disables it.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"0s"`

	// ShowErrorDetails exposes raw error text in normalized messages.
	ShowErrorDetails bool `env:"SHOW_ERROR_DETAILS" envDefault:"false"`

	Cache CacheConfig `envPrefix:"CACHE_"`
}

// CacheConfig configures the value cache storages.
type CacheConfig struct {
	// Backend selects the storage: "local", "s3" or "redis".
	Backend   string        `env:"BACKEND" envDefault:"local"`
	Dir       string        `env:"DIR" envDefault:".statekit/cache"`
	KeyPrefix string        `env:"KEY_PREFIX" envDefault:"statekit:"`
	TTL       time.Duration `env:"TTL" envDefault:"0s"`

	Redis filecache.RedisConfig
	S3    filecache.S3Config `envPrefix:"S3_"`
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.MinBound < 0 || c.MaxBound < 0 {
		return fmt.Errorf("%w: time bounds must not be negative", ErrInvalidConfig)
	}
	if c.MinBound > c.MaxBound {
		return fmt.Errorf("%w: TIME_BOUNDS_MIN (%s) exceeds TIME_BOUNDS_MAX (%s)", ErrInvalidConfig, c.MinBound, c.MaxBound)
	}
	switch c.Cache.Backend {
	case "local", "s3", "redis":
	default:
		return fmt.Errorf("%w: unknown CACHE_BACKEND %q", ErrInvalidConfig, c.Cache.Backend)
	}
	if c.ProgressDebounce < 0 || c.RetryDelay < 0 || c.RefreshInterval < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadOption customises Load and LoadInto.
type LoadOption func(*loadOptions)

type loadOptions struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix overrides DefaultPrefix. An empty prefix reads unprefixed names.
func WithPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvFiles loads the given .env files before parsing. Missing files are
// an error, unlike the implicit ".env" lookup.
func WithEnvFiles(files ...string) LoadOption {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from vars instead of the process environment.
func WithEnvironment(vars map[string]string) LoadOption {
	return func(o *loadOptions) { o.environment = vars }
}

// Load reads Config from the environment and validates it.
//
// Example:
//
//	cfg, err := config.Load(config.WithEnvFiles(".env.local"))
//	if err != nil {
//		return err
//	}
//	kit := statekit.New(cfg)
func Load(opts ...LoadOption) (Config, error) {
	var cfg Config
	if err := LoadInto(&cfg, opts...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure.
func MustLoad(opts ...LoadOption) Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// LoadInto parses the environment into any struct annotated with env tags,
// applying the same prefix and .env handling as Load.
func LoadInto[T any](v *T, opts ...LoadOption) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(o)
	}

	if err := loadEnvFiles(o.files); err != nil {
		return err
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}

	if err := env.ParseWithOptions(v, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		// The default .env file is optional.
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load()
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

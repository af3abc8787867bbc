// Package config loads statekit settings from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files. Unlike a process-wide cache, Load
// returns a value that callers pass to the components needing it, so tests
// can build as many independent configurations as they like.
//
// Every variable is prefixed with DefaultPrefix ("STATEKIT_"):
//
//	STATEKIT_LOG_LEVEL=debug
//	STATEKIT_PROGRESS_DEBOUNCE=50ms
//	STATEKIT_TIME_BOUNDS_MIN=125ms
//	STATEKIT_TIME_BOUNDS_MAX=1s
//	STATEKIT_CACHE_BACKEND=redis
//	STATEKIT_CACHE_REDIS_URL=redis://localhost:6379/0
//
// Application structs can reuse the same mechanics through LoadInto:
//
//	type AppConfig struct {
//		Endpoint string `env:"ENDPOINT,required"`
//	}
//
//	var app AppConfig
//	if err := config.LoadInto(&app, config.WithPrefix("APP_")); err != nil {
//		return err
//	}
package config

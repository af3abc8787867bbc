package asyncstate

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// DefaultDebounce is the quiet period applied to progress reports.
const DefaultDebounce = 32 * time.Millisecond

type options struct {
	debounce time.Duration
	policy   ErrorPolicy
	logger   *slog.Logger
	buffer   int
}

// Option configures a producer.
type Option func(*options)

// WithDebounce sets the debounce window of progress reports. Zero or a
// negative value forwards every distinct report immediately.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithErrorPolicy chooses what FromFlow does when its source fails.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger for debug events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBuffer sets the capacity of the output channel. Default is unbuffered.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.buffer = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		debounce: DefaultDebounce,
		policy:   StopCollection(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logger.OrDefault(o.logger).With(logger.Component("asyncstate"))
	return o
}

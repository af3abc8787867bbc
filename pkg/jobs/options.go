package jobs

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a Manager or a Refresher.
type Option func(*options)

// WithLogger sets the logger for debug events. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

package logger

import (
	"fmt"
	"log/slog"
	"time"
)

// Group creates a slog.Attr group with the given name and attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error returns an attribute for a single error. A nil error yields an empty
// attribute, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the package or subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// JobKey renders a job registry key. Keys can be any comparable value, so
// they are formatted with %v to keep the output stable across handlers.
func JobKey(key any) slog.Attr {
	if key == nil {
		return slog.Attr{}
	}
	if s, ok := key.(fmt.Stringer); ok {
		return slog.String("job_key", s.String())
	}
	return slog.String("job_key", fmt.Sprintf("%v", key))
}

// JobID identifies a single launched job.
func JobID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("job_id", id)
}

// Strategy records the join/replace strategy of a job request.
func Strategy(name string) slog.Attr {
	return slog.String("strategy", name)
}

// Attempt is the 1-indexed retry attempt of a stream producer.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Duration records an elapsed or configured duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Token identifies a lifecycle scope.
func Token(token any) slog.Attr {
	if token == nil {
		return slog.Attr{}
	}
	return slog.Any("token", token)
}

// State records the kind of a state value, e.g. "loading".
func State(kind string) slog.Attr {
	return slog.String("state", kind)
}

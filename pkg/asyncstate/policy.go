package asyncstate

import (
	"time"

	"github.com/dmitrymomot/statekit/pkg/backoff"
)

// DefaultRetryDelay is the delay used by Retry and SilentRetry callers that
// have no better value.
const DefaultRetryDelay = 5 * time.Second

// ErrorPolicy decides how FromFlow reacts to a failing source. The zero
// value is StopCollection.
type ErrorPolicy struct {
	retry  bool
	silent bool
	delay  backoff.Strategy
}

// StopCollection emits the Error and ends the stream.
func StopCollection() ErrorPolicy {
	return ErrorPolicy{}
}

// Retry emits the Error, waits delay, emits Loading and subscribes again,
// until the producer context is cancelled.
func Retry(delay time.Duration) ErrorPolicy {
	return ErrorPolicy{retry: true, delay: backoff.NewConstant(delay)}
}

// SilentRetry is Retry without the Loading emitted before each
// resubscription: observers keep seeing the Error until new data arrives.
func SilentRetry(delay time.Duration) ErrorPolicy {
	return ErrorPolicy{retry: true, silent: true, delay: backoff.NewConstant(delay)}
}

// RetryWithBackoff retries with a per-attempt delay taken from s.
func RetryWithBackoff(s backoff.Strategy, silent bool) ErrorPolicy {
	return ErrorPolicy{retry: true, silent: silent, delay: s}
}

// Retries reports whether the policy resubscribes after a failure.
func (p ErrorPolicy) Retries() bool { return p.retry }

// Silent reports whether resubscriptions skip the Loading state.
func (p ErrorPolicy) Silent() bool { return p.silent }

func (p ErrorPolicy) delayFor(attempt int) time.Duration {
	if p.delay == nil {
		return 0
	}
	return p.delay.Delay(attempt)
}

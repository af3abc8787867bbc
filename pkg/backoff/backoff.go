package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy computes the delay before a retry attempt.
type Strategy interface {
	// Delay returns how long to wait before retry attempt n (1-indexed).
	Delay(attempt int) time.Duration
}

// Constant always returns the same delay.
type Constant struct {
	Interval time.Duration
}

func NewConstant(interval time.Duration) *Constant {
	return &Constant{Interval: interval}
}

func (c *Constant) Delay(int) time.Duration {
	return c.Interval
}

// Exponential doubles the delay on every attempt.
// Delay = min(Initial * 2^(attempt-1), Max); Max <= 0 means uncapped.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
}

func NewExponential(initial, maxDelay time.Duration) *Exponential {
	return &Exponential{Initial: initial, Max: maxDelay}
}

func (e *Exponential) Delay(attempt int) time.Duration {
	return capped(exponential(e.Initial, attempt), e.Max)
}

// ExponentialWithJitter picks a random delay in [0, Exponential.Delay(n)].
type ExponentialWithJitter struct {
	Initial time.Duration
	Max     time.Duration
}

func NewExponentialWithJitter(initial, maxDelay time.Duration) *ExponentialWithJitter {
	return &ExponentialWithJitter{Initial: initial, Max: maxDelay}
}

func (e *ExponentialWithJitter) Delay(attempt int) time.Duration {
	base := capped(exponential(e.Initial, attempt), e.Max)
	return time.Duration(rand.Float64() * float64(base)) //nolint:gosec // jitter does not need crypto rand
}

func exponential(initial time.Duration, attempt int) float64 {
	if attempt < 1 {
		attempt = 1
	}
	return float64(initial) * math.Pow(2, float64(attempt-1))
}

func capped(d float64, maxDelay time.Duration) time.Duration {
	if maxDelay > 0 && d > float64(maxDelay) {
		return maxDelay
	}
	if d > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

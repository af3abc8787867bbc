package asyncstate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/errmsg"
)

// Unit is the payload of states that carry no data.
type Unit = async.Unit

// Kind selects the variant of a State.
type Kind uint8

const (
	KindIdle    Kind = iota // nothing requested yet
	KindLoading             // in flight, optionally with progress
	KindSuccess             // finished with data
	KindError               // finished with an error
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// State is the lifecycle of one asynchronous operation producing a T.
// The zero value is Idle. States are values: every helper returns a new one,
// and two states of a comparable T can be compared with ==.
type State[T any] struct {
	kind        Kind
	determinate bool
	progress    float64
	data        T
	err         error
}

// Idle is the state before anything was requested.
func Idle[T any]() State[T] {
	return State[T]{kind: KindIdle}
}

// Loading is an in-flight operation without a progress value.
func Loading[T any]() State[T] {
	return State[T]{kind: KindLoading}
}

// LoadingProgress is an in-flight operation with determinate progress.
// p is clamped to [0, 1]; NaN yields indeterminate Loading.
func LoadingProgress[T any](p float64) State[T] {
	if math.IsNaN(p) {
		return Loading[T]()
	}
	return State[T]{kind: KindLoading, determinate: true, progress: min(max(p, 0), 1)}
}

// Success is the terminal state carrying the produced value.
func Success[T any](data T) State[T] {
	return State[T]{kind: KindSuccess, data: data}
}

// Error is the terminal failure state.
//
// Error panics if err is nil or a context cancellation: cancellation ends a
// stream, it is never a failure value.
func Error[T any](err error) State[T] {
	if err == nil {
		panic("asyncstate: Error called with a nil error")
	}
	if errors.Is(err, context.Canceled) {
		panic(fmt.Sprintf("asyncstate: cancellation is not an error state: %v", err))
	}
	return State[T]{kind: KindError, err: err}
}

// Of is Success under the name used at call sites that lift plain values.
func Of[T any](data T) State[T] {
	return Success(data)
}

// Failed is Error under the name used at call sites that lift plain errors.
func Failed[T any](err error) State[T] {
	return Error[T](err)
}

// Presentable is an Error carrying a user-facing message.
func Presentable[T any](title, body string, retryable bool) State[T] {
	return Error[T](errmsg.New(title, body, errmsg.WithRetryable(retryable)))
}

// Kind returns the variant of s.
func (s State[T]) Kind() Kind { return s.kind }

func (s State[T]) IsIdle() bool    { return s.kind == KindIdle }
func (s State[T]) IsLoading() bool { return s.kind == KindLoading }
func (s State[T]) IsSuccess() bool { return s.kind == KindSuccess }
func (s State[T]) IsError() bool   { return s.kind == KindError }

// IsTerminal reports Success or Error.
func (s State[T]) IsTerminal() bool {
	return s.kind == KindSuccess || s.kind == KindError
}

// Progress returns the determinate progress of a Loading state.
func (s State[T]) Progress() (float64, bool) {
	if s.kind != KindLoading || !s.determinate {
		return 0, false
	}
	return s.progress, true
}

// Value returns the data of a Success state.
func (s State[T]) Value() (T, bool) {
	if s.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Get returns the data of a Success state, the error of an Error state, or
// ErrNotTerminal for Idle and Loading.
func (s State[T]) Get() (T, error) {
	var zero T
	switch s.kind {
	case KindSuccess:
		return s.data, nil
	case KindError:
		return zero, s.err
	case KindIdle, KindLoading:
		return zero, fmt.Errorf("%w: %s", ErrNotTerminal, s.kind)
	default:
		panic(unknownKind(s.kind))
	}
}

// Err returns the error of an Error state, nil otherwise.
func (s State[T]) Err() error {
	if s.kind != KindError {
		return nil
	}
	return s.err
}

// OnIdle calls fn if s is Idle and returns s, so calls can be chained.
func (s State[T]) OnIdle(fn func()) State[T] {
	if s.kind == KindIdle {
		fn()
	}
	return s
}

// OnLoading calls fn with the progress of a Loading state; ok is false for
// indeterminate progress.
func (s State[T]) OnLoading(fn func(progress float64, ok bool)) State[T] {
	if s.kind == KindLoading {
		fn(s.Progress())
	}
	return s
}

// OnSuccess calls fn with the data of a Success state.
func (s State[T]) OnSuccess(fn func(T)) State[T] {
	if s.kind == KindSuccess {
		fn(s.data)
	}
	return s
}

// OnError calls fn with the error of an Error state.
func (s State[T]) OnError(fn func(error)) State[T] {
	if s.kind == KindError {
		fn(s.err)
	}
	return s
}

func (s State[T]) String() string {
	switch s.kind {
	case KindIdle:
		return "Idle"
	case KindLoading:
		if s.determinate {
			return fmt.Sprintf("Loading(%.2f)", s.progress)
		}
		return "Loading"
	case KindSuccess:
		return fmt.Sprintf("Success(%v)", s.data)
	case KindError:
		return fmt.Sprintf("Error(%v)", s.err)
	default:
		return unknownKind(s.kind)
	}
}

// Match folds s into an R. All four handlers are required.
func Match[T, R any](
	s State[T],
	onIdle func() R,
	onLoading func(progress float64, ok bool) R,
	onSuccess func(T) R,
	onError func(error) R,
) R {
	switch s.kind {
	case KindIdle:
		return onIdle()
	case KindLoading:
		return onLoading(s.Progress())
	case KindSuccess:
		return onSuccess(s.data)
	case KindError:
		return onError(s.err)
	default:
		panic(unknownKind(s.kind))
	}
}

// Map transforms the data of a Success state. Other variants keep their
// payload.
func Map[T, U any](s State[T], fn func(T) U) State[U] {
	switch s.kind {
	case KindIdle:
		return Idle[U]()
	case KindLoading:
		return State[U]{kind: KindLoading, determinate: s.determinate, progress: s.progress}
	case KindSuccess:
		return Success(fn(s.data))
	case KindError:
		return State[U]{kind: KindError, err: s.err}
	default:
		panic(unknownKind(s.kind))
	}
}

// AsUnit drops the data of s.
func AsUnit[T any](s State[T]) State[Unit] {
	return Map(s, func(T) Unit { return Unit{} })
}

// NilAsError turns Success(nil) into Error(ErrNilData).
func NilAsError[T any](s State[*T]) State[*T] {
	if s.kind == KindSuccess && s.data == nil {
		return Error[*T](ErrNilData)
	}
	return s
}

// NilAsIdle turns Success(nil) into Idle.
func NilAsIdle[T any](s State[*T]) State[*T] {
	if s.kind == KindSuccess && s.data == nil {
		return Idle[*T]()
	}
	return s
}

func unknownKind(k Kind) string {
	return fmt.Sprintf("asyncstate: unknown state kind %d", uint8(k))
}

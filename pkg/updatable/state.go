package updatable

import (
	"fmt"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
)

// Unit is the payload of the activity state.
type Unit = asyncstate.Unit

// State is last-known data plus the activity of the operation refreshing
// it. The zero value is Empty with Idle activity.
type State[T any] struct {
	has      bool
	data     T
	activity asyncstate.State[Unit]
}

// Empty is a state without data and with Idle activity.
func Empty[T any]() State[T] {
	return State[T]{}
}

// Data is a state holding v with Idle activity.
func Data[T any](v T) State[T] {
	return State[T]{has: true, data: v}
}

// Initial returns Data(v) when ok is set and Empty otherwise.
func Initial[T any](v T, ok bool) State[T] {
	if ok {
		return Data(v)
	}
	return Empty[T]()
}

// WithActivity returns s with the given activity. A Success activity is
// stored as Idle: completion is represented by the data itself.
func (s State[T]) WithActivity(a asyncstate.State[Unit]) State[T] {
	if a.IsSuccess() {
		a = asyncstate.Idle[Unit]()
	}
	s.activity = a
	return s
}

// Activity is the state of the latest operation: Idle, Loading or Error.
func (s State[T]) Activity() asyncstate.State[Unit] {
	return s.activity
}

func (s State[T]) HasData() bool { return s.has }
func (s State[T]) IsEmpty() bool { return !s.has }

// Value returns the data, if any.
func (s State[T]) Value() (T, bool) {
	return s.data, s.has
}

// Update folds an incoming operation state into s. Idle, Loading and Error
// only replace the activity and keep any data; Success replaces the data
// and resets the activity to Idle. Data is never lost by an update.
func (s State[T]) Update(incoming asyncstate.State[T]) State[T] {
	if v, ok := incoming.Value(); ok {
		return Data(v)
	}
	return s.WithActivity(asyncstate.AsUnit(incoming))
}

// OnEmpty calls fn when s has no data.
func (s State[T]) OnEmpty(fn func()) State[T] {
	if !s.has {
		fn()
	}
	return s
}

// OnData calls fn with the data.
func (s State[T]) OnData(fn func(T)) State[T] {
	if s.has {
		fn(s.data)
	}
	return s
}

// OrDefault returns s if it has data, otherwise Data(v) with s's activity.
func (s State[T]) OrDefault(v T) State[T] {
	if s.has {
		return s
	}
	return Data(v).WithActivity(s.activity)
}

func (s State[T]) String() string {
	if s.has {
		return fmt.Sprintf("Data(%v, %s)", s.data, s.activity)
	}
	return fmt.Sprintf("Empty(%s)", s.activity)
}

// Map transforms the data, keeping the activity.
func Map[T, U any](s State[T], fn func(T) U) State[U] {
	if !s.has {
		return State[U]{activity: s.activity}
	}
	return State[U]{has: true, data: fn(s.data), activity: s.activity}
}

// Package observable holds a value with a single writer and many readers.
//
// New returns the Owner, which is the only handle able to change the value.
// Components expose the read-only Value to the outside:
//
//	type ProfileStore struct {
//	    state *observable.Owner[updatable.State[Profile]]
//	}
//
//	func (s *ProfileStore) State() *observable.Value[updatable.State[Profile]] {
//	    return s.state.Value()
//	}
//
// Subscribers receive the current value first and the latest value after
// each change.
package observable

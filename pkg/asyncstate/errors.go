package asyncstate

import "errors"

var (
	// ErrNotTerminal is returned by Get on Idle and Loading states.
	ErrNotTerminal = errors.New("asyncstate: state is not terminal")
	// ErrNilData replaces an absent Success payload.
	ErrNilData = errors.New("asyncstate: success without data")
	// ErrEmptyStream is returned by Last when the stream closed without states.
	ErrEmptyStream = errors.New("asyncstate: stream closed without states")
)

package errmsg

import "errors"

// PresentableError is an error that already carries the message a user
// should see.
type PresentableError struct {
	msg   Message
	cause error
}

// Option configures a PresentableError.
type Option func(*PresentableError)

// WithRetryable marks whether the user may retry the failed operation.
// Presentable errors are retryable by default.
func WithRetryable(retryable bool) Option {
	return func(e *PresentableError) { e.msg.Retryable = retryable }
}

// WithCause attaches the underlying error, reachable through errors.Unwrap.
func WithCause(err error) Option {
	return func(e *PresentableError) { e.cause = err }
}

// New creates a presentable error.
//
//	return errmsg.New("Sync failed", "Check your connection and try again.",
//	    errmsg.WithCause(err))
func New(title, body string, opts ...Option) *PresentableError {
	e := &PresentableError{
		msg: Message{
			Title:     title,
			Body:      body,
			Retryable: true,
			source:    title,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *PresentableError) Error() string {
	if e.msg.Body == "" {
		return e.msg.Title
	}
	return e.msg.Title + ": " + e.msg.Body
}

func (e *PresentableError) Unwrap() error {
	return e.cause
}

// Message returns the user-facing message.
func (e *PresentableError) Message() Message {
	return e.msg
}

// Retryable reports the retry flag.
func (e *PresentableError) Retryable() bool {
	return e.msg.Retryable
}

// IsRetryable reports whether err may be retried by the user: the flag of a
// PresentableError found in the chain, true for any other error, false for nil.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var pe *PresentableError
	if errors.As(err, &pe) {
		return pe.msg.Retryable
	}
	return true
}

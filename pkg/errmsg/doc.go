// Package errmsg normalizes errors into user-facing messages.
//
// A PresentableError carries its own title, body and retry flag; any other
// error is mapped by a Normalizer to either a generic fallback or, when
// details are enabled, a message derived from the error type and text:
//
//	n := errmsg.NewNormalizer(errmsg.WithDetails(cfg.ShowErrorDetails))
//	msg := n.Normalize(err)
//	render(msg.Title, msg.Body, msg.Retryable, msg.ID())
//
// The retry flag travels with the error value; consumers of asyncstate.State
// use it to decide whether to offer a retry action.
package errmsg

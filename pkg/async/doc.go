// Package async provides cancellable futures and timing helpers for running
// computations asynchronously.
//
// A Future represents the eventual result of a function started by Go.
// Each future runs under its own child context: Cancel, or cancellation of
// the parent context, completes the future with the context error right away, so a caller never observes a success value from a
// cancelled future even when the function ignores its context.
//
//	f := async.Go(ctx, func(ctx context.Context) (string, error) {
//	    return fetch(ctx)
//	})
//
//	// do other work …
//	res, err := f.AwaitContext(ctx)
//
// Await blocks until completion. AwaitContext stops waiting when the
// caller's context ends, while the future keeps running for other waiters.
// IsComplete and Done allow polling and select.
//
// WithTimeBounds shapes the duration of an operation for UI purposes: fast
// results are held back until the upper bound so that loading indicators do
// not flicker.
package async

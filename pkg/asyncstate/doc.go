// Package asyncstate models the lifecycle of an asynchronous operation as a
// value and turns computations into streams of such values.
//
// A State[T] is one of Idle, Loading (optionally with progress in [0, 1]),
// Success(T) or Error(error). Success and Error are terminal. Cancellation
// is not a state: producers close their channel instead, and Error panics
// when handed a context.Canceled.
//
// # Producers
//
// Producers return a receive-only channel that is closed when the sequence
// ends or when the context passed to them is cancelled:
//
//	states := asyncstate.FromSuspending(ctx, func(ctx context.Context, p *asyncstate.Progress) (Report, error) {
//	    p.Emit(0.25)
//	    rows, err := load(ctx)
//	    if err != nil {
//	        return Report{}, err
//	    }
//	    p.Emit(0.75)
//	    return build(rows), nil
//	})
//	for s := range states {
//	    render(s)
//	}
//
// FromFlow wraps a re-subscribable Source and applies an ErrorPolicy
// (StopCollection, Retry, SilentRetry, RetryWithBackoff) on failure.
// FromFuture awaits an async.Future.
//
// # Matching
//
// Match requires a handler per variant:
//
//	label := asyncstate.Match(s,
//	    func() string { return "" },
//	    func(p float64, ok bool) string { return "loading" },
//	    func(r Report) string { return r.Title },
//	    func(err error) string { return err.Error() },
//	)
package asyncstate

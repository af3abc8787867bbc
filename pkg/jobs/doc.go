// Package jobs coordinates concurrent requests for the same work.
//
// A Manager keeps at most one running job per key. A request either joins
// the running job (Join) or cancels it and starts a new one (Replace):
//
//	m := jobs.NewManager(ctx)
//	f := jobs.Join(m, "profile", func(ctx context.Context) (Profile, error) {
//	    return api.Profile(ctx)
//	})
//	p, err := f.AwaitContext(ctx)
//
// Jobs run under the manager's context, not the requester's; a requester
// giving up on a future does not stop the job for others. Joining a key
// whose job produces another type is a programming error and panics.
//
// A Refresher builds on a private Manager to serialize refreshes of one
// resource and to repeat them on an interval. RefreshAfter runs a mutation
// as part of the next refresh so that the refreshed data includes it.
package jobs

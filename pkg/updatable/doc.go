// Package updatable keeps the last known data of a resource next to the
// activity of the operation refreshing it, so that a failed refresh does
// not hide data that was already loaded.
//
//	states := updatable.FromSuspending(ctx, updatable.Empty[Profile](), loadProfile)
//	for s := range states {
//	    s.OnData(showProfile)
//	    s.Activity().OnError(showBanner)
//	}
package updatable

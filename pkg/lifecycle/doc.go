// Package lifecycle binds work to explicit lifetimes.
//
// A Registry hands out Scopes identified by a Token. Scopes carry a context
// and a lazily created jobs.Manager; unregistering the token cancels both:
//
//	scope, err := registry.Register(ctx)
//	if err != nil {
//	    return err
//	}
//	defer registry.Unregister(scope.Token())
//
//	jobs.Join(scope.Jobs(), "load", load)
package lifecycle

package observable

import (
	"context"
	"sync"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
	"github.com/dmitrymomot/statekit/pkg/broadcast"
)

// Owner is the write capability of an observable value. Only code holding
// the Owner can change the value; everybody else gets the read-only Value.
type Owner[T any] struct {
	mu    sync.Mutex
	value T
	feed  *broadcast.MemoryBroadcaster[T]
	view  *Value[T]
}

// Value is the read-only view of an Owner.
type Value[T any] struct {
	owner *Owner[T]
}

// New creates an observable value holding initial.
func New[T any](initial T) *Owner[T] {
	o := &Owner[T]{
		value: initial,
		feed:  broadcast.NewMemoryBroadcaster(broadcast.WithInitial(initial)),
	}
	o.view = &Value[T]{owner: o}
	return o
}

// Set replaces the value and notifies subscribers.
func (o *Owner[T]) Set(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.set(v)
}

// Update replaces the value with fn(current) and returns it. fn runs under
// the owner's lock and must not call back into the Owner.
func (o *Owner[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	defer o.mu.Unlock()
	v := fn(o.value)
	o.set(v)
	return v
}

func (o *Owner[T]) set(v T) {
	o.value = v
	// Broadcast only fails once the owner is closed.
	_ = o.feed.Broadcast(context.Background(), broadcast.Message[T]{Data: v})
}

// Get returns the current value.
func (o *Owner[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Value returns the read-only view.
func (o *Owner[T]) Value() *Value[T] {
	return o.view
}

// Close ends all subscriptions. Later Sets change the value but notify
// nobody.
func (o *Owner[T]) Close() {
	_ = o.feed.Close()
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.owner.Get()
}

// Subscribe returns a channel that receives the current value and then
// every change. A slow reader skips intermediate values but always ends up
// with the latest one. The channel is closed when ctx is done or the owner
// is closed.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	sub := v.owner.feed.Subscribe(ctx)
	out := make(chan T)

	go func() {
		defer close(out)
		defer sub.Close()

		for msg := range sub.Receive(ctx) {
			select {
			case out <- msg.Data:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Source adapts the value for asyncstate.FromFlow: every subscription
// starts with the current value.
func (v *Value[T]) Source() asyncstate.Source[T] {
	return asyncstate.FromSubscribe(v.Subscribe)
}

// Pipe sets owner to every value read from in. It returns nil when in is
// closed and ctx.Err() when ctx is done first.
func Pipe[T any](ctx context.Context, in <-chan T, owner *Owner[T]) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-in:
			if !ok {
				return nil
			}
			owner.Set(v)
		}
	}
}

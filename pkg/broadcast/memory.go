package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster delivers the latest message to every subscriber without
// blocking: a subscriber that falls behind skips intermediate messages but
// always receives the most recent one. All methods are safe for concurrent
// use.
type MemoryBroadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	replay      bool
	last        Message[T]
	hasLast     bool
	seq         uint64
	closed      bool
	mu          sync.Mutex
}

// Option configures a MemoryBroadcaster.
type Option[T any] func(*MemoryBroadcaster[T])

// WithReplay makes new subscribers receive the last broadcast message first.
func WithReplay[T any]() Option[T] {
	return func(b *MemoryBroadcaster[T]) { b.replay = true }
}

// WithInitial sets the message replayed before the first broadcast. It
// implies WithReplay.
func WithInitial[T any](data T) Option[T] {
	return func(b *MemoryBroadcaster[T]) {
		b.replay = true
		b.last = Message[T]{Data: data}
		b.hasLast = true
	}
}

// NewMemoryBroadcaster creates a new in-memory broadcaster.
func NewMemoryBroadcaster[T any](opts ...Option[T]) *MemoryBroadcaster[T] {
	b := &MemoryBroadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe creates a new subscriber. The subscription ends when ctx is
// done. If the broadcaster is already closed, it returns a closed
// subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T]()
	if b.closed {
		_ = sub.Close()
		return sub
	}

	if b.replay && b.hasLast {
		sub.send(b.last)
	}
	b.subscribers[sub] = struct{}{}
	sub.stop = context.AfterFunc(ctx, func() { b.unsubscribe(sub) })

	return sub
}

// Broadcast delivers msg to all active subscribers. Seq is assigned by the
// broadcaster. It returns ErrClosed after Close.
func (b *MemoryBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	b.seq++
	msg.Seq = b.seq
	b.last, b.hasLast = msg, true

	for sub := range b.subscribers {
		if !sub.send(msg) {
			delete(b.subscribers, sub)
		}
	}
	return nil
}

// Last returns the most recent message, if any was broadcast or set with
// WithInitial.
func (b *MemoryBroadcaster[T]) Last() (Message[T], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.hasLast
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscribers.
// It is safe to call Close multiple times.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for sub := range b.subscribers {
		_ = sub.Close()
	}
	clear(b.subscribers)
	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	delete(b.subscribers, sub)
	b.mu.Unlock()

	_ = sub.Close()
}

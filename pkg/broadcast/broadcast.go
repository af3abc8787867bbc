package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T. Seq increases with every broadcast, so
// receivers can tell how many values were conflated away.
type Message[T any] struct {
	Data T
	Seq  uint64
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel of broadcast messages. It is closed when
	// the subscriber or the broadcaster is closed, or when the subscription
	// context is done.
	Receive(ctx context.Context) <-chan Message[T]

	// Close closes the subscriber. Close is idempotent.
	Close() error
}

// Broadcaster sends messages to multiple subscribers.
// Implementations never block on slow consumers.
type Broadcaster[T any] interface {
	// Subscribe creates a subscriber bound to ctx.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to all active subscribers.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close shuts down the broadcaster and closes all subscribers.
	Close() error
}

// subscriber holds at most one undelivered message: a newer message
// replaces an unread one.
type subscriber[T any] struct {
	ch     chan Message[T]
	closed bool
	stop   func() bool
	mu     sync.Mutex
}

func newSubscriber[T any]() *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], 1)}
}

func (s *subscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
		if s.stop != nil {
			s.stop()
		}
	}
	return nil
}

// send reports whether msg was queued. An unread message is dropped in
// favour of msg.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
	}

	select {
	case <-s.ch:
	default:
	}
	s.ch <- msg
	return true
}

// Package broadcast provides type-safe, latest-value broadcasting.
//
// Subscribers of a MemoryBroadcaster hold at most one pending message: a
// slow subscriber skips stale messages instead of blocking the broadcaster
// or being dropped. With WithReplay or WithInitial, a new subscriber first
// receives the current message, which makes the broadcaster suitable as the
// change feed of a state holder.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster(broadcast.WithInitial("idle"))
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "loading"})
//
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Seq, msg.Data)
//	}
//
// Subscriptions end when their context is done, when Close is called on the
// subscriber, or when the broadcaster is closed.
package broadcast

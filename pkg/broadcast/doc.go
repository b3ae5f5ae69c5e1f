// Package broadcast provides type-safe one-to-many message fan-out.
//
// MemoryBroadcaster never blocks a publisher on a consumer: each subscriber
// gets a buffered channel, and a subscriber whose buffer is full when a
// message arrives is dropped and its channel closed. Consumers detect the
// closed channel and resubscribe if they care.
//
//	b := broadcast.NewMemoryBroadcaster[string](16)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	b.Broadcast(broadcast.Message[string]{Data: "hello"})
//
//	for msg := range sub.Receive() {
//		fmt.Println(msg.Data)
//	}
//
// Subscriptions end when their context is cancelled, when Close is called on
// the subscriber or when the broadcaster is closed.
package broadcast

package broadcast

import (
	"context"
	"sync"
)

// Message wraps a broadcast value.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed once the subscriber
	// is closed, dropped as too slow or its broadcaster shuts down.
	Receive() <-chan Message[T]

	// Close releases the subscription. Safe to call more than once.
	Close() error
}

// Broadcaster fans messages out to every live subscriber without blocking on
// any of them.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber that lives until ctx is done.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to all subscribers. Subscribers whose buffer is
	// full are dropped.
	Broadcast(msg Message[T])

	// Len returns the number of live subscribers.
	Len() int

	// Close closes every subscriber. Later subscriptions are returned closed.
	Close() error
}

type subscriber[T any] struct {
	ch     chan Message[T]
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](size int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], size)}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

// send reports false when the subscriber is closed or its buffer is full.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

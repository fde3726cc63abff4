// Package sink provides an optional fan-out bus so a single streaming
// session's event sequence can reach more than one downstream consumer
// (a UI, a telemetry exporter, a websocket client) without the
// orchestrator knowing about any of them.
package sink

import (
	"context"
	"errors"
	"sync"

	"github.com/errajibadr/langgraph-agent-repo/streamproc"
)

type (
	// Bus publishes stream processor events to registered subscribers in
	// a fan-out pattern. The bus is thread-safe and supports concurrent
	// Publish, Register, and Close operations.
	//
	// Events are delivered synchronously in the publisher's goroutine, and
	// iteration stops at the first subscriber error.
	Bus interface {
		// Publish delivers event to every currently registered
		// subscriber, stopping at the first error. The order in which
		// subscribers are called is not defined.
		Publish(ctx context.Context, event streamproc.Event) error

		// Register adds a subscriber and returns a Subscription that can
		// be closed to unregister. Register returns an error if sub is
		// nil.
		Register(sub Subscriber) (Subscription, error)
	}

	// Subscriber reacts to published events.
	Subscriber interface {
		HandleEvent(ctx context.Context, event streamproc.Event) error
	}

	// SubscriberFunc adapts a plain function to Subscriber.
	SubscriberFunc func(ctx context.Context, event streamproc.Event) error

	// Subscription represents an active registration on a Bus. Close is
	// idempotent and safe to call multiple times.
	Subscription interface {
		Close() error
	}

	bus struct {
		mu          sync.RWMutex
		subscribers map[*subscription]Subscriber
	}

	subscription struct {
		bus  *bus
		once sync.Once
	}
)

// HandleEvent calls f.
func (f SubscriberFunc) HandleEvent(ctx context.Context, event streamproc.Event) error {
	return f(ctx, event)
}

// NewBus constructs an in-memory event bus, ready for immediate use.
func NewBus() Bus {
	return &bus{subscribers: make(map[*subscription]Subscriber)}
}

// Publish delivers event to every currently registered subscriber,
// stopping at the first error. Subscribers are held in a map, so the
// order in which they are called is not defined. The snapshot of
// subscribers is captured before iteration begins, so concurrent
// registrations/unregistrations do not affect the current delivery.
func (b *bus) Publish(ctx context.Context, event streamproc.Event) error {
	b.mu.RLock()
	subs := make([]Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()
	for _, sub := range subs {
		if err := sub.HandleEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a subscriber to the bus.
func (b *bus) Register(sub Subscriber) (Subscription, error) {
	if sub == nil {
		return nil, errors.New("sink: subscriber is required")
	}
	s := &subscription{bus: b}
	b.mu.Lock()
	b.subscribers[s] = sub
	b.mu.Unlock()
	return s, nil
}

// Close removes the subscriber from the bus. Idempotent.
func (s *subscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subscribers, s)
		s.bus.mu.Unlock()
	})
	return nil
}

// Drain reads every event from stream and publishes each to bus, stopping
// early if a subscriber returns an error or ctx is cancelled. It is the
// typical way to connect a Processor's EventStream to a Bus.
func Drain(ctx context.Context, b Bus, events <-chan streamproc.Event) error {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := b.Publish(ctx, ev); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

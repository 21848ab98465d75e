package events

import (
	"sync"
)

// Bus is the in-process publish/subscribe broker.
//
// Delivery is at-most-once and best-effort: there is no persistence and no
// replay. A subscriber only sees events published while it is subscribed,
// and a subscriber that falls behind has events dropped rather than
// blocking publishers. The persistent store stays the source of truth;
// anything missed here is recoverable by a full refetch.
type Bus interface {
	// Publish delivers the event to every current subscriber of its topic
	// and returns immediately. Publishing with zero subscribers drops the
	// event without error.
	Publish(evt Event)

	// Subscribe registers for the given topics and returns a subscription
	// whose channel yields matching events in per-topic publish order.
	Subscribe(topics ...string) *Subscription
}

// subscriberBuffer bounds how far a subscriber may lag before events
// are dropped for it.
const subscriberBuffer = 64

// Subscription is a live registration on the bus. Events arrive on C until
// Close is called, after which C is closed.
type Subscription struct {
	C <-chan Event

	bus    *InMemoryBus
	ch     chan Event
	topics []string
	once   sync.Once
}

// Close tears the subscription down and closes C. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s)
		close(s.ch)
	})
}

// InMemoryBus is the single-process Bus implementation.
type InMemoryBus struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]bool // topic -> subscriptions
}

// NewInMemoryBus creates an empty bus
func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		subs: make(map[string]map[*Subscription]bool),
	}
}

// Publish implements Bus. The mutex serializes publishes, which is what
// gives each subscriber per-topic FIFO ordering.
func (b *InMemoryBus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[evt.Topic] {
		select {
		case sub.ch <- evt:
		default:
			// Subscriber buffer is full: drop for this subscriber only.
		}
	}
}

// Subscribe implements Bus
func (b *InMemoryBus) Subscribe(topics ...string) *Subscription {
	ch := make(chan Event, subscriberBuffer)
	sub := &Subscription{
		C:      ch,
		bus:    b,
		ch:     ch,
		topics: topics,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[*Subscription]bool)
		}
		b.subs[topic][sub] = true
	}
	return sub
}

func (b *InMemoryBus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range sub.topics {
		delete(b.subs[topic], sub)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}
}

package memory

import (
	"sync"

	"github.com/bnema/locsim/internal/ports"
)

// Bus is an owned, in-process publish/subscribe handle. Handlers run
// synchronously on the publisher's goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	topics map[string][]subscription
}

type subscription struct {
	id      uint64
	topic   string
	handler ports.Handler
}

func (s subscription) Topic() string {
	return s.topic
}

var _ ports.EventBus = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{topics: map[string][]subscription{}}
}

func (b *Bus) Subscribe(topic string, handler ports.Handler) ports.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscription{id: b.nextID, topic: topic, handler: handler}
	b.topics[topic] = append(b.topics[topic], sub)
	return sub
}

// Unsubscribe removes exactly the given subscription. Unknown or foreign
// subscriptions are ignored.
func (b *Bus) Unsubscribe(s ports.Subscription) {
	sub, ok := s.(subscription)
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[sub.topic]
	for i, candidate := range subs {
		if candidate.id != sub.id {
			continue
		}
		remaining := make([]subscription, 0, len(subs)-1)
		remaining = append(remaining, subs[:i]...)
		remaining = append(remaining, subs[i+1:]...)
		if len(remaining) == 0 {
			delete(b.topics, sub.topic)
		} else {
			b.topics[sub.topic] = remaining
		}
		return
	}
}

func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	subs := b.topics[topic]
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(payload)
	}
}

// Subscribers reports how many handlers are registered for topic.
func (b *Bus) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

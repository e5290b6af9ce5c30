package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type subscription struct {
	queueName string
	handler   Handler
}

// InMemoryBus is a MessageBus for tests. Publish dispatches synchronously
// to one handler per bound queue; a handler error drops the delivery, same
// as the AMQP nack-without-requeue path. Published payloads are recorded
// per routing key for assertions.
type InMemoryBus struct {
	mu        sync.RWMutex
	subs      map[string][]*subscription // routing key -> bound queues
	published map[string][][]byte        // routing key -> payloads
	closed    bool
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		subs:      make(map[string][]*subscription),
		published: make(map[string][][]byte),
	}
}

func (b *InMemoryBus) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("bus closed")
	}
	b.published[routingKey] = append(b.published[routingKey], body)
	subs := append([]*subscription(nil), b.subs[routingKey]...)
	b.mu.Unlock()

	for _, sub := range subs {
		// handler error == delivery dropped, nothing to propagate
		_ = sub.handler(ctx, body)
	}
	return nil
}

func (b *InMemoryBus) Subscribe(ctx context.Context, queueName, routingKey string, handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[routingKey] {
		if sub.queueName == queueName {
			// competing consumer on an existing queue, first handler keeps it
			return nil
		}
	}

	b.subs[routingKey] = append(b.subs[routingKey], &subscription{
		queueName: queueName,
		handler:   handler,
	})
	return nil
}

// Published returns a copy of everything published on the routing key.
func (b *InMemoryBus) Published(routingKey string) [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([][]byte, len(b.published[routingKey]))
	copy(out, b.published[routingKey])
	return out
}

func (b *InMemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

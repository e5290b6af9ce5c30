package bus

import "context"

const (
	RoutingKeyOrdersSubmitted = "orders.submitted"
	RoutingKeyOrdersDecided   = "orders.decided"

	QueueOrdersSubmitted = "orders_submitted_q"
)

// Handler processes one delivery. Returning nil acknowledges the delivery;
// returning an error drops it without requeue.
type Handler func(ctx context.Context, body []byte) error

// MessageBus is a durable publish/subscribe transport with at-least-once
// delivery. Subscribe binds a named durable queue to a routing key once and
// registers the handler for every delivery; multiple processes subscribing
// with the same queue name compete for deliveries.
type MessageBus interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Subscribe(ctx context.Context, queueName, routingKey string, handler Handler) error
	Close() error
}

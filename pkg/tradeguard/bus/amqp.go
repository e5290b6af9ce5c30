package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	rabbitmq_wrapper "github.com/joripage/tradeguard/pkg/infra/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const contentTypeJSON = "application/json; charset=utf-8"

const defaultPrefetchCount = 20

// AMQPBus is the RabbitMQ-backed MessageBus. One direct durable exchange;
// persistent JSON messages; unacked in-flight deliveries bounded by the
// channel prefetch count.
type AMQPBus struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	wg sync.WaitGroup
}

func NewAMQPBus(conn *amqp.Connection, cfg *rabbitmq_wrapper.RabbitConfig) (*AMQPBus, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(cfg.ExchangeName, amqp.ExchangeDirect, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = defaultPrefetchCount
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return &AMQPBus{
		conn:     conn,
		ch:       ch,
		exchange: cfg.ExchangeName,
	}, nil
}

func (b *AMQPBus) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return b.ch.PublishWithContext(ctx, b.exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  contentTypeJSON,
		Body:         body,
	})
}

func (b *AMQPBus) Subscribe(ctx context.Context, queueName, routingKey string, handler Handler) error {
	_, err := b.ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	if err := b.ch.QueueBind(queueName, routingKey, b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", queueName, routingKey, err)
	}

	consumerTag := queueName + "_consumer"
	deliveries, err := b.ch.Consume(queueName, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queueName, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				// stop taking new deliveries, let in-flight handlers finish
				if err := b.ch.Cancel(consumerTag, false); err != nil {
					zap.S().Warnf("cancel consumer %s fail: %v", consumerTag, err)
				}
				b.wg.Wait()
				return
			case d, ok := <-deliveries:
				if !ok {
					b.wg.Wait()
					return
				}
				b.wg.Add(1)
				go func(d amqp.Delivery) {
					defer b.wg.Done()
					b.dispatch(ctx, d, handler)
				}(d)
			}
		}
	}()

	return nil
}

func (b *AMQPBus) dispatch(ctx context.Context, d amqp.Delivery, handler Handler) {
	if ctx.Err() != nil {
		// shutdown already in progress, requeue for another consumer
		if err := d.Nack(false, true); err != nil {
			zap.S().Warnf("nack delivery fail: %v", err)
		}
		return
	}

	// a started unit of work must run to completion even if the stop
	// signal fires mid-handler; only new deliveries observe cancellation
	hctx := context.WithoutCancel(ctx)
	if err := handler(hctx, d.Body); err != nil {
		zap.S().Errorw("handler fail, dropping delivery",
			"routing_key", d.RoutingKey,
			"error", err,
		)
		// poison message: no requeue, no dead-letter routing configured
		if err := d.Nack(false, false); err != nil {
			zap.S().Warnf("nack delivery fail: %v", err)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		zap.S().Warnf("ack delivery fail: %v", err)
	}
}

func (b *AMQPBus) Close() error {
	// in-flight handlers still need the channel for publish and ack
	b.wg.Wait()

	if b.ch != nil {
		if err := b.ch.Close(); err != nil {
			return err
		}
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

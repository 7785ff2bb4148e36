package rabbitmq

import (
	"catalog/pkg/events"
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventHandler is a function that processes events
type EventHandler func(ctx context.Context, event *events.Event) error

type Consumer struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
}

// ConsumerConfig holds configuration for setting up a consumer
type ConsumerConfig struct {
	Exchange      string   // e.g., "catalog.category"
	QueueName     string   // e.g., "catalog.category.all.v1"
	RoutingKeys   []string // e.g., ["category.*.v1"]
	ServiceName   string
	PrefetchCount int // Number of messages to prefetch (0 = default)
}

// NewConsumer connects, declares the exchange, a durable queue with a dead
// letter exchange, and binds the routing keys.
func NewConsumer(url string, config ConsumerConfig) (*Consumer, error) {
	conn, err := dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	cleanup := func() {
		channel.Close()
		conn.Close()
	}

	prefetchCount := config.PrefetchCount
	if prefetchCount == 0 {
		prefetchCount = 10
	}
	if err := channel.Qos(prefetchCount, 0, false); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := declareExchange(channel, config.Exchange); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	dlxName := config.Exchange + ".dlx"
	if err := declareExchange(channel, dlxName); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to declare DLX: %w", err)
	}

	queue, err := channel.QueueDeclare(
		config.QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{"x-dead-letter-exchange": dlxName},
	)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	dlqName := config.QueueName + ".dlq"
	if _, err := channel.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to declare DLQ: %w", err)
	}
	for _, key := range config.RoutingKeys {
		if err := channel.QueueBind(dlqName, key, dlxName, false, nil); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to bind DLQ: %w", err)
		}
	}

	for _, key := range config.RoutingKeys {
		if err := channel.QueueBind(queue.Name, key, config.Exchange, false, nil); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to bind queue: %w", err)
		}
	}

	zap.L().Info("RabbitMQ consumer ready",
		zap.String("exchange", config.Exchange),
		zap.String("queue", queue.Name),
		zap.Strings("routingKeys", config.RoutingKeys),
	)

	return &Consumer{
		conn:      conn,
		channel:   channel,
		queueName: queue.Name,
	}, nil
}

// Consume delivers each message to the handler until the context is
// cancelled. A handler error rejects the message to the dead letter queue.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	deliveries, err := c.channel.Consume(
		c.queueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var event events.Event
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				zap.L().Error("Failed to decode event, rejecting",
					zap.String("queue", c.queueName),
					zap.Error(err))
				_ = delivery.Reject(false)
				continue
			}

			if err := handler(ctx, &event); err != nil {
				zap.L().Error("Event handler failed, rejecting",
					zap.String("event", event.Event),
					zap.String("traceId", event.TraceID),
					zap.Error(err))
				_ = delivery.Reject(false)
				continue
			}

			if err := delivery.Ack(false); err != nil {
				zap.L().Error("Failed to ack delivery", zap.Error(err))
			}
		}
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			zap.L().Error("Failed to close channel", zap.Error(err))
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

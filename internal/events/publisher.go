package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusEvent is emitted whenever the poller observes an order moving to a
// new delivery status.
type StatusEvent struct {
	OrderRef   string    `json:"orderRef"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Step       int       `json:"step"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits order status events to interested consumers.
type Publisher interface {
	PublishStatusChange(ctx context.Context, event StatusEvent) error
	Close() error
}

// AMQPPublisher publishes status events to a durable RabbitMQ queue.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

// NewAMQPPublisher dials the broker and declares the status queue.
func NewAMQPPublisher(url, queue string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: ch, queue: queue, logger: logger}, nil
}

// PublishStatusChange sends the event as a persistent JSON message.
func (p *AMQPPublisher) PublishStatusChange(ctx context.Context, event StatusEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}
	return p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			MessageId:    uuid.NewString(),
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

// Close shuts down the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("failed to close rabbitmq channel", "error", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops events. Used when no broker is configured; status
// changes are still persisted, only the fan-out is skipped.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChange(context.Context, StatusEvent) error { return nil }
func (NoopPublisher) Close() error                                           { return nil }

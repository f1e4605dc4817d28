// Package rabbitmq implements the StatusNotifier port over RabbitMQ.
// Published events let downstream consumers (customer notification, order
// history) react to production status changes without a direct dependency on
// this service.
package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/production"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "production.status"

// statusChangedEvent is the wire payload published on every status change.
type statusChangedEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StatusNotifier publishes status change events to a topic exchange.
// Routing keys follow the pattern "order.<orderId>.<status>", so consumers
// can bind to one order, one status, or everything.
type StatusNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewStatusNotifier connects to the broker at url and declares the durable
// topic exchange the events are published to.
func NewStatusNotifier(url string) (*StatusNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &StatusNotifier{conn: conn, ch: ch}, nil
}

// NotifyStatusChanged publishes one persistent event for the status change.
func (n *StatusNotifier) NotifyStatusChanged(
	ctx context.Context,
	orderID kernel.OrderID,
	status production.Status,
) error {
	event := statusChangedEvent{
		EventID:    uuid.NewString(),
		OrderID:    orderID.Value(),
		Status:     status.String(),
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	routingKey := "order." + orderID.String() + "." + status.String()

	return n.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    event.OccurredAt,
		MessageId:    event.EventID,
		Body:         body,
	})
}

// Close releases the channel and connection.
func (n *StatusNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

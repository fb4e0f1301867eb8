// Package kafka publishes committed order changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

var (
	_ ports.EventPublisher = (*OrderChangedPublisher)(nil)
	_ ports.EventPublisher = NopPublisher{}
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedPublisher writes one JSON message per change, keyed by order id
// so every change of an order lands on the same partition in commit order.
type OrderChangedPublisher struct {
	writer messageWriter
}

// NewOrderChangedPublisher connects a writer to topic on the broker at host.
func NewOrderChangedPublisher(host, topic string) (*OrderChangedPublisher, error) {
	if host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	return newOrderChangedPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(host),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}), nil
}

func newOrderChangedPublisher(writer messageWriter) *OrderChangedPublisher {
	return &OrderChangedPublisher{writer: writer}
}

func (p *OrderChangedPublisher) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(newOrderChangedMessage(event))
		if err != nil {
			return fmt.Errorf("failed to marshal order changed event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.OrderID.String()),
			Value: value,
			Time:  event.OccurredAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write order changed events: %w", err)
	}
	return nil
}

func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}

// orderChangedMessage is the wire form of order.ChangedEvent.
type orderChangedMessage struct {
	OrderID          string    `json:"orderId"`
	Kind             string    `json:"kind"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previousStatus"`
	IsRevert         bool      `json:"isRevert"`
	Escalated        bool      `json:"escalated"`
	AssignedVendorID string    `json:"assignedVendorId"`
	Version          int64     `json:"version"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func newOrderChangedMessage(e order.ChangedEvent) orderChangedMessage {
	return orderChangedMessage{
		OrderID:          e.OrderID.String(),
		Kind:             string(e.Kind),
		Status:           e.Status.String(),
		PreviousStatus:   e.PreviousStatus.String(),
		IsRevert:         e.IsRevert,
		Escalated:        e.Escalated,
		AssignedVendorID: e.AssignedVendorID.String(),
		Version:          e.Version,
		OccurredAt:       e.OccurredAt.UTC(),
	}
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...order.ChangedEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

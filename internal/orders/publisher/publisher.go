package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/orders/domain"
)

// Writer is the slice of kafka.Writer the publisher needs; tests inject a
// capture implementation.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderPlacedEvent is the payload published when a checkout completes.
// Downstream consumers (fulfilment, analytics) key off the order id.
type OrderPlacedEvent struct {
	OrderID   string              `json:"order_id"`
	SessionID string              `json:"session_id"`
	Status    domain.OrderStatus  `json:"status"`
	Items     []domain.OrderItem  `json:"items"`
	Totals    []domain.OrderTotal `json:"totals"`
	PlacedAt  time.Time           `json:"placed_at"`
}

type Publisher struct {
	writer Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-placed",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

// NewPublisherWithWriter builds a publisher over an existing writer.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	event := OrderPlacedEvent{
		OrderID:   order.ID.String(),
		SessionID: order.SessionID,
		Status:    order.Status,
		Items:     order.Items,
		Totals:    order.Totals,
		PlacedAt:  order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

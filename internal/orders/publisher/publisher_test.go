package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/orders/domain"
)

// MockWriter implements Writer for testing
type MockWriter struct {
	Messages []kafka.Message
	Err      error
	Closed   bool
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error {
	m.Closed = true
	return nil
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:        uuid.New(),
		SessionID: "sess-123",
		Status:    domain.OrderStatusPaid,
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Men's Mining T", Option: "Large", Currency: "ETH", UnitAmount: 51990000},
		},
		Totals:    []domain.OrderTotal{{Currency: "ETH", UnitAmount: 51990000}},
		CreatedAt: time.Now(),
	}
}

func TestPublishOrderPlaced(t *testing.T) {
	writer := &MockWriter{}
	pub := NewPublisherWithWriter(writer)

	order := testOrder()
	err := pub.PublishOrderPlaced(context.Background(), order)
	require.NoError(t, err)

	require.Len(t, writer.Messages, 1)
	msg := writer.Messages[0]
	assert.Equal(t, order.ID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "order.placed", string(msg.Headers[0].Value))

	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, order.SessionID, event.SessionID)
	assert.Equal(t, domain.OrderStatusPaid, event.Status)
	require.Len(t, event.Items, 1)
	assert.Equal(t, int64(51990000), event.Items[0].UnitAmount)
}

func TestPublishOrderPlaced_WriterError(t *testing.T) {
	writer := &MockWriter{Err: errors.New("broker unavailable")}
	pub := NewPublisherWithWriter(writer)

	err := pub.PublishOrderPlaced(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish order event")
}

func TestClose(t *testing.T) {
	writer := &MockWriter{}
	pub := NewPublisherWithWriter(writer)

	require.NoError(t, pub.Close())
	assert.True(t, writer.Closed)
}

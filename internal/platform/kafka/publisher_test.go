package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafkago.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

type orderVerified struct {
	events.BaseEvent
	OrderID string `json:"orderId"`
}

func (e orderVerified) EventName() string   { return "orders.order.status_changed" }
func (e orderVerified) AggregateID() string { return e.OrderID }

func TestPublisher_WritesEnvelopes(t *testing.T) {
	writer := &recordingWriter{}
	pub, err := NewPublisher(writer, "gamerz-api")
	require.NoError(t, err)

	at := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	pub.Publish(context.Background(),
		orderVerified{BaseEvent: events.BaseEvent{Timestamp: at}, OrderID: "o-1"},
		orderVerified{BaseEvent: events.BaseEvent{Timestamp: at}, OrderID: "o-2"},
	)
	require.NoError(t, pub.Close())

	writer.mu.Lock()
	defer writer.mu.Unlock()
	assert.True(t, writer.closed)
	require.Len(t, writer.msgs, 2)

	msg := writer.msgs[0]
	assert.Equal(t, "o-1", string(msg.Key))
	assert.Equal(t, []kafkago.Header{
		{Key: HeaderEventType, Value: []byte("orders.order.status_changed")},
		{Key: HeaderEventVersion, Value: []byte("1")},
	}, msg.Headers)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "orders.order.status_changed", env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "gamerz-api", env.Producer)
	assert.Equal(t, "o-1", env.CorrelationID)
	assert.True(t, at.Equal(env.OccurredAt))
	assert.NotEmpty(t, env.EventID)

	var payload struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "o-1", payload.OrderID)
}

func TestPublisher_DropsAfterClose(t *testing.T) {
	writer := &recordingWriter{}
	pub, err := NewPublisher(writer, "gamerz-api", WithBufferSize(1))
	require.NoError(t, err)
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	pub.Publish(context.Background(), orderVerified{OrderID: "late"})

	writer.mu.Lock()
	defer writer.mu.Unlock()
	assert.Empty(t, writer.msgs)
}

func TestNewPublisher_RequiresWriter(t *testing.T) {
	_, err := NewPublisher(nil, "gamerz-api")
	assert.Error(t, err)
}

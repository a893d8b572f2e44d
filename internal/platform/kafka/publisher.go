// Package kafka publishes domain events to a Kafka topic as versioned envelopes.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/trace"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

const (
	HeaderEventType    = "x-event-type"
	HeaderEventVersion = "x-event-version"

	envelopeVersion   = 1
	defaultBufferSize = 256
)

// Envelope wraps every event written to the topic.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// MessageWriter is the part of kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

var _ events.Publisher = (*Publisher)(nil)

// Publisher buffers events and writes them from a single goroutine.
// Publish never blocks a request; a full buffer drops the event with a warning.
type Publisher struct {
	writer   MessageWriter
	producer string
	logger   *slog.Logger
	inbox    chan kafkago.Message
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithBufferSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.inbox = make(chan kafkago.Message, n)
		}
	}
}

// NewWriter builds a hash-balanced writer so events of one aggregate keep their order.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewPublisher starts the write loop. Call Close to flush and stop it.
func NewPublisher(writer MessageWriter, producer string, opts ...Option) (*Publisher, error) {
	if writer == nil {
		return nil, errors.New("kafka writer is required")
	}
	p := &Publisher{
		writer:   writer,
		producer: producer,
		logger:   slog.Default(),
		inbox:    make(chan kafkago.Message, defaultBufferSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	go p.loop()
	return p, nil
}

// Publish enqueues evts. Encoding failures and a full buffer are logged, never returned.
func (p *Publisher) Publish(ctx context.Context, evts ...events.Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	for _, evt := range evts {
		msg, err := p.encode(ctx, evt)
		if err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "failed to encode event",
				slog.String("event", evt.EventName()), slog.String("error", err.Error()))
			continue
		}
		select {
		case p.inbox <- msg:
		default:
			p.logger.LogAttrs(ctx, slog.LevelWarn, "event buffer full, dropping event",
				slog.String("event", evt.EventName()), slog.String("aggregate", evt.AggregateID()))
		}
	}
}

// Close flushes queued events and closes the writer.
func (p *Publisher) Close() error {
	var err error
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()
		<-p.done
		err = p.writer.Close()
	})
	return err
}

func (p *Publisher) loop() {
	defer close(p.done)
	for msg := range p.inbox {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.LogAttrs(ctx, slog.LevelError, "failed to publish event",
				slog.String("key", string(msg.Key)), slog.String("error", err.Error()))
		}
		cancel()
	}
}

func (p *Publisher) encode(ctx context.Context, evt events.Event) (kafkago.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal payload: %w", err)
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     evt.EventName(),
		EventVersion:  envelopeVersion,
		OccurredAt:    evt.OccurredAt().UTC(),
		Producer:      p.producer,
		CorrelationID: evt.AggregateID(),
		Payload:       payload,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		env.TraceID = sc.TraceID().String()
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal envelope: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(evt.AggregateID()),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafkago.Header{
			{Key: HeaderEventType, Value: []byte(env.EventType)},
			{Key: HeaderEventVersion, Value: []byte(fmt.Sprint(envelopeVersion))},
		},
	}, nil
}

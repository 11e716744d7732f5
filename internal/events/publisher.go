package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/clients"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

// Publisher emits terminal events.
type Publisher interface {
	PublishCheckedOut(ctx context.Context, result *models.CheckoutResult) error
	PublishSessionExpired(ctx context.Context, reason string) error
}

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*MockEventPublisher)(nil)
	_ Publisher = NoopPublisher{}
)

// EventType represents the type of terminal event.
type EventType string

const (
	EventTypeSaleCheckedOut  EventType = "sale.checked_out"
	EventTypeQuoteCheckedOut EventType = "quote.checked_out"
	EventTypeSessionExpired  EventType = "session.expired"
)

// TerminalEvent is the envelope written to the events topic.
type TerminalEvent struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	TerminalID    string          `json:"terminal_id"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes terminal events to Kafka.
type KafkaPublisher struct {
	writer     messageWriter
	topic      string
	terminalID string
	logger     *logging.LoggerV2
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, terminalID string, logger *logging.LoggerV2) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return newKafkaPublisher(writer, cfg.EventsTopic, terminalID, logger)
}

func newKafkaPublisher(w messageWriter, topic, terminalID string, logger *logging.LoggerV2) *KafkaPublisher {
	return &KafkaPublisher{
		writer:     w,
		topic:      topic,
		terminalID: terminalID,
		logger:     logger,
	}
}

// PublishCheckedOut publishes a sale or quote checkout event.
func (p *KafkaPublisher) PublishCheckedOut(ctx context.Context, result *models.CheckoutResult) error {
	p.logger.Debug("Publishing checkout event", logging.Fields{
		"draft_id": result.DraftID,
		"kind":     result.Kind,
	})

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, checkoutEventType(result.Kind), data)
	return p.publish(ctx, event)
}

// PublishSessionExpired publishes that the operator was sent back to login.
func (p *KafkaPublisher) PublishSessionExpired(ctx context.Context, reason string) error {
	data, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return err
	}

	event := p.createEvent(ctx, EventTypeSessionExpired, data)
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) createEvent(ctx context.Context, eventType EventType, data []byte) *TerminalEvent {
	return &TerminalEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		TerminalID:    p.terminalID,
		Data:          data,
		Timestamp:     time.Now().UTC(),
		CorrelationID: clients.RequestIDFromContext(ctx),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *TerminalEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.TerminalID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"topic":      p.topic,
	})
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

func checkoutEventType(kind models.DraftKind) EventType {
	if kind == models.DraftQuote {
		return EventTypeQuoteCheckedOut
	}
	return EventTypeSaleCheckedOut
}

// NoopPublisher drops every event. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishCheckedOut(context.Context, *models.CheckoutResult) error { return nil }
func (NoopPublisher) PublishSessionExpired(context.Context, string) error             { return nil }

// MockEventPublisher is a mock implementation for testing.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []*TerminalEvent
	Err    error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]*TerminalEvent, 0),
	}
}

func (m *MockEventPublisher) PublishCheckedOut(ctx context.Context, result *models.CheckoutResult) error {
	data, _ := json.Marshal(result)
	return m.record(checkoutEventType(result.Kind), data)
}

func (m *MockEventPublisher) PublishSessionExpired(ctx context.Context, reason string) error {
	data, _ := json.Marshal(map[string]string{"reason": reason})
	return m.record(EventTypeSessionExpired, data)
}

// Types returns the recorded event types in order.
func (m *MockEventPublisher) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

func (m *MockEventPublisher) record(eventType EventType, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, &TerminalEvent{Type: eventType, Data: data})
	return nil
}

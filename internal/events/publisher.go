package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher pushes portal notification events to whatever backend is
// configured; the notification service is its only producer.
type EventPublisher interface {
	PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error
	Close() error
}

// PublisherConfig carries the Kafka connection settings for the portal's
// notification topic.
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// KafkaEventPublisher writes notification events to the portal's Kafka
// topic through watermill.
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topic     string
}

func NewKafkaEventPublisher(cfg PublisherConfig) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(cfg.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    cfg.Logger,
		topic:     cfg.TopicName,
	}, nil
}

// PublishNotificationEvent serializes the event and hands it to Kafka. The
// envelope fields are mirrored into message metadata so consumers can route
// without unmarshalling the body.
func (p *KafkaEventPublisher) PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event %s: %w", event.ID, err)
	}

	msg := message.NewMessage(event.ID, body)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("Notification publish failed",
			"event_id", event.ID,
			"event_type", event.Type,
			"topic", p.topic,
			"error", err)
		return fmt.Errorf("failed to publish notification event %s: %w", event.ID, err)
	}

	p.logger.Debug("Notification event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topic)
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher records events in memory. It backs tests and the
// events-disabled deployment mode.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []NotificationEvent
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error {
	m.mu.Lock()
	m.events = append(m.events, *event)
	m.mu.Unlock()

	m.logger.Debug("Notification event recorded",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

// Published returns a copy of every event recorded so far.
func (m *MockEventPublisher) Published() []NotificationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]NotificationEvent(nil), m.events...)
}

// Reset drops all recorded events.
func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}

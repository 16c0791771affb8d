package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/infra/kafka"

	"github.com/google/uuid"
)

const (
	sourceService = "ontology-catalog-api"
	schemaVersion = "v1"
)

// MessageProducer é a parte do KafkaClient usada pelo publisher.
type MessageProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type CatalogEventPublisher struct {
	logger   *slog.Logger
	producer MessageProducer
	topic    string
	now      func() time.Time
}

func NewCatalogEventPublisher(
	logger *slog.Logger,
	producer MessageProducer,
	topic string,
) *CatalogEventPublisher {
	return &CatalogEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Publish envia os eventos em um único batch, particionados por categoria.
func (p *CatalogEventPublisher) Publish(ctx context.Context, events ...domain.CatalogEvent) error {
	if len(events) == 0 {
		return nil
	}

	kafkaMessages := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		if event.EventID == "" {
			event.EventID = uuid.NewString()
		}
		if event.OccurredAt.IsZero() {
			event.OccurredAt = p.now()
		}

		eventBytes, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal catalog event",
				"error", err,
				"event_id", event.EventID,
				"category_id", event.CategoryID)
			continue
		}

		kafkaMessages = append(kafkaMessages, kafka.Message{
			Key:     event.CategoryID,
			Value:   eventBytes,
			Headers: createEventHeaders(event),
		})

		p.logger.Debug("Prepared catalog event for publishing",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"category_id", event.CategoryID)
	}

	if err := p.producer.Producer(kafkaMessages, p.topic); err != nil {
		return fmt.Errorf("CatalogEventPublisher.Publish - failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.Info("Published catalog events", "topic", p.topic, "events_count", len(kafkaMessages))

	return nil
}

func createEventHeaders(event domain.CatalogEvent) map[string]string {
	return map[string]string{
		"event_type":     string(event.EventType),
		"event_id":       event.EventID,
		"source_service": sourceService,
		"schema_version": schemaVersion,
	}
}

// NoopEventPublisher é usado quando não há brokers configurados.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, events ...domain.CatalogEvent) error {
	return nil
}

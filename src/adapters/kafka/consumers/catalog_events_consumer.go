package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/infra/kafka"
)

// CategoryCacheInvalidator é implementado por repositories.CachedCatalogRepository.
type CategoryCacheInvalidator interface {
	InvalidateByCategoryIDs(ctx context.Context, categoryIDs []string) error
}

// MessageConsumer é a parte do KafkaClient usada pelo consumer.
type MessageConsumer interface {
	Consumer(ctx context.Context, handler kafka.Handler, topic string) error
}

// CatalogEventsConsumer mantém o cache Redis coerente entre réplicas da API:
// cada evento invalida os registries da(s) categoria(s) afetada(s).
type CatalogEventsConsumer struct {
	logger      *slog.Logger
	invalidator CategoryCacheInvalidator
}

func NewCatalogEventsConsumer(
	logger *slog.Logger,
	invalidator CategoryCacheInvalidator,
) *CatalogEventsConsumer {
	return &CatalogEventsConsumer{
		logger:      logger,
		invalidator: invalidator,
	}
}

func (c *CatalogEventsConsumer) Start(ctx context.Context, kafkaClient MessageConsumer, topic string) error {
	c.logger.Info("Starting catalog events consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.HandleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

// HandleMessages deduplica as categorias do batch e invalida uma vez por categoria.
// Mensagens malformadas são descartadas; erro de invalidação devolve o batch para retry.
func (c *CatalogEventsConsumer) HandleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Debug("Processing catalog events batch", "count", len(messages))

	seen := make(map[string]bool)
	var categoryIDs []string

	for _, msg := range messages {
		var event domain.CatalogEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("Failed to unmarshal catalog event",
				"error", err,
				"key", msg.Key,
				"event_id", msg.Headers["event_id"])
			continue
		}

		if event.CategoryID == "" {
			c.logger.Warn("Skipping catalog event without category",
				"key", msg.Key,
				"event_type", event.EventType)
			continue
		}

		for _, categoryID := range event.AffectedCategoryIDs() {
			if !seen[categoryID] {
				seen[categoryID] = true
				categoryIDs = append(categoryIDs, categoryID)
			}
		}
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	if err := c.invalidator.InvalidateByCategoryIDs(ctx, categoryIDs); err != nil {
		c.logger.Error("Failed to invalidate category caches",
			"error", err,
			"categories", len(categoryIDs))
		return fmt.Errorf("failed to invalidate caches for %d categories: %w", len(categoryIDs), err)
	}

	c.logger.Info("Invalidated category caches",
		"messages", len(messages),
		"categories", len(categoryIDs))

	return nil
}

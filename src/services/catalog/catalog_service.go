package catalog

import (
	"context"
	"log/slog"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/repositories"
)

// EventPublisher recebe os eventos gerados após cada mutação.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.CatalogEvent) error
}

type CatalogService struct {
	catalogRepository repositories.CatalogRepository
	eventPublisher    EventPublisher
	logger            *slog.Logger
}

func NewCatalogService(
	catalogRepository repositories.CatalogRepository,
	eventPublisher EventPublisher,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		catalogRepository: catalogRepository,
		eventPublisher:    eventPublisher,
		logger:            logger,
	}
}

func (cs *CatalogService) Ping(ctx context.Context) error {
	return cs.catalogRepository.Ping(ctx)
}

// publish nunca falha a requisição: a escrita já foi feita.
func (cs *CatalogService) publish(ctx context.Context, event domain.CatalogEvent) {
	if err := cs.eventPublisher.Publish(ctx, event); err != nil {
		cs.logger.Error("Failed to publish catalog event",
			"error", err,
			"event_type", event.EventType,
			"category_id", event.CategoryID,
			"entity_id", event.EntityID)
	}
}

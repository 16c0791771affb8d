package domain

import "time"

type CatalogEventType string

const (
	EventCategoryCreated CatalogEventType = "category.created"
	EventCategoryUpdated CatalogEventType = "category.updated"
	EventCategoryDeleted CatalogEventType = "category.deleted"
	EventDatasetCreated  CatalogEventType = "dataset.created"
	EventDatasetDeleted  CatalogEventType = "dataset.deleted"
	EventSolutionCreated CatalogEventType = "solution.created"
	EventSolutionUpdated CatalogEventType = "solution.updated"
	EventSolutionDeleted CatalogEventType = "solution.deleted"
)

// CatalogEvent é publicado depois de cada mutação bem sucedida.
// CategoryID é a chave de particionamento, então eventos da mesma
// categoria chegam em ordem.
type CatalogEvent struct {
	EventID    string           `json:"eventId"`
	EventType  CatalogEventType `json:"eventType"`
	CategoryID string           `json:"categoryId"`
	EntityID   string           `json:"entityId"`
	OccurredAt time.Time        `json:"occurredAt"`

	// Preenchido quando uma solution muda de categoria.
	PreviousCategoryID string `json:"previousCategoryId,omitempty"`
}

// AffectedCategoryIDs lista as categorias cujas leituras ficam obsoletas.
func (e CatalogEvent) AffectedCategoryIDs() []string {
	ids := []string{e.CategoryID}
	if e.PreviousCategoryID != "" && e.PreviousCategoryID != e.CategoryID {
		ids = append(ids, e.PreviousCategoryID)
	}
	return ids
}

func NewCatalogEvent(eventType CatalogEventType, categoryID string, entityID string) CatalogEvent {
	return CatalogEvent{
		EventType:  eventType,
		CategoryID: categoryID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

package catalog

import (
	"context"
	"fmt"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
)

func (cs *CatalogService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	categories, err := cs.catalogRepository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("CatalogService.ListCategories - failed to list categories: %w", err)
	}
	return categories, nil
}

func (cs *CatalogService) GetCategory(ctx context.Context, id string) (entities.Category, error) {
	category, err := cs.catalogRepository.GetCategory(ctx, id)
	if err != nil {
		return entities.Category{}, fmt.Errorf("CatalogService.GetCategory - failed to get category %s: %w", id, err)
	}
	return category, nil
}

func (cs *CatalogService) CreateCategory(ctx context.Context, request domain.CreateCategoryRequest) (entities.Category, error) {
	request.Specification = request.Specification.Normalized()

	category, err := cs.catalogRepository.CreateCategory(ctx, request)
	if err != nil {
		return entities.Category{}, fmt.Errorf("CatalogService.CreateCategory - failed to create category: %w", err)
	}

	cs.publish(ctx, domain.NewCatalogEvent(domain.EventCategoryCreated, category.ID, category.ID))
	return category, nil
}

// UpdateCategory com payload vazio apenas devolve o registro atual.
func (cs *CatalogService) UpdateCategory(ctx context.Context, id string, request domain.UpdateCategoryRequest) (entities.Category, error) {
	if request.IsEmpty() {
		return cs.GetCategory(ctx, id)
	}

	if request.Specification != nil {
		normalized := request.Specification.Normalized()
		request.Specification = &normalized
	}

	category, err := cs.catalogRepository.UpdateCategory(ctx, id, request)
	if err != nil {
		return entities.Category{}, fmt.Errorf("CatalogService.UpdateCategory - failed to update category %s: %w", id, err)
	}

	cs.publish(ctx, domain.NewCatalogEvent(domain.EventCategoryUpdated, category.ID, category.ID))
	return category, nil
}

// DeleteCategory devolve false quando a categoria não existia.
func (cs *CatalogService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	deleted, err := cs.catalogRepository.DeleteCategory(ctx, id)
	if err != nil {
		return false, fmt.Errorf("CatalogService.DeleteCategory - failed to delete category %s: %w", id, err)
	}

	if deleted {
		cs.publish(ctx, domain.NewCatalogEvent(domain.EventCategoryDeleted, id, id))
	}
	return deleted, nil
}

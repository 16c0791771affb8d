package catalog

import (
	"context"
	"errors"
	"fmt"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
)

func (cs *CatalogService) ListSolutions(ctx context.Context, categoryID string) ([]entities.Solution, error) {
	solutions, err := cs.catalogRepository.ListSolutions(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("CatalogService.ListSolutions - failed to list solutions of %s: %w", categoryID, err)
	}
	return solutions, nil
}

func (cs *CatalogService) CreateSolution(ctx context.Context, request domain.CreateSolutionRequest) (entities.Solution, error) {
	if request.Type == "" {
		request.Type = entities.SolutionTypeQuery
	}

	if err := cs.ensureCategory(ctx, request.CategoryID); err != nil {
		return entities.Solution{}, fmt.Errorf("CatalogService.CreateSolution - %w", err)
	}

	solution, err := cs.catalogRepository.CreateSolution(ctx, request)
	if err != nil {
		return entities.Solution{}, fmt.Errorf("CatalogService.CreateSolution - failed to create solution: %w", err)
	}

	cs.publish(ctx, domain.NewCatalogEvent(domain.EventSolutionCreated, solution.CategoryID, solution.ID))
	return solution, nil
}

func (cs *CatalogService) UpdateSolution(ctx context.Context, id string, request domain.UpdateSolutionRequest) (entities.Solution, error) {
	previous, err := cs.catalogRepository.GetSolution(ctx, id)
	if err != nil {
		return entities.Solution{}, fmt.Errorf("CatalogService.UpdateSolution - failed to get solution %s: %w", id, err)
	}

	if request.IsEmpty() {
		return previous, nil
	}

	if request.CategoryID != nil && *request.CategoryID != previous.CategoryID {
		if err := cs.ensureCategory(ctx, *request.CategoryID); err != nil {
			return entities.Solution{}, fmt.Errorf("CatalogService.UpdateSolution - %w", err)
		}
	}

	solution, err := cs.catalogRepository.UpdateSolution(ctx, id, request)
	if err != nil {
		return entities.Solution{}, fmt.Errorf("CatalogService.UpdateSolution - failed to update solution %s: %w", id, err)
	}

	event := domain.NewCatalogEvent(domain.EventSolutionUpdated, solution.CategoryID, solution.ID)
	event.PreviousCategoryID = previous.CategoryID
	cs.publish(ctx, event)

	return solution, nil
}

func (cs *CatalogService) DeleteSolution(ctx context.Context, id string) (bool, error) {
	solution, err := cs.catalogRepository.GetSolution(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSolutionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("CatalogService.DeleteSolution - failed to get solution %s: %w", id, err)
	}

	deleted, err := cs.catalogRepository.DeleteSolution(ctx, id)
	if err != nil {
		return false, fmt.Errorf("CatalogService.DeleteSolution - failed to delete solution %s: %w", id, err)
	}

	if deleted {
		cs.publish(ctx, domain.NewCatalogEvent(domain.EventSolutionDeleted, solution.CategoryID, id))
	}
	return deleted, nil
}

func (cs *CatalogService) GetSolution(ctx context.Context, id string) (entities.Solution, error) {
	solution, err := cs.catalogRepository.GetSolution(ctx, id)
	if err != nil {
		return entities.Solution{}, fmt.Errorf("CatalogService.GetSolution - failed to get solution %s: %w", id, err)
	}
	return solution, nil
}

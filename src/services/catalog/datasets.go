package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/services/intake"
)

func (cs *CatalogService) ListDatasets(ctx context.Context, categoryID string) ([]entities.Dataset, error) {
	datasets, err := cs.catalogRepository.ListDatasets(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("CatalogService.ListDatasets - failed to list datasets of %s: %w", categoryID, err)
	}
	return datasets, nil
}

// UploadDataset valida o nome, confere a categoria e só então consome o arquivo.
// Apenas os metadados são gravados.
func (cs *CatalogService) UploadDataset(ctx context.Context, categoryID string, filename string, content io.Reader) (entities.Dataset, error) {
	if err := intake.ValidateFilename(filename); err != nil {
		return entities.Dataset{}, err
	}

	if err := cs.ensureCategory(ctx, categoryID); err != nil {
		return entities.Dataset{}, fmt.Errorf("CatalogService.UploadDataset - %w", err)
	}

	upload, err := intake.Inspect(filename, content)
	if err != nil {
		return entities.Dataset{}, err
	}

	// Cliente desconectou durante o upload: nada é gravado.
	if err := ctx.Err(); err != nil {
		return entities.Dataset{}, fmt.Errorf("CatalogService.UploadDataset - upload aborted: %w", err)
	}

	dataset, err := cs.catalogRepository.CreateDataset(ctx, domain.CreateDatasetRequest{
		CategoryID: categoryID,
		Name:       upload.Filename,
		Filename:   upload.Filename,
		Size:       upload.Size,
	})
	if err != nil {
		return entities.Dataset{}, fmt.Errorf("CatalogService.UploadDataset - failed to create dataset: %w", err)
	}

	cs.logger.Info("Dataset uploaded",
		"dataset_id", dataset.ID,
		"category_id", categoryID,
		"filename", dataset.Filename,
		"bytes", upload.Bytes)

	cs.publish(ctx, domain.NewCatalogEvent(domain.EventDatasetCreated, categoryID, dataset.ID))
	return dataset, nil
}

func (cs *CatalogService) DeleteDataset(ctx context.Context, id string) (bool, error) {
	dataset, err := cs.catalogRepository.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("CatalogService.DeleteDataset - failed to get dataset %s: %w", id, err)
	}

	deleted, err := cs.catalogRepository.DeleteDataset(ctx, id)
	if err != nil {
		return false, fmt.Errorf("CatalogService.DeleteDataset - failed to delete dataset %s: %w", id, err)
	}

	if deleted {
		cs.publish(ctx, domain.NewCatalogEvent(domain.EventDatasetDeleted, dataset.CategoryID, id))
	}
	return deleted, nil
}

// ensureCategory traduz categoria inexistente para entrada inválida.
func (cs *CatalogService) ensureCategory(ctx context.Context, categoryID string) error {
	_, err := cs.catalogRepository.GetCategory(ctx, categoryID)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return fmt.Errorf("%w: category %s does not exist", domain.ErrInvalidInput, categoryID)
	}
	return err
}

func (cs *CatalogService) GetDataset(ctx context.Context, id string) (entities.Dataset, error) {
	dataset, err := cs.catalogRepository.GetDataset(ctx, id)
	if err != nil {
		return entities.Dataset{}, fmt.Errorf("CatalogService.GetDataset - failed to get dataset %s: %w", id, err)
	}
	return dataset, nil
}

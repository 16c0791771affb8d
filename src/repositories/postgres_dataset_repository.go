package repositories

import (
	"context"
	"fmt"
	"time"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/infra/postgres"

	"github.com/jackc/pgx/v5"
)

const datasetColumns = `id, category_id, name, filename, size, uploaded_at`

func scanDataset(row pgx.Row) (entities.Dataset, error) {
	var dataset entities.Dataset
	err := row.Scan(
		&dataset.ID,
		&dataset.CategoryID,
		&dataset.Name,
		&dataset.Filename,
		&dataset.Size,
		&dataset.UploadedAt,
	)
	return dataset, err
}

func (r *PostgresCatalogRepository) ListDatasets(ctx context.Context, categoryID string) ([]entities.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE category_id = $1 ORDER BY seq`

	rows, err := r.readPool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("PostgresCatalogRepository.ListDatasets - query failed: %w", err)
	}
	defer rows.Close()

	datasets := make([]entities.Dataset, 0)
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresCatalogRepository.ListDatasets - failed to scan dataset: %w", err)
		}
		datasets = append(datasets, dataset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresCatalogRepository.ListDatasets - error iterating rows: %w", err)
	}

	return datasets, nil
}

func (r *PostgresCatalogRepository) GetDataset(ctx context.Context, id string) (entities.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1`

	dataset, err := scanDataset(r.readPool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Dataset{}, domain.ErrDatasetNotFound
		}
		return entities.Dataset{}, fmt.Errorf("PostgresCatalogRepository.GetDataset - query failed: %w", err)
	}

	return dataset, nil
}

func (r *PostgresCatalogRepository) CreateDataset(ctx context.Context, request domain.CreateDatasetRequest) (entities.Dataset, error) {
	var uploadedAt *time.Time
	if !request.UploadedAt.IsZero() {
		uploadedAt = &request.UploadedAt
	}

	query := `
		INSERT INTO datasets (category_id, name, filename, size, uploaded_at)
		VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()))
		RETURNING ` + datasetColumns

	dataset, err := scanDataset(r.writePool.QueryRow(ctx, query,
		request.CategoryID,
		request.Name,
		request.Filename,
		request.Size,
		uploadedAt,
	))
	if err != nil {
		return entities.Dataset{}, mapWriteError("CreateDataset", err)
	}

	return dataset, nil
}

func (r *PostgresCatalogRepository) DeleteDataset(ctx context.Context, id string) (bool, error) {
	tag, err := r.writePool.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteDataset - query failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

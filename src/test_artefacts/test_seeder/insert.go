package test_seeder

import (
	"context"
	"fmt"

	"ontologycatalog/src/domain"
)

// InsertCategory grava direto na tabela, sem passar pelo repositório, e devolve o id.
func (ts TestSeeder) InsertCategory(ctx context.Context, request domain.CreateCategoryRequest) string {
	query := `
		INSERT INTO categories (name, description, icon, specification)
		VALUES ($1, $2, $3, $4) RETURNING id`

	var id string
	err := ts.pool.QueryRow(ctx, query,
		request.Name,
		request.Description,
		request.Icon,
		request.Specification.Normalized(),
	).Scan(&id)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertCategory failed: %v", err))
	}
	return id
}

// InsertDataset inserts a dataset row for testing
func (ts TestSeeder) InsertDataset(ctx context.Context, request domain.CreateDatasetRequest) string {
	query := `
		INSERT INTO datasets (category_id, name, filename, size)
		VALUES ($1, $2, $3, $4) RETURNING id`

	var id string
	err := ts.pool.QueryRow(ctx, query,
		request.CategoryID,
		request.Name,
		request.Filename,
		request.Size,
	).Scan(&id)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertDataset failed: %v", err))
	}
	return id
}

package repositories

import (
	"context"
	"fmt"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/infra/postgres"

	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, description, icon, specification, created_at`

func scanCategory(row pgx.Row) (entities.Category, error) {
	var category entities.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Icon,
		&category.Specification,
		&category.CreatedAt,
	)
	category.Specification = category.Specification.Normalized()
	return category, err
}

func (r *PostgresCatalogRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY seq`

	rows, err := r.readPool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("PostgresCatalogRepository.ListCategories - query failed: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresCatalogRepository.ListCategories - failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresCatalogRepository.ListCategories - error iterating rows: %w", err)
	}

	return categories, nil
}

func (r *PostgresCatalogRepository) GetCategory(ctx context.Context, id string) (entities.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(r.readPool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Category{}, domain.ErrCategoryNotFound
		}
		return entities.Category{}, fmt.Errorf("PostgresCatalogRepository.GetCategory - query failed: %w", err)
	}

	return category, nil
}

func (r *PostgresCatalogRepository) CreateCategory(ctx context.Context, request domain.CreateCategoryRequest) (entities.Category, error) {
	query := `
		INSERT INTO categories (name, description, icon, specification)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns

	category, err := scanCategory(r.writePool.QueryRow(ctx, query,
		request.Name,
		request.Description,
		request.Icon,
		request.Specification.Normalized(),
	))
	if err != nil {
		return entities.Category{}, mapWriteError("CreateCategory", err)
	}

	return category, nil
}

func (r *PostgresCatalogRepository) UpdateCategory(ctx context.Context, id string, request domain.UpdateCategoryRequest) (entities.Category, error) {
	var specification *entities.Specification
	if request.Specification != nil {
		normalized := request.Specification.Normalized()
		specification = &normalized
	}

	// COALESCE mantém o valor atual para os campos não informados.
	query := `
		UPDATE categories SET
			name          = COALESCE($2::text, name),
			description   = COALESCE($3::text, description),
			icon          = COALESCE($4::text, icon),
			specification = COALESCE($5::jsonb, specification)
		WHERE id = $1
		RETURNING ` + categoryColumns

	category, err := scanCategory(r.writePool.QueryRow(ctx, query,
		id,
		postgres.NewNullString(request.Name),
		postgres.NewNullString(request.Description),
		postgres.NewNullString(request.Icon),
		specification,
	))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Category{}, domain.ErrCategoryNotFound
		}
		return entities.Category{}, mapWriteError("UpdateCategory", err)
	}

	return category, nil
}

// DeleteCategory apaga dependentes e a categoria numa única transação.
func (r *PostgresCatalogRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	tx, err := r.writePool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteCategory - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM datasets WHERE category_id = $1`, id); err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteCategory - failed to delete datasets: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM solutions WHERE category_id = $1`, id); err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteCategory - failed to delete solutions: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteCategory - failed to delete category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteCategory - failed to commit: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

package repositories

import (
	"context"
	"fmt"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/infra/postgres"

	"github.com/jackc/pgx/v5"
)

const solutionColumns = `id, category_id, title, language, code, type`

func scanSolution(row pgx.Row) (entities.Solution, error) {
	var solution entities.Solution
	err := row.Scan(
		&solution.ID,
		&solution.CategoryID,
		&solution.Title,
		&solution.Language,
		&solution.Code,
		&solution.Type,
	)
	return solution, err
}

func (r *PostgresCatalogRepository) ListSolutions(ctx context.Context, categoryID string) ([]entities.Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions WHERE category_id = $1 ORDER BY seq`

	rows, err := r.readPool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("PostgresCatalogRepository.ListSolutions - query failed: %w", err)
	}
	defer rows.Close()

	solutions := make([]entities.Solution, 0)
	for rows.Next() {
		solution, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresCatalogRepository.ListSolutions - failed to scan solution: %w", err)
		}
		solutions = append(solutions, solution)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresCatalogRepository.ListSolutions - error iterating rows: %w", err)
	}

	return solutions, nil
}

func (r *PostgresCatalogRepository) GetSolution(ctx context.Context, id string) (entities.Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions WHERE id = $1`

	solution, err := scanSolution(r.readPool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Solution{}, domain.ErrSolutionNotFound
		}
		return entities.Solution{}, fmt.Errorf("PostgresCatalogRepository.GetSolution - query failed: %w", err)
	}

	return solution, nil
}

func (r *PostgresCatalogRepository) CreateSolution(ctx context.Context, request domain.CreateSolutionRequest) (entities.Solution, error) {
	solutionType := request.Type
	if solutionType == "" {
		solutionType = entities.SolutionTypeQuery
	}

	query := `
		INSERT INTO solutions (category_id, title, language, code, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + solutionColumns

	solution, err := scanSolution(r.writePool.QueryRow(ctx, query,
		request.CategoryID,
		request.Title,
		request.Language,
		request.Code,
		string(solutionType),
	))
	if err != nil {
		return entities.Solution{}, mapWriteError("CreateSolution", err)
	}

	return solution, nil
}

func (r *PostgresCatalogRepository) UpdateSolution(ctx context.Context, id string, request domain.UpdateSolutionRequest) (entities.Solution, error) {
	var solutionType *string
	if request.Type != nil {
		value := string(*request.Type)
		solutionType = &value
	}

	query := `
		UPDATE solutions SET
			category_id = COALESCE($2::varchar, category_id),
			title       = COALESCE($3::text, title),
			language    = COALESCE($4::text, language),
			code        = COALESCE($5::text, code),
			type        = COALESCE($6::text, type)
		WHERE id = $1
		RETURNING ` + solutionColumns

	solution, err := scanSolution(r.writePool.QueryRow(ctx, query,
		id,
		postgres.NewNullString(request.CategoryID),
		postgres.NewNullString(request.Title),
		postgres.NewNullString(request.Language),
		postgres.NewNullString(request.Code),
		postgres.NewNullString(solutionType),
	))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Solution{}, domain.ErrSolutionNotFound
		}
		return entities.Solution{}, mapWriteError("UpdateSolution", err)
	}

	return solution, nil
}

func (r *PostgresCatalogRepository) DeleteSolution(ctx context.Context, id string) (bool, error) {
	tag, err := r.writePool.Exec(ctx, `DELETE FROM solutions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("PostgresCatalogRepository.DeleteSolution - query failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

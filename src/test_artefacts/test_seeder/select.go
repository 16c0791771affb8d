package test_seeder

import (
	"context"
	"fmt"
)

// CountByCategory conta as linhas de datasets ou solutions de uma categoria.
func (ts TestSeeder) CountByCategory(ctx context.Context, table string, categoryID string) (int, error) {
	if table != "datasets" && table != "solutions" {
		return 0, fmt.Errorf("unsupported table %q", table)
	}

	var count int
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE category_id = $1`, table)
	err := ts.pool.QueryRow(ctx, query, categoryID).Scan(&count)
	return count, err
}

func (ts TestSeeder) SelectCategoryNames(ctx context.Context) ([]string, error) {
	rows, err := ts.pool.Query(ctx, `SELECT name FROM categories ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

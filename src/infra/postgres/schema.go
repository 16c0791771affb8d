package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seq mantém a ordem de inserção, que é a única ordem garantida nas listagens.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		seq           BIGSERIAL NOT NULL,
		id            VARCHAR PRIMARY KEY DEFAULT gen_random_uuid()::text,
		name          TEXT NOT NULL UNIQUE,
		description   TEXT NOT NULL,
		icon          TEXT NOT NULL,
		specification JSONB NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS datasets (
		seq         BIGSERIAL NOT NULL,
		id          VARCHAR PRIMARY KEY DEFAULT gen_random_uuid()::text,
		category_id VARCHAR NOT NULL REFERENCES categories (id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		filename    TEXT NOT NULL,
		size        TEXT NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS datasets_category_id_seq_idx ON datasets (category_id, seq);`,
	`CREATE TABLE IF NOT EXISTS solutions (
		seq         BIGSERIAL NOT NULL,
		id          VARCHAR PRIMARY KEY DEFAULT gen_random_uuid()::text,
		category_id VARCHAR NOT NULL REFERENCES categories (id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		language    TEXT NOT NULL,
		code        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'query'
	);`,
	`CREATE INDEX IF NOT EXISTS solutions_category_id_seq_idx ON solutions (category_id, seq);`,
}

// EnsureSchema cria as tabelas do catálogo caso ainda não existam.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, statement := range schemaStatements {
		if _, err := pool.Exec(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply catalog schema: %w", err)
		}
	}
	return nil
}

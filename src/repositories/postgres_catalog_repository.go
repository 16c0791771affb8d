package repositories

import (
	"context"
	"fmt"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalogRepository lê do pool de leitura e escreve no pool de escrita.
// Referências e cascade são garantidos pelo schema (ver postgres.EnsureSchema).
type PostgresCatalogRepository struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewPostgresCatalogRepository(readWriteClient *postgres.ReadWriteClient) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		readPool:  readWriteClient.GetReadPool(),
		writePool: readWriteClient.GetWritePool(),
	}
}

func (r *PostgresCatalogRepository) Ping(ctx context.Context) error {
	if err := r.writePool.Ping(ctx); err != nil {
		return fmt.Errorf("PostgresCatalogRepository.Ping - write pool: %w", err)
	}
	if err := r.readPool.Ping(ctx); err != nil {
		return fmt.Errorf("PostgresCatalogRepository.Ping - read pool: %w", err)
	}
	return nil
}

// mapWriteError traduz violações de constraint para erro de entrada inválida.
func mapWriteError(operation string, err error) error {
	if postgres.IsUniqueViolation(err) || postgres.IsForeignKeyViolation(err) {
		return fmt.Errorf("PostgresCatalogRepository.%s - %w: %v", operation, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("PostgresCatalogRepository.%s - query failed: %w", operation, err)
}

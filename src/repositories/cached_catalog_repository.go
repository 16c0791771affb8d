package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/infra/redis"
)

const (
	categoriesCacheKey    = "catalog:categories"
	categoriesRegistryKey = "registry:categories"

	cacheWriteTimeout = 2 * time.Second
)

func categoryCacheKey(categoryID string) string {
	return fmt.Sprintf("catalog:category:%s", categoryID)
}

func datasetsCacheKey(categoryID string) string {
	return fmt.Sprintf("catalog:category:%s:datasets", categoryID)
}

func solutionsCacheKey(categoryID string) string {
	return fmt.Sprintf("catalog:category:%s:solutions", categoryID)
}

// CategoryRegistryKey agrupa todas as chaves derivadas de uma categoria.
func CategoryRegistryKey(categoryID string) string {
	return fmt.Sprintf("registry:category:%s", categoryID)
}

// CachedCatalogRepository é um cache-aside em Redis sobre qualquer CatalogRepository.
// Erros de cache nunca chegam ao chamador: a leitura cai para o repositório de origem.
type CachedCatalogRepository struct {
	catalogRepository CatalogRepository
	redisClient       *redis.RedisClient
	logger            *slog.Logger
}

func NewCachedCatalogRepository(
	catalogRepository CatalogRepository,
	redisClient *redis.RedisClient,
	logger *slog.Logger,
) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		catalogRepository: catalogRepository,
		redisClient:       redisClient,
		logger:            logger,
	}
}

func (r *CachedCatalogRepository) Ping(ctx context.Context) error {
	if err := r.redisClient.HealthCheck(ctx); err != nil {
		r.logger.Warn("Redis health check failed", "error", err)
	}
	return r.catalogRepository.Ping(ctx)
}

// ############################################################
// ######################### LEITURAS #########################
// ############################################################

func (r *CachedCatalogRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return readThrough(ctx, r, categoriesCacheKey, []string{categoriesRegistryKey}, func() ([]entities.Category, error) {
		return r.catalogRepository.ListCategories(ctx)
	})
}

func (r *CachedCatalogRepository) GetCategory(ctx context.Context, id string) (entities.Category, error) {
	return readThrough(ctx, r, categoryCacheKey(id), []string{CategoryRegistryKey(id)}, func() (entities.Category, error) {
		return r.catalogRepository.GetCategory(ctx, id)
	})
}

func (r *CachedCatalogRepository) ListDatasets(ctx context.Context, categoryID string) ([]entities.Dataset, error) {
	return readThrough(ctx, r, datasetsCacheKey(categoryID), []string{CategoryRegistryKey(categoryID)}, func() ([]entities.Dataset, error) {
		return r.catalogRepository.ListDatasets(ctx, categoryID)
	})
}

func (r *CachedCatalogRepository) ListSolutions(ctx context.Context, categoryID string) ([]entities.Solution, error) {
	return readThrough(ctx, r, solutionsCacheKey(categoryID), []string{CategoryRegistryKey(categoryID)}, func() ([]entities.Solution, error) {
		return r.catalogRepository.ListSolutions(ctx, categoryID)
	})
}

// Leituras individuais de dataset/solution não são cacheadas: só a UI de remoção as usa.
func (r *CachedCatalogRepository) GetDataset(ctx context.Context, id string) (entities.Dataset, error) {
	return r.catalogRepository.GetDataset(ctx, id)
}

func (r *CachedCatalogRepository) GetSolution(ctx context.Context, id string) (entities.Solution, error) {
	return r.catalogRepository.GetSolution(ctx, id)
}

// ############################################################
// ######################### ESCRITAS #########################
// ############################################################

func (r *CachedCatalogRepository) CreateCategory(ctx context.Context, request domain.CreateCategoryRequest) (entities.Category, error) {
	category, err := r.catalogRepository.CreateCategory(ctx, request)
	if err != nil {
		return category, err
	}

	r.invalidate(ctx, categoriesRegistryKey)
	return category, nil
}

func (r *CachedCatalogRepository) UpdateCategory(ctx context.Context, id string, request domain.UpdateCategoryRequest) (entities.Category, error) {
	category, err := r.catalogRepository.UpdateCategory(ctx, id, request)
	if err != nil {
		return category, err
	}

	r.invalidate(ctx, categoriesRegistryKey, CategoryRegistryKey(id))
	return category, nil
}

func (r *CachedCatalogRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	deleted, err := r.catalogRepository.DeleteCategory(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	r.invalidate(ctx, categoriesRegistryKey, CategoryRegistryKey(id))
	return true, nil
}

func (r *CachedCatalogRepository) CreateDataset(ctx context.Context, request domain.CreateDatasetRequest) (entities.Dataset, error) {
	dataset, err := r.catalogRepository.CreateDataset(ctx, request)
	if err != nil {
		return dataset, err
	}

	r.invalidate(ctx, CategoryRegistryKey(dataset.CategoryID))
	return dataset, nil
}

func (r *CachedCatalogRepository) DeleteDataset(ctx context.Context, id string) (bool, error) {
	dataset, err := r.catalogRepository.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDatasetNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := r.catalogRepository.DeleteDataset(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	r.invalidate(ctx, CategoryRegistryKey(dataset.CategoryID))
	return true, nil
}

func (r *CachedCatalogRepository) CreateSolution(ctx context.Context, request domain.CreateSolutionRequest) (entities.Solution, error) {
	solution, err := r.catalogRepository.CreateSolution(ctx, request)
	if err != nil {
		return solution, err
	}

	r.invalidate(ctx, CategoryRegistryKey(solution.CategoryID))
	return solution, nil
}

func (r *CachedCatalogRepository) UpdateSolution(ctx context.Context, id string, request domain.UpdateSolutionRequest) (entities.Solution, error) {
	previous, err := r.catalogRepository.GetSolution(ctx, id)
	if err != nil {
		return entities.Solution{}, err
	}

	solution, err := r.catalogRepository.UpdateSolution(ctx, id, request)
	if err != nil {
		return solution, err
	}

	r.invalidate(ctx, CategoryRegistryKey(previous.CategoryID), CategoryRegistryKey(solution.CategoryID))
	return solution, nil
}

func (r *CachedCatalogRepository) DeleteSolution(ctx context.Context, id string) (bool, error) {
	solution, err := r.catalogRepository.GetSolution(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSolutionNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := r.catalogRepository.DeleteSolution(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	r.invalidate(ctx, CategoryRegistryKey(solution.CategoryID))
	return true, nil
}

// InvalidateByCategoryIDs é usado pelo consumer de eventos para manter coerentes os
// caches de outras réplicas da API.
func (r *CachedCatalogRepository) InvalidateByCategoryIDs(ctx context.Context, categoryIDs []string) error {
	registryKeys := make([]string, 0, len(categoryIDs)+1)
	registryKeys = append(registryKeys, categoriesRegistryKey)
	for _, categoryID := range categoryIDs {
		registryKeys = append(registryKeys, CategoryRegistryKey(categoryID))
	}

	return r.redisClient.InvalidateRegistries(ctx, registryKeys)
}

func (r *CachedCatalogRepository) invalidate(ctx context.Context, registryKeys ...string) {
	// A invalidação roda mesmo que o request tenha sido cancelado logo após a escrita.
	invalidateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	if err := r.redisClient.InvalidateRegistries(invalidateCtx, registryKeys); err != nil {
		r.logger.Error("Failed to invalidate cache", "registries", registryKeys, "error", err)
	}
}

func readThrough[T any](
	ctx context.Context,
	r *CachedCatalogRepository,
	cacheKey string,
	registryKeys []string,
	load func() (T, error),
) (T, error) {
	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if err != nil {
		r.logger.Warn("Cache error", "key", cacheKey, "error", err)
	}

	if found && err == nil {
		var cached T
		if err := json.Unmarshal([]byte(cachedJSON), &cached); err == nil {
			r.logger.Debug("Cache HIT", "key", cacheKey)
			return cached, nil
		}
		r.logger.Warn("Failed to unmarshal cached data", "key", cacheKey)
	}

	r.logger.Debug("Cache MISS", "key", cacheKey)

	value, err := load()
	if err != nil {
		return value, err
	}

	dataJSON, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache data", "key", cacheKey, "error", err)
		return value, nil
	}

	setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	if err := r.redisClient.SetWithRegistry(setCtx, cacheKey, string(dataJSON), registryKeys); err != nil {
		r.logger.Error("Failed to set cache with registry", "key", cacheKey, "error", err)
	}

	return value, nil
}

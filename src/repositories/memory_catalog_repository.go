package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"

	"github.com/google/uuid"
)

// MemoryCatalogRepository guarda tudo em mapas, com um slice de ids por coleção
// para preservar a ordem de inserção. Replica explicitamente as constraints do
// schema relacional (unique em name, FK e cascade).
type MemoryCatalogRepository struct {
	mu sync.RWMutex

	categories    map[string]entities.Category
	categoryOrder []string
	datasets      map[string]entities.Dataset
	datasetOrder  []string
	solutions     map[string]entities.Solution
	solutionOrder []string

	now   func() time.Time
	newID func() string
}

func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		categories: make(map[string]entities.Category),
		datasets:   make(map[string]entities.Dataset),
		solutions:  make(map[string]entities.Solution),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

func (r *MemoryCatalogRepository) Ping(ctx context.Context) error {
	return nil
}

// ############################################################
// ####################### CATEGORIAS #########################
// ############################################################

func (r *MemoryCatalogRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]entities.Category, 0, len(r.categoryOrder))
	for _, id := range r.categoryOrder {
		categories = append(categories, r.categories[id].Clone())
	}
	return categories, nil
}

func (r *MemoryCatalogRepository) GetCategory(ctx context.Context, id string) (entities.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return entities.Category{}, domain.ErrCategoryNotFound
	}
	return category.Clone(), nil
}

func (r *MemoryCatalogRepository) CreateCategory(ctx context.Context, request domain.CreateCategoryRequest) (entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(request.Name, "") {
		return entities.Category{}, fmt.Errorf("%w: category name %q already exists", domain.ErrInvalidInput, request.Name)
	}

	category := entities.Category{
		ID:            r.newID(),
		Name:          request.Name,
		Description:   request.Description,
		Icon:          request.Icon,
		Specification: request.Specification.Normalized(),
		CreatedAt:     r.now(),
	}

	r.categories[category.ID] = category
	r.categoryOrder = append(r.categoryOrder, category.ID)

	return category.Clone(), nil
}

func (r *MemoryCatalogRepository) UpdateCategory(ctx context.Context, id string, request domain.UpdateCategoryRequest) (entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return entities.Category{}, domain.ErrCategoryNotFound
	}

	if request.Name != nil {
		if r.nameTaken(*request.Name, id) {
			return entities.Category{}, fmt.Errorf("%w: category name %q already exists", domain.ErrInvalidInput, *request.Name)
		}
		category.Name = *request.Name
	}
	if request.Description != nil {
		category.Description = *request.Description
	}
	if request.Icon != nil {
		category.Icon = *request.Icon
	}
	if request.Specification != nil {
		category.Specification = request.Specification.Normalized()
	}

	r.categories[id] = category
	return category.Clone(), nil
}

// DeleteCategory remove a categoria e, sob o mesmo lock, seus datasets e solutions.
func (r *MemoryCatalogRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return false, nil
	}

	delete(r.categories, id)
	r.categoryOrder = removeID(r.categoryOrder, id)

	r.datasetOrder = slices.DeleteFunc(r.datasetOrder, func(datasetID string) bool {
		if r.datasets[datasetID].CategoryID != id {
			return false
		}
		delete(r.datasets, datasetID)
		return true
	})

	r.solutionOrder = slices.DeleteFunc(r.solutionOrder, func(solutionID string) bool {
		if r.solutions[solutionID].CategoryID != id {
			return false
		}
		delete(r.solutions, solutionID)
		return true
	})

	return true, nil
}

// ############################################################
// ######################## DATASETS ##########################
// ############################################################

func (r *MemoryCatalogRepository) ListDatasets(ctx context.Context, categoryID string) ([]entities.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	datasets := make([]entities.Dataset, 0)
	for _, id := range r.datasetOrder {
		if dataset := r.datasets[id]; dataset.CategoryID == categoryID {
			datasets = append(datasets, dataset)
		}
	}
	return datasets, nil
}

func (r *MemoryCatalogRepository) GetDataset(ctx context.Context, id string) (entities.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dataset, ok := r.datasets[id]
	if !ok {
		return entities.Dataset{}, domain.ErrDatasetNotFound
	}
	return dataset, nil
}

func (r *MemoryCatalogRepository) CreateDataset(ctx context.Context, request domain.CreateDatasetRequest) (entities.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[request.CategoryID]; !ok {
		return entities.Dataset{}, fmt.Errorf("%w: category %s does not exist", domain.ErrInvalidInput, request.CategoryID)
	}

	dataset := entities.Dataset{
		ID:         r.newID(),
		CategoryID: request.CategoryID,
		Name:       request.Name,
		Filename:   request.Filename,
		Size:       request.Size,
		UploadedAt: request.UploadedAt,
	}
	if dataset.UploadedAt.IsZero() {
		dataset.UploadedAt = r.now()
	}

	r.datasets[dataset.ID] = dataset
	r.datasetOrder = append(r.datasetOrder, dataset.ID)

	return dataset, nil
}

func (r *MemoryCatalogRepository) DeleteDataset(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.datasets[id]; !ok {
		return false, nil
	}

	delete(r.datasets, id)
	r.datasetOrder = removeID(r.datasetOrder, id)
	return true, nil
}

// ############################################################
// ######################## SOLUTIONS #########################
// ############################################################

func (r *MemoryCatalogRepository) ListSolutions(ctx context.Context, categoryID string) ([]entities.Solution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	solutions := make([]entities.Solution, 0)
	for _, id := range r.solutionOrder {
		if solution := r.solutions[id]; solution.CategoryID == categoryID {
			solutions = append(solutions, solution)
		}
	}
	return solutions, nil
}

func (r *MemoryCatalogRepository) GetSolution(ctx context.Context, id string) (entities.Solution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	solution, ok := r.solutions[id]
	if !ok {
		return entities.Solution{}, domain.ErrSolutionNotFound
	}
	return solution, nil
}

func (r *MemoryCatalogRepository) CreateSolution(ctx context.Context, request domain.CreateSolutionRequest) (entities.Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[request.CategoryID]; !ok {
		return entities.Solution{}, fmt.Errorf("%w: category %s does not exist", domain.ErrInvalidInput, request.CategoryID)
	}

	solutionType := request.Type
	if solutionType == "" {
		solutionType = entities.SolutionTypeQuery
	}

	solution := entities.Solution{
		ID:         r.newID(),
		CategoryID: request.CategoryID,
		Title:      request.Title,
		Language:   request.Language,
		Code:       request.Code,
		Type:       solutionType,
	}

	r.solutions[solution.ID] = solution
	r.solutionOrder = append(r.solutionOrder, solution.ID)

	return solution, nil
}

func (r *MemoryCatalogRepository) UpdateSolution(ctx context.Context, id string, request domain.UpdateSolutionRequest) (entities.Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	solution, ok := r.solutions[id]
	if !ok {
		return entities.Solution{}, domain.ErrSolutionNotFound
	}

	if request.CategoryID != nil {
		if _, ok := r.categories[*request.CategoryID]; !ok {
			return entities.Solution{}, fmt.Errorf("%w: category %s does not exist", domain.ErrInvalidInput, *request.CategoryID)
		}
		solution.CategoryID = *request.CategoryID
	}
	if request.Title != nil {
		solution.Title = *request.Title
	}
	if request.Language != nil {
		solution.Language = *request.Language
	}
	if request.Code != nil {
		solution.Code = *request.Code
	}
	if request.Type != nil {
		solution.Type = *request.Type
	}

	r.solutions[id] = solution
	return solution, nil
}

func (r *MemoryCatalogRepository) DeleteSolution(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.solutions[id]; !ok {
		return false, nil
	}

	delete(r.solutions, id)
	r.solutionOrder = removeID(r.solutionOrder, id)
	return true, nil
}

func (r *MemoryCatalogRepository) nameTaken(name string, exceptID string) bool {
	for id, category := range r.categories {
		if id != exceptID && category.Name == name {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(candidate string) bool { return candidate == id })
}

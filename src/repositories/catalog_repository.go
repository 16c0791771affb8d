package repositories

import (
	"context"
	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
)

// CatalogRepository é o contrato de persistência das três coleções.
//
// Regras comuns a todas as implementações:
//   - listagens seguem a ordem de inserção;
//   - Get* devolve o sentinel Err*NotFound do domain para ids inexistentes;
//   - Update* só altera os campos informados;
//   - Delete* devolve false (sem erro) quando o id não existe;
//   - DeleteCategory remove datasets e solutions da categoria;
//   - nome de categoria duplicado ou categoryId inexistente geram domain.ErrInvalidInput.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]entities.Category, error)
	GetCategory(ctx context.Context, id string) (entities.Category, error)
	CreateCategory(ctx context.Context, request domain.CreateCategoryRequest) (entities.Category, error)
	UpdateCategory(ctx context.Context, id string, request domain.UpdateCategoryRequest) (entities.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	ListDatasets(ctx context.Context, categoryID string) ([]entities.Dataset, error)
	GetDataset(ctx context.Context, id string) (entities.Dataset, error)
	CreateDataset(ctx context.Context, request domain.CreateDatasetRequest) (entities.Dataset, error)
	DeleteDataset(ctx context.Context, id string) (bool, error)

	ListSolutions(ctx context.Context, categoryID string) ([]entities.Solution, error)
	GetSolution(ctx context.Context, id string) (entities.Solution, error)
	CreateSolution(ctx context.Context, request domain.CreateSolutionRequest) (entities.Solution, error)
	UpdateSolution(ctx context.Context, id string, request domain.UpdateSolutionRequest) (entities.Solution, error)
	DeleteSolution(ctx context.Context, id string) (bool, error)

	Ping(ctx context.Context) error
}

package catalog

import (
	"context"
	"fmt"
	"time"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
)

type seedCategory struct {
	category  domain.CreateCategoryRequest
	datasets  []seedDataset
	solutions []domain.CreateSolutionRequest
}

type seedDataset struct {
	filename string
	size     string
	age      time.Duration
}

var defaultCatalog = []seedCategory{
	{
		category: domain.CreateCategoryRequest{
			Name:        "Screen Description",
			Description: "Screen description ontology focuses on the semantic representation of visual interface elements and their relationships within digital environments.",
			Icon:        "fas fa-desktop",
			Specification: entities.Specification{
				Definition:   "Screen description ontology focuses on the semantic representation of visual interface elements and their relationships within digital environments.",
				CoreConcepts: []string{"Visual Elements", "Layout Structure", "Interaction Patterns", "Accessibility"},
				Properties:   []string{"hasComponent", "containsElement", "hasPosition", "hasSize", "hasColor"},
			},
		},
		datasets: []seedDataset{
			{filename: "screen_elements.owl", size: "2.4 MB", age: 2 * time.Hour},
			{filename: "ui_components.rdf", size: "1.8 MB", age: 24 * time.Hour},
		},
		solutions: []domain.CreateSolutionRequest{
			{
				Title:    "SPARQL Query Example",
				Language: "sparql",
				Type:     entities.SolutionTypeQuery,
				Code: `# SPARQL Query Example
PREFIX ui: <http://example.org/ui#>
PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>

SELECT ?element ?type ?position
WHERE {
  ?element rdf:type ?type .
  ?element ui:hasPosition ?position .
  FILTER(?type = ui:Button)
}`,
			},
		},
	},
	{
		category: domain.CreateCategoryRequest{
			Name:        "Robot Meet World",
			Description: "Robot Meet World ontology defines the semantic relationships between robotic systems and their physical environment interactions.",
			Icon:        "fas fa-robot",
			Specification: entities.Specification{
				Definition:   "Robot Meet World ontology defines the semantic relationships between robotic systems and their physical environment interactions.",
				CoreConcepts: []string{"Robot Agents", "Physical Objects", "Environment", "Actions", "Sensors"},
				Properties:   []string{"canPerform", "hasLocation", "interactsWith", "hasCapability", "observes"},
			},
		},
		datasets: []seedDataset{
			{filename: "robot_actions.owl", size: "3.2 MB", age: 4 * time.Hour},
			{filename: "environment_model.rdf", size: "5.1 MB", age: 6 * time.Hour},
		},
		solutions: []domain.CreateSolutionRequest{
			{
				Title:    "Robot Action Query",
				Language: "sparql",
				Type:     entities.SolutionTypeQuery,
				Code: `# Robot Action Query
PREFIX robot: <http://example.org/robot#>
PREFIX geo: <http://www.w3.org/2003/01/geo/wgs84_pos#>

SELECT ?robot ?action ?object
WHERE {
  ?robot robot:canPerform ?action .
  ?action robot:appliesTo ?object .
  ?robot geo:location ?location .
}`,
			},
		},
	},
}

// SeedDefaults insere as categorias padrão quando o catálogo está vazio.
// Devolve quantas categorias foram criadas.
func (cs *CatalogService) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := cs.catalogRepository.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("CatalogService.SeedDefaults - failed to list categories: %w", err)
	}

	if len(existing) > 0 {
		cs.logger.Debug("Catalog already populated, skipping seed", "categories", len(existing))
		return 0, nil
	}

	now := time.Now().UTC()

	for _, seed := range defaultCatalog {
		category, err := cs.catalogRepository.CreateCategory(ctx, seed.category)
		if err != nil {
			return 0, fmt.Errorf("CatalogService.SeedDefaults - failed to create %q: %w", seed.category.Name, err)
		}

		for _, dataset := range seed.datasets {
			_, err := cs.catalogRepository.CreateDataset(ctx, domain.CreateDatasetRequest{
				CategoryID: category.ID,
				Name:       dataset.filename,
				Filename:   dataset.filename,
				Size:       dataset.size,
				UploadedAt: now.Add(-dataset.age),
			})
			if err != nil {
				return 0, fmt.Errorf("CatalogService.SeedDefaults - failed to create dataset %s: %w", dataset.filename, err)
			}
		}

		for _, solution := range seed.solutions {
			solution.CategoryID = category.ID
			if _, err := cs.catalogRepository.CreateSolution(ctx, solution); err != nil {
				return 0, fmt.Errorf("CatalogService.SeedDefaults - failed to create solution %q: %w", solution.Title, err)
			}
		}
	}

	cs.logger.Info("Seeded default catalog", "categories", len(defaultCatalog))
	return len(defaultCatalog), nil
}

package web

import (
	"errors"
	"fmt"
	"net/http"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/services/intake"
)

const uploadFieldName = "file"

var demoCategory = domain.CreateCategoryRequest{
	Name:        "New Category",
	Description: "A new ontology category",
	Icon:        "fas fa-folder",
	Specification: entities.Specification{
		Definition:   "New category definition",
		CoreConcepts: []string{"Concept 1", "Concept 2"},
		Properties:   []string{"property1", "property2"},
	},
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := catalogView{Categories: categories}
	if len(categories) > 0 {
		view.ActiveID = categories[0].ID
	}

	h.render(w, http.StatusOK, "page", view)
}

func (h *Handler) SpecificationPanel(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogService.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "specification", category)
}

func (h *Handler) GraphPanel(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogService.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "graph", buildGraph(category))
}

func (h *Handler) DatasetsPanel(w http.ResponseWriter, r *http.Request) {
	h.renderDatasets(w, r, http.StatusOK, r.PathValue("id"))
}

func (h *Handler) SolutionsPanel(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogService.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	solutions, err := h.catalogService.ListSolutions(r.Context(), category.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	query := r.URL.Query()
	view := buildSolutions(category, solutions, query.Get("language"), query.Get("type"))

	h.render(w, http.StatusOK, "solutions", view)
}

// CreateDemoCategory cria uma categoria de exemplo, numerando o nome se já existir.
func (h *Handler) CreateDemoCategory(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	request := demoCategory
	request.Name = nextDemoName(categories)

	category, err := h.catalogService.CreateCategory(r.Context(), request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	categories = append(categories, category)

	withToast(w, "Success", "Category created successfully")
	h.render(w, http.StatusCreated, "catalog", catalogView{Categories: categories, ActiveID: category.ID})
}

func nextDemoName(categories []entities.Category) string {
	taken := make(map[string]bool, len(categories))
	for _, category := range categories {
		taken[category.Name] = true
	}

	name := demoCategory.Name
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s %d", demoCategory.Name, i)
	}
	return name
}

func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	r.Body = http.MaxBytesReader(w, r.Body, intake.MaxFileSize+(1<<20))

	reader, err := r.MultipartReader()
	if err != nil {
		h.fail(w, r, intake.ErrNoFile)
		return
	}

	part, err := intake.NextFile(reader, uploadFieldName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer part.Close()

	if _, err := h.catalogService.UploadDataset(r.Context(), categoryID, part.FileName(), part); err != nil {
		h.fail(w, r, err)
		return
	}

	withToast(w, "Success", "Dataset uploaded successfully")
	h.renderDatasets(w, r, http.StatusCreated, categoryID)
}

func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.catalogService.GetDataset(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.catalogService.DeleteDataset(r.Context(), dataset.ID); err != nil {
		h.fail(w, r, err)
		return
	}

	withToast(w, "Success", "Dataset deleted successfully")
	h.renderDatasets(w, r, http.StatusOK, dataset.CategoryID)
}

func (h *Handler) renderDatasets(w http.ResponseWriter, r *http.Request, status int, categoryID string) {
	datasets, err := h.catalogService.ListDatasets(r.Context(), categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, status, "datasets", datasetsView{CategoryID: categoryID, Datasets: datasets})
}

// fail responde só com status e texto curto: o cliente mostra um toast genérico
// e mantém o painel anterior.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrDatasetNotFound),
		errors.Is(err, domain.ErrSolutionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, intake.ErrInvalidFileType),
		errors.Is(err, intake.ErrFileTooLarge),
		errors.Is(err, intake.ErrNoFile):
		status = http.StatusBadRequest
	default:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusBadRequest
		}
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("UI request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		h.logger.Debug("UI request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	http.Error(w, http.StatusText(status), status)
}

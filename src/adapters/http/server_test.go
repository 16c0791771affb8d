package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	httpadapter "ontologycatalog/src/adapters/http"
	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/repositories"
	"ontologycatalog/src/services/catalog"
	"ontologycatalog/src/services/events"
	"ontologycatalog/src/test_artefacts/comparer"
)

type errorBody struct {
	Message string `json:"message"`
}

// unavailableRepository simula o store fora do ar.
type unavailableRepository struct {
	repositories.CatalogRepository
}

var errStoreDown = errors.New("connection refused")

func (unavailableRepository) Ping(ctx context.Context) error {
	return errStoreDown
}

func (unavailableRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return nil, errStoreDown
}

var _ = Describe("Server", func() {
	var (
		handler http.Handler
		logger  *slog.Logger
	)

	newHandler := func(repository repositories.CatalogRepository) http.Handler {
		catalogService := catalog.NewCatalogService(repository, events.NoopEventPublisher{}, logger)
		return httpadapter.NewServer(logger, 0, nil, catalogService).Handler()
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		handler = newHandler(repositories.NewMemoryCatalogRepository())
	})

	do := func(method string, path string, body any) *httptest.ResponseRecorder {
		var reader io.Reader
		switch value := body.(type) {
		case nil:
		case string:
			reader = bytes.NewBufferString(value)
		default:
			payload, err := json.Marshal(value)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(payload)
		}

		request := httptest.NewRequest(method, path, reader)
		if reader != nil {
			request.Header.Set("Content-Type", "application/json")
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	upload := func(categoryID string, filename string, size int) *httptest.ResponseRecorder {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(make([]byte, size))
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		request := httptest.NewRequest(http.MethodPost, "/api/categories/"+categoryID+"/datasets", body)
		request.Header.Set("Content-Type", writer.FormDataContentType())
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	decode := func(recorder *httptest.ResponseRecorder, target any) {
		Expect(json.Unmarshal(recorder.Body.Bytes(), target)).To(Succeed())
	}

	categoryPayload := func(name string) map[string]any {
		return map[string]any{
			"name":        name,
			"description": "Ontologies for describing UI screens",
			"icon":        "fas fa-desktop",
			"specification": map[string]any{
				"definition":   "Describes elements on a screen",
				"coreConcepts": []string{"Screen", "Element"},
				"properties":   []string{"hasPosition"},
			},
		}
	}

	createCategory := func(name string) entities.Category {
		recorder := do(http.MethodPost, "/api/categories", categoryPayload(name))
		Expect(recorder.Code).To(Equal(http.StatusCreated))

		var category entities.Category
		decode(recorder, &category)
		return category
	}

	Describe("health", func() {
		It("should answer liveness", func() {
			recorder := do(http.MethodGet, "/health", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"status":"ok"}`))
		})

		It("should answer readiness when the store responds", func() {
			recorder := do(http.MethodGet, "/ready", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"status":"ready"}`))
		})

		It("should fail readiness when the store is down", func() {
			handler = newHandler(unavailableRepository{})

			recorder := do(http.MethodGet, "/ready", nil)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Body.String()).To(MatchJSON(`{"status":"unavailable"}`))
		})
	})

	Describe("categories", func() {
		It("should return what was created", func() {
			// ARRANGE
			created := createCategory("Screen Description")

			// ACT
			recorder := do(http.MethodGet, "/api/categories/"+created.ID, nil)

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))

			var fetched entities.Category
			decode(recorder, &fetched)
			Expect(fetched.ID).NotTo(BeEmpty())
			Expect(fetched.CreatedAt.IsZero()).To(BeFalse())
			Expect(fetched).To(BeComparableTo(entities.Category{
				ID:          created.ID,
				Name:        "Screen Description",
				Description: "Ontologies for describing UI screens",
				Icon:        "fas fa-desktop",
				Specification: entities.Specification{
					Definition:   "Describes elements on a screen",
					CoreConcepts: []string{"Screen", "Element"},
					Properties:   []string{"hasPosition"},
				},
				CreatedAt: created.CreatedAt,
			}, comparer.TimeWithinTolerance(1)))
		})

		It("should list categories in insertion order", func() {
			createCategory("First")
			createCategory("Second")

			recorder := do(http.MethodGet, "/api/categories", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var categories []entities.Category
			decode(recorder, &categories)
			Expect(categories).To(HaveLen(2))
			Expect(categories[0].Name).To(Equal("First"))
			Expect(categories[1].Name).To(Equal("Second"))
		})

		It("should return an empty array, not null, for an empty catalog", func() {
			recorder := do(http.MethodGet, "/api/categories", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`[]`))
		})

		It("should hand out distinct ids to sequential creates", func() {
			first := createCategory("One")
			second := createCategory("Two")

			Expect(first.ID).NotTo(Equal(second.ID))
			Expect(do(http.MethodGet, "/api/categories/"+first.ID, nil).Code).To(Equal(http.StatusOK))
			Expect(do(http.MethodGet, "/api/categories/"+second.ID, nil).Code).To(Equal(http.StatusOK))
		})

		It("should return 404 for an unknown id", func() {
			recorder := do(http.MethodGet, "/api/categories/missing", nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("Category not found"))
		})

		DescribeTable("rejecting invalid payloads",
			func(payload any, detail string) {
				recorder := do(http.MethodPost, "/api/categories", payload)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
				var body errorBody
				decode(recorder, &body)
				Expect(body.Message).To(HavePrefix("Invalid category data: "))
				Expect(body.Message).To(ContainSubstring(detail))
			},
			Entry("missing name", map[string]any{
				"description": "d", "icon": "i",
				"specification": map[string]any{"definition": "x", "coreConcepts": []string{}, "properties": []string{}},
			}, "name is required"),
			Entry("empty name", map[string]any{
				"name": "", "description": "d", "icon": "i",
				"specification": map[string]any{"definition": "x", "coreConcepts": []string{}, "properties": []string{}},
			}, "name must be at least 1 characters"),
			Entry("missing specification", map[string]any{"name": "n", "description": "d", "icon": "i"}, "specification is required"),
			Entry("missing core concepts", map[string]any{
				"name": "n", "description": "d", "icon": "i",
				"specification": map[string]any{"definition": "x", "properties": []string{}},
			}, "specification.coreConcepts is required"),
			Entry("malformed json", "{", "malformed JSON body"),
		)

		It("should reject a duplicated name", func() {
			createCategory("Robot Meet World")

			recorder := do(http.MethodPost, "/api/categories", categoryPayload("Robot Meet World"))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal(`Invalid category data: category name "Robot Meet World" already exists`))
		})

		It("should change only the fields sent on update", func() {
			// ARRANGE
			created := createCategory("Partial")

			// ACT
			recorder := do(http.MethodPut, "/api/categories/"+created.ID, map[string]any{"description": "new description"})

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusOK))
			var updated entities.Category
			decode(recorder, &updated)
			Expect(updated.Description).To(Equal("new description"))
			Expect(updated.Name).To(Equal(created.Name))
			Expect(updated.Icon).To(Equal(created.Icon))
			Expect(updated.Specification).To(BeComparableTo(created.Specification))
		})

		It("should return 404 when updating an unknown id and create nothing", func() {
			recorder := do(http.MethodPut, "/api/categories/missing", map[string]any{"name": "ghost"})

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodGet, "/api/categories", nil).Body.String()).To(MatchJSON(`[]`))
		})

		It("should delete once and then report not found", func() {
			created := createCategory("Disposable")

			first := do(http.MethodDelete, "/api/categories/"+created.ID, nil)
			second := do(http.MethodDelete, "/api/categories/"+created.ID, nil)

			Expect(first.Code).To(Equal(http.StatusNoContent))
			Expect(first.Body.Len()).To(BeZero())
			Expect(second.Code).To(Equal(http.StatusNotFound))
		})

		It("should cascade the delete to datasets and solutions", func() {
			// ARRANGE
			created := createCategory("Cascade")
			datasetRecorder := upload(created.ID, "model.owl", 128)
			Expect(datasetRecorder.Code).To(Equal(http.StatusCreated))
			var dataset entities.Dataset
			decode(datasetRecorder, &dataset)

			solutionRecorder := do(http.MethodPost, "/api/categories/"+created.ID+"/solutions", map[string]any{
				"title": "Query", "language": "sparql", "code": "SELECT * WHERE { ?s ?p ?o }",
			})
			Expect(solutionRecorder.Code).To(Equal(http.StatusCreated))
			var solution entities.Solution
			decode(solutionRecorder, &solution)

			// ACT
			Expect(do(http.MethodDelete, "/api/categories/"+created.ID, nil).Code).To(Equal(http.StatusNoContent))

			// ASSERT
			Expect(do(http.MethodGet, "/api/categories", nil).Body.String()).To(MatchJSON(`[]`))
			Expect(do(http.MethodDelete, "/api/datasets/"+dataset.ID, nil).Code).To(Equal(http.StatusNotFound))
			Expect(do(http.MethodDelete, "/api/solutions/"+solution.ID, nil).Code).To(Equal(http.StatusNotFound))
		})

		It("should hide internal errors behind a generic message", func() {
			handler = newHandler(unavailableRepository{})

			recorder := do(http.MethodGet, "/api/categories", nil)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal(domain.ErrUnavailableServer.Error()))
			Expect(body.Message).NotTo(ContainSubstring("connection refused"))
		})
	})

	Describe("datasets", func() {
		var category entities.Category

		BeforeEach(func() {
			category = createCategory("Datasets")
		})

		It("should accept an ontology file and format its size", func() {
			// ACT
			recorder := upload(category.ID, "x.owl", 2516582)

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusCreated))
			var dataset entities.Dataset
			decode(recorder, &dataset)
			Expect(dataset.ID).NotTo(BeEmpty())
			Expect(dataset.Name).To(Equal("x.owl"))
			Expect(dataset.Filename).To(Equal("x.owl"))
			Expect(dataset.Size).To(Equal("2.4 MB"))
			Expect(dataset.CategoryID).To(Equal(category.ID))
		})

		It("should reject an executable", func() {
			recorder := upload(category.ID, "x.exe", 16)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("Invalid file type. Only OWL, RDF, TTL, and JSON-LD files are allowed."))
		})

		It("should reject a file above 10 MB", func() {
			recorder := upload(category.ID, "huge.rdf", 10<<20+1)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("File too large. Maximum size is 10 MB."))
		})

		It("should reject a request without a file", func() {
			recorder := do(http.MethodPost, "/api/categories/"+category.ID+"/datasets", map[string]any{"name": "x.owl"})

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("No file uploaded"))
		})

		It("should reject an upload to an unknown category", func() {
			recorder := upload("missing", "x.owl", 16)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should list only the datasets of the requested category", func() {
			// ARRANGE
			other := createCategory("Other")
			Expect(upload(category.ID, "a.owl", 1).Code).To(Equal(http.StatusCreated))
			Expect(upload(other.ID, "b.owl", 1).Code).To(Equal(http.StatusCreated))
			Expect(upload(category.ID, "c.ttl", 1).Code).To(Equal(http.StatusCreated))

			// ACT
			recorder := do(http.MethodGet, "/api/categories/"+category.ID+"/datasets", nil)

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusOK))
			var datasets []entities.Dataset
			decode(recorder, &datasets)
			Expect(datasets).To(HaveLen(2))
			Expect(datasets[0].Filename).To(Equal("a.owl"))
			Expect(datasets[1].Filename).To(Equal("c.ttl"))
		})

		It("should return an empty list for an unknown category", func() {
			recorder := do(http.MethodGet, "/api/categories/missing/datasets", nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`[]`))
		})

		It("should delete once and then report not found", func() {
			created := upload(category.ID, "a.owl", 1)
			var dataset entities.Dataset
			decode(created, &dataset)

			Expect(do(http.MethodDelete, "/api/datasets/"+dataset.ID, nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodDelete, "/api/datasets/"+dataset.ID, nil).Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("solutions", func() {
		var category entities.Category

		BeforeEach(func() {
			category = createCategory("Solutions")
		})

		createSolution := func(categoryID string, payload map[string]any) *httptest.ResponseRecorder {
			return do(http.MethodPost, "/api/categories/"+categoryID+"/solutions", payload)
		}

		It("should default the type to query and take the category from the path", func() {
			// ACT
			recorder := createSolution(category.ID, map[string]any{
				"title": "SPARQL Query Example", "language": "sparql", "code": "SELECT ?s WHERE { ?s ?p ?o }",
				"categoryId": "ignored",
			})

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusCreated))
			var solution entities.Solution
			decode(recorder, &solution)
			Expect(solution.Type).To(Equal(entities.SolutionTypeQuery))
			Expect(solution.CategoryID).To(Equal(category.ID))
		})

		It("should reject an unknown type", func() {
			recorder := createSolution(category.ID, map[string]any{
				"title": "t", "language": "python", "code": "print()", "type": "tutorial",
			})

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("Invalid solution data: type must be one of: query implementation documentation"))
		})

		It("should reject a missing code", func() {
			recorder := createSolution(category.ID, map[string]any{"title": "t", "language": "python"})

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("Invalid solution data: code is required"))
		})

		It("should change only the fields sent on update", func() {
			// ARRANGE
			created := createSolution(category.ID, map[string]any{
				"title": "Robot Action Query", "language": "sparql", "code": "SELECT ?a", "type": "query",
			})
			var solution entities.Solution
			decode(created, &solution)

			// ACT
			recorder := do(http.MethodPut, "/api/solutions/"+solution.ID, map[string]any{"language": "python"})

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusOK))
			var updated entities.Solution
			decode(recorder, &updated)
			Expect(updated).To(BeComparableTo(entities.Solution{
				ID:         solution.ID,
				CategoryID: category.ID,
				Title:      "Robot Action Query",
				Language:   "python",
				Code:       "SELECT ?a",
				Type:       entities.SolutionTypeQuery,
			}))
		})

		It("should return 404 when updating an unknown solution", func() {
			recorder := do(http.MethodPut, "/api/solutions/missing", map[string]any{"title": "x"})

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			var body errorBody
			decode(recorder, &body)
			Expect(body.Message).To(Equal("Solution not found"))
		})

		It("should list only the solutions of the requested category", func() {
			other := createCategory("Other")
			Expect(createSolution(other.ID, map[string]any{"title": "o", "language": "sparql", "code": "x"}).Code).To(Equal(http.StatusCreated))
			Expect(createSolution(category.ID, map[string]any{"title": "mine", "language": "sparql", "code": "x"}).Code).To(Equal(http.StatusCreated))

			recorder := do(http.MethodGet, "/api/categories/"+category.ID+"/solutions", nil)

			var solutions []entities.Solution
			decode(recorder, &solutions)
			Expect(solutions).To(HaveLen(1))
			Expect(solutions[0].Title).To(Equal("mine"))
		})

		It("should delete once and then report not found", func() {
			created := createSolution(category.ID, map[string]any{"title": "t", "language": "sparql", "code": "x"})
			var solution entities.Solution
			decode(created, &solution)

			Expect(do(http.MethodDelete, "/api/solutions/"+solution.ID, nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodDelete, "/api/solutions/"+solution.ID, nil).Code).To(Equal(http.StatusNotFound))
		})
	})

	It("should answer CORS preflight requests", func() {
		request := httptest.NewRequest(http.MethodOptions, "/api/categories", nil)
		request.Header.Set("Origin", "http://localhost:5173")
		request.Header.Set("Access-Control-Request-Method", http.MethodPost)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})

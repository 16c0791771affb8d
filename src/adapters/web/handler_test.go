package web

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/repositories"
	"ontologycatalog/src/services/catalog"
	"ontologycatalog/src/services/events"
)

var _ = Describe("Handler", func() {
	var (
		ctx            context.Context
		catalogService *catalog.CatalogService
		mux            *http.ServeMux
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		catalogService = catalog.NewCatalogService(repositories.NewMemoryCatalogRepository(), events.NoopEventPublisher{}, logger)

		handler, err := NewHandler(logger, catalogService)
		Expect(err).NotTo(HaveOccurred())

		mux = http.NewServeMux()
		handler.Register(mux)
	})

	do := func(request *http.Request) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		mux.ServeHTTP(recorder, request)
		return recorder
	}

	get := func(path string) *httptest.ResponseRecorder {
		return do(httptest.NewRequest(http.MethodGet, path, nil))
	}

	seed := func() []entities.Category {
		_, err := catalogService.SeedDefaults(ctx)
		Expect(err).NotTo(HaveOccurred())
		categories, err := catalogService.ListCategories(ctx)
		Expect(err).NotTo(HaveOccurred())
		return categories
	}

	Describe("page", func() {
		It("should show the empty state without categories", func() {
			recorder := get("/")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("text/html; charset=utf-8"))
			Expect(recorder.Body.String()).To(ContainSubstring("No categories found"))
		})

		It("should render one tab per category with lazy panels", func() {
			categories := seed()

			recorder := get("/")

			body := recorder.Body.String()
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring("Screen Description"))
			Expect(body).To(ContainSubstring("Robot Meet World"))
			Expect(body).To(ContainSubstring("/ui/categories/" + categories[0].ID + "/specification"))
			Expect(body).To(ContainSubstring("/ui/categories/" + categories[1].ID + "/solutions"))
		})

		It("should not serve the page under unknown paths", func() {
			Expect(get("/nothing-here").Code).To(Equal(http.StatusNotFound))
		})

		It("should serve the static assets", func() {
			recorder := get("/static/app.js")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("showToast"))
		})
	})

	Describe("panels", func() {
		var categories []entities.Category

		BeforeEach(func() {
			categories = seed()
		})

		It("should render the specification", func() {
			recorder := get("/ui/categories/" + categories[0].ID + "/specification")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(categories[0].Specification.Definition))
			for _, concept := range categories[0].Specification.CoreConcepts {
				Expect(recorder.Body.String()).To(ContainSubstring(concept))
			}
		})

		It("should render the graph", func() {
			recorder := get("/ui/categories/" + categories[1].ID + "/graph")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("Robot Agent"))
		})

		It("should render datasets with their relative age", func() {
			recorder := get("/ui/categories/" + categories[0].ID + "/datasets")

			body := recorder.Body.String()
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring("screen_elements.owl"))
			Expect(body).To(ContainSubstring("2.4 MB"))
			Expect(body).To(ContainSubstring("Updated 2 hours ago"))
			Expect(body).To(ContainSubstring("Updated 1 day ago"))
		})

		It("should render the highlighted solution for the selection", func() {
			recorder := get("/ui/categories/" + categories[0].ID + "/solutions")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`class="tok-keyword"`))
		})

		It("should tell when no solution exists for the selection", func() {
			recorder := get("/ui/categories/" + categories[0].ID + "/solutions?language=python&type=query")

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("No solution available for PYTHON"))
		})

		It("should answer 404 for an unknown category", func() {
			Expect(get("/ui/categories/missing/specification").Code).To(Equal(http.StatusNotFound))
			Expect(get("/ui/categories/missing/graph").Code).To(Equal(http.StatusNotFound))
			Expect(get("/ui/categories/missing/solutions").Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("mutations", func() {
		uploadRequest := func(categoryID string, filename string) *http.Request {
			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)
			part, err := writer.CreateFormFile("file", filename)
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write([]byte("<rdf:RDF/>"))
			Expect(err).NotTo(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			request := httptest.NewRequest(http.MethodPost, "/ui/categories/"+categoryID+"/datasets", body)
			request.Header.Set("Content-Type", writer.FormDataContentType())
			return request
		}

		It("should create numbered demo categories and activate the new one", func() {
			// ACT
			first := do(httptest.NewRequest(http.MethodPost, "/ui/categories", nil))
			second := do(httptest.NewRequest(http.MethodPost, "/ui/categories", nil))

			// ASSERT
			Expect(first.Code).To(Equal(http.StatusCreated))
			Expect(second.Code).To(Equal(http.StatusCreated))
			Expect(second.Header().Get("HX-Trigger")).To(ContainSubstring("showToast"))
			Expect(second.Body.String()).To(ContainSubstring("New Category 2"))

			categories, err := catalogService.ListCategories(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(2))
		})

		It("should upload a dataset and re-render the panel", func() {
			// ARRANGE
			categories := seed()

			// ACT
			recorder := do(uploadRequest(categories[0].ID, "shapes.ttl"))

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(recorder.Header().Get("HX-Trigger")).To(ContainSubstring("Dataset uploaded successfully"))
			Expect(recorder.Body.String()).To(ContainSubstring("shapes.ttl"))
		})

		It("should reject a forbidden file without touching the panel", func() {
			categories := seed()

			recorder := do(uploadRequest(categories[0].ID, "x.exe"))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(recorder.Header().Get("HX-Trigger")).To(BeEmpty())
		})

		It("should delete a dataset and re-render its category panel", func() {
			// ARRANGE
			categories := seed()
			datasets, err := catalogService.ListDatasets(ctx, categories[0].ID)
			Expect(err).NotTo(HaveOccurred())

			// ACT
			recorder := do(httptest.NewRequest(http.MethodDelete, "/ui/datasets/"+datasets[0].ID, nil))

			// ASSERT
			body := recorder.Body.String()
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(body).NotTo(ContainSubstring(datasets[0].Filename))
			Expect(body).To(ContainSubstring(datasets[1].Filename))
			Expect(strings.Count(body, `class="dataset"`)).To(Equal(1))
		})

		It("should answer 404 when deleting an unknown dataset", func() {
			recorder := do(httptest.NewRequest(http.MethodDelete, "/ui/datasets/missing", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})

package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ontologycatalog/src/services/catalog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouteRegistrar monta outras superfícies (ex: a UI) no mesmo mux da API.
type RouteRegistrar interface {
	Register(mux *http.ServeMux)
}

// Server representa o servidor HTTP da API
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	mux            *http.ServeMux
	handler        http.Handler
	port           int
	catalogService *catalog.CatalogService
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	allowedOrigins []string,
	catalogService *catalog.CatalogService,
	registrars ...RouteRegistrar,
) *Server {
	server := &Server{
		mux:            http.NewServeMux(),
		port:           port,
		logger:         logger,
		catalogService: catalogService,
	}

	// Health
	server.mux.HandleFunc("GET /health", server.Health)
	server.mux.HandleFunc("GET /ready", server.Ready)

	// Categorias
	server.mux.HandleFunc("GET /api/categories", server.ListCategories)
	server.mux.HandleFunc("GET /api/categories/{id}", server.GetCategory)
	server.mux.HandleFunc("POST /api/categories", server.CreateCategory)
	server.mux.HandleFunc("PUT /api/categories/{id}", server.UpdateCategory)
	server.mux.HandleFunc("DELETE /api/categories/{id}", server.DeleteCategory)

	// Datasets
	server.mux.HandleFunc("GET /api/categories/{categoryId}/datasets", server.ListDatasets)
	server.mux.HandleFunc("POST /api/categories/{categoryId}/datasets", server.UploadDataset)
	server.mux.HandleFunc("DELETE /api/datasets/{id}", server.DeleteDataset)

	// Solutions
	server.mux.HandleFunc("GET /api/categories/{categoryId}/solutions", server.ListSolutions)
	server.mux.HandleFunc("POST /api/categories/{categoryId}/solutions", server.CreateSolution)
	server.mux.HandleFunc("PUT /api/solutions/{id}", server.UpdateSolution)
	server.mux.HandleFunc("DELETE /api/solutions/{id}", server.DeleteSolution)

	for _, registrar := range registrars {
		registrar.Register(server.mux)
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	server.handler = chi.Chain(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		RequestLogger(logger),
		cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "HX-Request", "HX-Target", "HX-Current-URL"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}),
	).Handler(server.mux)

	server.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: server.handler,
		// Uploads de até 10 MB precisam de folga na leitura.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server
}

// Handler expõe a cadeia completa (middlewares + rotas), usado nos testes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ontologycatalog/src/services/catalog"
)

// Handler renderiza a UI: uma página com abas e fragmentos por painel,
// carregados e substituídos via htmx.
type Handler struct {
	logger         *slog.Logger
	catalogService *catalog.CatalogService
	templates      *template.Template
	now            func() time.Time
}

func NewHandler(logger *slog.Logger, catalogService *catalog.CatalogService) (*Handler, error) {
	handler := &Handler{
		logger:         logger,
		catalogService: catalogService,
		now:            time.Now,
	}

	templates, err := template.New("").Funcs(handler.templateFunctions()).ParseFS(templatesDir, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web.NewHandler - failed to parse templates: %w", err)
	}
	handler.templates = templates

	return handler, nil
}

// Register monta as rotas da UI no mux da API.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Page)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(StaticFS)))

	mux.HandleFunc("GET /ui/categories/{id}/specification", h.SpecificationPanel)
	mux.HandleFunc("GET /ui/categories/{id}/graph", h.GraphPanel)
	mux.HandleFunc("GET /ui/categories/{id}/datasets", h.DatasetsPanel)
	mux.HandleFunc("GET /ui/categories/{id}/solutions", h.SolutionsPanel)

	mux.HandleFunc("POST /ui/categories", h.CreateDemoCategory)
	mux.HandleFunc("POST /ui/categories/{id}/datasets", h.UploadDataset)
	mux.HandleFunc("DELETE /ui/datasets/{id}", h.DeleteDataset)
}

// render executa o template em buffer para não enviar meia página em caso de erro.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type toast struct {
	Variant     string `json:"variant"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// withToast pede ao cliente, via HX-Trigger, que mostre uma notificação.
func withToast(w http.ResponseWriter, title string, description string) {
	payload, err := json.Marshal(map[string]toast{
		"showToast": {Variant: "success", Title: title, Description: description},
	})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

func (h *Handler) templateFunctions() template.FuncMap {
	return template.FuncMap{
		"timeAgo": func(t time.Time) string {
			return formatTimeAgo(h.now(), t)
		},
		"highlight": Highlight,
		"upper":     strings.ToUpper,
	}
}

// formatTimeAgo trunca para horas e depois para dias.
func formatTimeAgo(now time.Time, t time.Time) string {
	hours := int(now.Sub(t) / time.Hour)

	switch {
	case hours < 1:
		return "Updated less than an hour ago"
	case hours == 1:
		return "Updated 1 hour ago"
	case hours < 24:
		return fmt.Sprintf("Updated %d hours ago", hours)
	}

	days := hours / 24
	if days == 1 {
		return "Updated 1 day ago"
	}
	return fmt.Sprintf("Updated %d days ago", days)
}

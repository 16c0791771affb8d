package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ontologycatalog/src/domain"
)

const maxJSONBodyBytes = 1 << 20

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalogService.ListCategories(r.Context())
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.catalogService.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, category)
}

func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := decodeAndValidate(w, r, &dto); err != nil {
		s.handleError(w, r, err, "Invalid category data")
		return
	}

	category, err := s.catalogService.CreateCategory(r.Context(), dto.toRequest())
	if err != nil {
		s.handleError(w, r, err, "Invalid category data")
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCategoryDTO
	if err := decodeAndValidate(w, r, &dto); err != nil {
		s.handleError(w, r, err, "Invalid category data")
		return
	}

	category, err := s.catalogService.UpdateCategory(r.Context(), r.PathValue("id"), dto.toRequest())
	if err != nil {
		s.handleError(w, r, err, "Invalid category data")
		return
	}

	writeJSON(w, http.StatusOK, category)
}

func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.catalogService.DeleteCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	if !deleted {
		s.handleError(w, r, domain.ErrCategoryNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeAndValidate lê o corpo JSON (campos desconhecidos são ignorados) e aplica as tags validate.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dto any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dto); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err)
	}

	return validateStruct(dto)
}

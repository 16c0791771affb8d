package http

import (
	"net/http"

	"ontologycatalog/src/domain"
)

func (s *Server) ListSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := s.catalogService.ListSolutions(r.Context(), r.PathValue("categoryId"))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, solutions)
}

func (s *Server) CreateSolution(w http.ResponseWriter, r *http.Request) {
	var dto CreateSolutionDTO
	if err := decodeAndValidate(w, r, &dto); err != nil {
		s.handleError(w, r, err, "Invalid solution data")
		return
	}

	solution, err := s.catalogService.CreateSolution(r.Context(), dto.toRequest(r.PathValue("categoryId")))
	if err != nil {
		s.handleError(w, r, err, "Invalid solution data")
		return
	}

	writeJSON(w, http.StatusCreated, solution)
}

func (s *Server) UpdateSolution(w http.ResponseWriter, r *http.Request) {
	var dto UpdateSolutionDTO
	if err := decodeAndValidate(w, r, &dto); err != nil {
		s.handleError(w, r, err, "Invalid solution data")
		return
	}

	solution, err := s.catalogService.UpdateSolution(r.Context(), r.PathValue("id"), dto.toRequest())
	if err != nil {
		s.handleError(w, r, err, "Invalid solution data")
		return
	}

	writeJSON(w, http.StatusOK, solution)
}

func (s *Server) DeleteSolution(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.catalogService.DeleteSolution(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	if !deleted {
		s.handleError(w, r, domain.ErrSolutionNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/services/intake"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// handleError classifica o erro pelo sentinel e nunca vaza detalhe interno em 500.
// invalidMessage prefixa erros de entrada ("Invalid category data").
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, invalidMessage string) {
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, domain.ErrDatasetNotFound):
		writeError(w, http.StatusNotFound, "Dataset not found")
	case errors.Is(err, domain.ErrSolutionNotFound):
		writeError(w, http.StatusNotFound, "Solution not found")
	case errors.As(err, &maxBytesErr), errors.Is(err, intake.ErrFileTooLarge):
		writeError(w, http.StatusBadRequest, intake.ErrFileTooLarge.Error())
	case errors.Is(err, intake.ErrInvalidFileType), errors.Is(err, intake.ErrNoFile):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, invalidMessage+": "+invalidDetail(err))
	default:
		s.logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
	}
}

// invalidDetail devolve só a causa legível, sem a cadeia "Service.Method - " nem o sentinel.
func invalidDetail(err error) string {
	detail := err.Error()
	marker := domain.ErrInvalidInput.Error() + ": "
	if i := strings.Index(detail, marker); i >= 0 {
		return detail[i+len(marker):]
	}
	return domain.ErrInvalidInput.Error()
}

package http

import (
	"net/http"

	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
	"ontologycatalog/src/services/intake"
)

const (
	uploadFieldName = "file"

	// Folga para boundaries e cabeçalhos das partes.
	multipartOverhead = 1 << 20
)

func (s *Server) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.catalogService.ListDatasets(r.Context(), r.PathValue("categoryId"))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, datasets)
}

func (s *Server) UploadDataset(w http.ResponseWriter, r *http.Request) {
	dataset, err := s.receiveUpload(w, r, r.PathValue("categoryId"))
	if err != nil {
		s.handleError(w, r, err, "Invalid dataset data")
		return
	}

	writeJSON(w, http.StatusCreated, dataset)
}

// receiveUpload lê o multipart parte a parte, sem ParseMultipartForm, e entrega
// o campo "file" ao serviço como stream.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request, categoryID string) (entities.Dataset, error) {
	r.Body = http.MaxBytesReader(w, r.Body, intake.MaxFileSize+multipartOverhead)

	reader, err := r.MultipartReader()
	if err != nil {
		return entities.Dataset{}, intake.ErrNoFile
	}

	part, err := intake.NextFile(reader, uploadFieldName)
	if err != nil {
		return entities.Dataset{}, err
	}
	defer part.Close()

	return s.catalogService.UploadDataset(r.Context(), categoryID, part.FileName(), part)
}

func (s *Server) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.catalogService.DeleteDataset(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err, "")
		return
	}
	if !deleted {
		s.handleError(w, r, domain.ErrDatasetNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package entities

import "time"

// Dataset descreve um arquivo de ontologia enviado para uma categoria.
// Apenas os metadados são guardados; o conteúdo do arquivo é descartado.
type Dataset struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	Size       string    `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

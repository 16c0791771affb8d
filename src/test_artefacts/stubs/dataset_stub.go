package stubs

import (
	"fmt"

	"ontologycatalog/src/domain"

	"github.com/brianvoe/gofakeit/v6"
)

type DatasetStub struct {
	request domain.CreateDatasetRequest
}

func NewDatasetStub(categoryID string) DatasetStub {
	filename := fmt.Sprintf("%s.%s", gofakeit.Word(), gofakeit.RandomString([]string{"owl", "rdf", "ttl", "jsonld"}))

	return DatasetStub{request: domain.CreateDatasetRequest{
		CategoryID: categoryID,
		Name:       filename,
		Filename:   filename,
		Size:       fmt.Sprintf("%.1f MB", gofakeit.Float64Range(0.1, 9.9)),
	}}
}

func (ds DatasetStub) WithFilename(filename string) DatasetStub {
	ds.request.Name = filename
	ds.request.Filename = filename
	return ds
}

func (ds DatasetStub) Get() domain.CreateDatasetRequest {
	return ds.request
}

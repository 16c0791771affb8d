package stubs

import (
	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type SolutionStub struct {
	request domain.CreateSolutionRequest
}

func NewSolutionStub(categoryID string) SolutionStub {
	return SolutionStub{request: domain.CreateSolutionRequest{
		CategoryID: categoryID,
		Title:      gofakeit.Sentence(3),
		Language:   "sparql",
		Code:       "SELECT ?s WHERE { ?s ?p ?o . }",
		Type:       entities.SolutionTypeQuery,
	}}
}

func (ss SolutionStub) WithLanguage(language string) SolutionStub {
	ss.request.Language = language
	return ss
}

func (ss SolutionStub) WithType(solutionType entities.SolutionType) SolutionStub {
	ss.request.Type = solutionType
	return ss
}

func (ss SolutionStub) WithCode(code string) SolutionStub {
	ss.request.Code = code
	return ss
}

func (ss SolutionStub) Get() domain.CreateSolutionRequest {
	return ss.request
}

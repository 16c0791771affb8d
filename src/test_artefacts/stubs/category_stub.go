package stubs

import (
	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type CategoryStub struct {
	request domain.CreateCategoryRequest
}

// NewCategoryStub gera uma categoria inserível com nome único.
func NewCategoryStub() CategoryStub {
	request := domain.CreateCategoryRequest{
		Name:        gofakeit.AppName() + " " + gofakeit.UUID(),
		Description: gofakeit.Sentence(12),
		Icon:        "fas fa-" + gofakeit.Word(),
		Specification: entities.Specification{
			Definition:   gofakeit.Sentence(10),
			CoreConcepts: []string{gofakeit.Noun(), gofakeit.Noun(), gofakeit.Noun()},
			Properties:   []string{"has" + gofakeit.Noun(), "contains" + gofakeit.Noun()},
		},
	}

	return CategoryStub{request: request}
}

func (cs CategoryStub) WithName(name string) CategoryStub {
	cs.request.Name = name
	return cs
}

func (cs CategoryStub) WithDescription(description string) CategoryStub {
	cs.request.Description = description
	return cs
}

func (cs CategoryStub) WithSpecification(specification entities.Specification) CategoryStub {
	cs.request.Specification = specification
	return cs
}

func (cs CategoryStub) Get() domain.CreateCategoryRequest {
	return cs.request
}

package http

import (
	"ontologycatalog/src/domain"
	"ontologycatalog/src/domain/entities"
)

// Os DTOs usam ponteiros para distinguir "ausente" de "vazio": o validator
// rejeita o primeiro e os updates parciais ignoram campos nulos.

type SpecificationDTO struct {
	Definition   *string  `json:"definition" validate:"required"`
	CoreConcepts []string `json:"coreConcepts" validate:"required"`
	Properties   []string `json:"properties" validate:"required"`
}

func (dto *SpecificationDTO) toEntity() entities.Specification {
	return entities.Specification{
		Definition:   *dto.Definition,
		CoreConcepts: dto.CoreConcepts,
		Properties:   dto.Properties,
	}.Normalized()
}

type CreateCategoryDTO struct {
	Name          *string           `json:"name" validate:"required,min=1"`
	Description   *string           `json:"description" validate:"required"`
	Icon          *string           `json:"icon" validate:"required"`
	Specification *SpecificationDTO `json:"specification" validate:"required"`
}

func (dto CreateCategoryDTO) toRequest() domain.CreateCategoryRequest {
	return domain.CreateCategoryRequest{
		Name:          *dto.Name,
		Description:   *dto.Description,
		Icon:          *dto.Icon,
		Specification: dto.Specification.toEntity(),
	}
}

type UpdateCategoryDTO struct {
	Name          *string           `json:"name" validate:"omitnil,min=1"`
	Description   *string           `json:"description"`
	Icon          *string           `json:"icon"`
	Specification *SpecificationDTO `json:"specification" validate:"omitnil"`
}

func (dto UpdateCategoryDTO) toRequest() domain.UpdateCategoryRequest {
	request := domain.UpdateCategoryRequest{
		Name:        dto.Name,
		Description: dto.Description,
		Icon:        dto.Icon,
	}
	if dto.Specification != nil {
		specification := dto.Specification.toEntity()
		request.Specification = &specification
	}
	return request
}

type CreateSolutionDTO struct {
	Title    *string `json:"title" validate:"required"`
	Language *string `json:"language" validate:"required"`
	Code     *string `json:"code" validate:"required"`
	Type     *string `json:"type" validate:"omitnil,oneof=query implementation documentation"`
}

// toRequest recebe o categoryId do path; um categoryId no corpo é ignorado.
func (dto CreateSolutionDTO) toRequest(categoryID string) domain.CreateSolutionRequest {
	request := domain.CreateSolutionRequest{
		CategoryID: categoryID,
		Title:      *dto.Title,
		Language:   *dto.Language,
		Code:       *dto.Code,
		Type:       entities.SolutionTypeQuery,
	}
	if dto.Type != nil {
		request.Type = entities.SolutionType(*dto.Type)
	}
	return request
}

type UpdateSolutionDTO struct {
	CategoryID *string `json:"categoryId" validate:"omitnil,min=1"`
	Title      *string `json:"title"`
	Language   *string `json:"language"`
	Code       *string `json:"code"`
	Type       *string `json:"type" validate:"omitnil,oneof=query implementation documentation"`
}

func (dto UpdateSolutionDTO) toRequest() domain.UpdateSolutionRequest {
	request := domain.UpdateSolutionRequest{
		CategoryID: dto.CategoryID,
		Title:      dto.Title,
		Language:   dto.Language,
		Code:       dto.Code,
	}
	if dto.Type != nil {
		solutionType := entities.SolutionType(*dto.Type)
		request.Type = &solutionType
	}
	return request
}

type HealthDTO struct {
	Status string `json:"status"`
}

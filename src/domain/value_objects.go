package domain

import (
	"errors"
	"time"

	"ontologycatalog/src/domain/entities"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrSolutionNotFound = errors.New("solution not found")

	// ErrInvalidInput cobre validação de payload, nome duplicado e
	// referência para categoria inexistente.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ####################### CATEGORIAS #########################
// ############################################################

// CreateCategoryRequest é o formato inserível de uma categoria.
type CreateCategoryRequest struct {
	Name          string
	Description   string
	Icon          string
	Specification entities.Specification
}

// UpdateCategoryRequest aplica apenas os campos não nulos.
type UpdateCategoryRequest struct {
	Name          *string
	Description   *string
	Icon          *string
	Specification *entities.Specification
}

func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Icon == nil && r.Specification == nil
}

// ############################################################
// ######################## DATASETS ##########################
// ############################################################

// CreateDatasetRequest é derivado do upload pelo servidor, nunca enviado pelo cliente.
type CreateDatasetRequest struct {
	CategoryID string
	Name       string
	Filename   string
	Size       string

	// UploadedAt zero usa o horário da escrita.
	UploadedAt time.Time
}

// ############################################################
// ######################## SOLUTIONS #########################
// ############################################################

type CreateSolutionRequest struct {
	CategoryID string
	Title      string
	Language   string
	Code       string
	Type       entities.SolutionType
}

type UpdateSolutionRequest struct {
	CategoryID *string
	Title      *string
	Language   *string
	Code       *string
	Type       *entities.SolutionType
}

func (r UpdateSolutionRequest) IsEmpty() bool {
	return r.CategoryID == nil && r.Title == nil && r.Language == nil && r.Code == nil && r.Type == nil
}

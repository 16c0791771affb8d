package entities

type SolutionType string

const (
	SolutionTypeQuery          SolutionType = "query"
	SolutionTypeImplementation SolutionType = "implementation"
	SolutionTypeDocumentation  SolutionType = "documentation"
)

// Solution é um exemplo de código associado a uma categoria.
// O par (Language, Type) não é único; a UI usa o primeiro que encontrar.
type Solution struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"categoryId"`
	Title      string       `json:"title"`
	Language   string       `json:"language"`
	Code       string       `json:"code"`
	Type       SolutionType `json:"type"`
}

package entities

import "time"

// Specification é o documento estruturado de uma categoria.
// CoreConcepts e Properties nunca são nulos, apenas vazios.
type Specification struct {
	Definition   string   `json:"definition"`
	CoreConcepts []string `json:"coreConcepts"`
	Properties   []string `json:"properties"`
}

// Normalized devolve uma cópia com as sequências sempre presentes.
func (s Specification) Normalized() Specification {
	out := Specification{
		Definition:   s.Definition,
		CoreConcepts: make([]string, len(s.CoreConcepts)),
		Properties:   make([]string, len(s.Properties)),
	}
	copy(out.CoreConcepts, s.CoreConcepts)
	copy(out.Properties, s.Properties)
	return out
}

// Category é um domínio de ontologia (ex: "Screen Description").
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Icon          string        `json:"icon"`
	Specification Specification `json:"specification"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Clone evita que o chamador compartilhe os slices da especificação.
func (c Category) Clone() Category {
	c.Specification = c.Specification.Normalized()
	return c
}

package web

import (
	"html/template"
	"strings"

	"ontologycatalog/src/domain/entities"
)

type catalogView struct {
	Categories []entities.Category
	ActiveID   string
}

type graphNode struct {
	Label string
	Color string
	X     int
}

type graphView struct {
	CategoryID string
	Center     string
	Nodes      []graphNode
}

// buildGraph devolve o diagrama decorativo da categoria; não há layout real.
func buildGraph(category entities.Category) graphView {
	if category.Name == "Screen Description" {
		return graphView{
			CategoryID: category.ID,
			Center:     "Screen Element",
			Nodes: []graphNode{
				{Label: "Button", Color: "accent", X: 25},
				{Label: "Input", Color: "accent", X: 50},
				{Label: "Image", Color: "accent", X: 75},
			},
		}
	}

	return graphView{
		CategoryID: category.ID,
		Center:     "Robot Agent",
		Nodes: []graphNode{
			{Label: "Sensor", Color: "orange", X: 20},
			{Label: "Action", Color: "purple", X: 40},
			{Label: "Object", Color: "green", X: 60},
			{Label: "Space", Color: "red", X: 80},
		},
	}
}

type datasetsView struct {
	CategoryID string
	Datasets   []entities.Dataset
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type solutionView struct {
	ID          string
	Title       string
	Code        string
	Highlighted template.HTML
}

type solutionsView struct {
	CategoryID string
	Language   string
	Type       string
	Languages  []option
	Tabs       []option
	Current    *solutionView
}

var solutionLanguages = []option{
	{Value: "sparql", Label: "SPARQL"},
	{Value: "python", Label: "Python"},
	{Value: "javascript", Label: "JavaScript"},
	{Value: "ros", Label: "ROS"},
}

// buildSolutions escolhe a primeira solution com o par (language, type);
// duplicatas são permitidas e ignoradas.
func buildSolutions(category entities.Category, solutions []entities.Solution, language string, solutionType string) solutionsView {
	if language == "" {
		language = "sparql"
	}
	if solutionType == "" {
		solutionType = string(entities.SolutionTypeQuery)
	}

	implementationLabel := "Implementation"
	if strings.Contains(strings.ToLower(category.Name), "robot") {
		implementationLabel = "ROS Integration"
	}

	view := solutionsView{
		CategoryID: category.ID,
		Language:   language,
		Type:       solutionType,
	}

	for _, lang := range solutionLanguages {
		lang.Selected = lang.Value == language
		view.Languages = append(view.Languages, lang)
	}

	tabs := []option{
		{Value: string(entities.SolutionTypeQuery), Label: "Query Examples"},
		{Value: string(entities.SolutionTypeImplementation), Label: implementationLabel},
		{Value: string(entities.SolutionTypeDocumentation), Label: "Documentation"},
	}
	for _, tab := range tabs {
		tab.Selected = tab.Value == solutionType
		view.Tabs = append(view.Tabs, tab)
	}

	for _, solution := range solutions {
		if solution.Language == language && string(solution.Type) == solutionType {
			view.Current = &solutionView{
				ID:          solution.ID,
				Title:       solution.Title,
				Code:        solution.Code,
				Highlighted: Highlight(solution.Code, language),
			}
			break
		}
	}

	return view
}

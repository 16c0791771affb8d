package web

import (
	"html/template"
	"regexp"
	"strings"
)

// highlighter pinta tokens em uma única passada sobre o código já escapado.
// Cada grupo de captura de pattern corresponde a uma classe em classes.
type highlighter struct {
	pattern *regexp.Regexp
	classes []string
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var highlighters = map[string]highlighter{
	"sparql": {
		pattern: regexp.MustCompile(
			`(#[^\n]*)` +
				`|(&lt;[^&\s]*&gt;)` +
				`|\b(PREFIX|SELECT|WHERE|FILTER|OPTIONAL|DISTINCT|LIMIT|ORDER BY)\b` +
				`|\b(rdf:type|ui:hasPosition|robot:canPerform|geo:location)\b` +
				`|\b([a-zA-Z]+:)` +
				`|(\?[a-zA-Z_]+)`,
		),
		classes: []string{"tok-comment", "tok-iri", "tok-keyword", "tok-term", "tok-prefix", "tok-variable"},
	},
	"python": {
		pattern: regexp.MustCompile(
			`(#[^\n]*)` +
				`|("[^"\n]*"|'[^'\n]*')` +
				`|\b(def|class|import|from|return|if|else|elif|for|while|try|except|with|as|in)\b`,
		),
		classes: []string{"tok-comment", "tok-string", "tok-keyword"},
	},
}

// Highlight escapa o código e envolve os tokens conhecidos em <span>.
// Linguagens sem highlighter saem apenas escapadas.
func Highlight(code string, language string) template.HTML {
	escaped := htmlEscaper.Replace(code)

	h, ok := highlighters[language]
	if !ok {
		return template.HTML(escaped)
	}

	var b strings.Builder
	last := 0

	for _, match := range h.pattern.FindAllStringSubmatchIndex(escaped, -1) {
		b.WriteString(escaped[last:match[0]])

		class := ""
		for group := 1; group < len(match)/2; group++ {
			if match[2*group] >= 0 {
				class = h.classes[group-1]
				break
			}
		}

		b.WriteString(`<span class="`)
		b.WriteString(class)
		b.WriteString(`">`)
		b.WriteString(escaped[match[0]:match[1]])
		b.WriteString(`</span>`)

		last = match[1]
	}
	b.WriteString(escaped[last:])

	return template.HTML(b.String())
}

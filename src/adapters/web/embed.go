package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templatesDir embed.FS

//go:embed static
var staticDir embed.FS

// StaticFS serve os assets sem o prefixo "static".
var StaticFS fs.FS

func init() {
	StaticFS, _ = fs.Sub(staticDir, "static")
}

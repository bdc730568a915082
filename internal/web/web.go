package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexTemplate = "index.html"

// Page is the data behind one render of the index page.
type Page struct {
	Title   string
	Query   string
	Mode    string
	Results []models.Result
	Songs   []models.Song
	Popular []models.Popularity
	Notice  string
	Error   string
}

// Searched reports whether the page was rendered for a non-empty query.
func (p Page) Searched() bool {
	return p.Query != ""
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New(indexTemplate).Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Funcs returns the helpers available inside templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"size": shared.FormatSize,
		"downloadURL": func(key string) string {
			return "/download/" + url.PathEscape(key)
		},
		"streamURL": func(key string) string {
			return "/stream/" + url.PathEscape(key)
		},
	}
}

// Render writes the index page for p to w.
//
// Output is buffered: on error nothing is written to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "SongSite"
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, indexTemplate, p); err != nil {
		return fmt.Errorf("failed to render %s: %w", indexTemplate, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

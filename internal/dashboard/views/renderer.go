package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

//go:embed templates/*.html
var files embed.FS

// Renderer serves the board templates to echo's c.Render.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("board").Funcs(template.FuncMap{
		"typeLabel": func(t models.PatientType) string { return t.Label() },
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Page is the data of the full board page.
type Page struct {
	Board        models.Board
	PatientTypes []models.PatientType
	Notice       string
	AuthEnabled  bool
	Username     string
}

type LoginPage struct {
	Error string
}

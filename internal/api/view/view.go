// Package view renders the portal pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile = "templates/layout.html"
	// ErrorTemplate renders failures that have no page of their own.
	ErrorTemplate = "error.html"
)

// Notice kinds.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Page is the data every template receives.
type Page struct {
	Title       string
	Current     domain.Page
	Session     domain.Session
	Affordances policy.Affordances
	Notice      *Notice
	Data        any
}

// ErrorData is the Data of ErrorTemplate.
type ErrorData struct {
	Status  int
	Message string
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"price": func(p *float64) string {
		if p == nil {
			return "-"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	},
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
	"stars": func(n int) string {
		if n < 0 {
			n = 0
		}
		return strings.Repeat("★", n) + strings.Repeat("☆", max(0, 5-n))
	},
	"itemID": func(ref domain.ItemRef) string {
		if id, ok := domain.RefID(ref); ok {
			return strconv.FormatInt(id, 10)
		}
		return ""
	},
	"isNew": func(ref domain.ItemRef) bool { return !domain.IsPersisted(ref) },
}

// NewRenderer parses every embedded page.
func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[strings.TrimPrefix(f, "templates/")] = t
	}
	return r, nil
}

// Render executes the layout of page name with data.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

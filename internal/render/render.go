// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the stockroom pages.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header, and renders modal fragments
// that HTMX swaps into the page's modal slot.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/forms"
	"stockroom/internal/middleware"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active navigation section (e.g., "home", "pdfs")
	AdminMode bool           // Admin-mode flag from the browser session
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	partials  *template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout and the
// shared partials. When devMode is true, pages load HTMX from the CDN;
// when false, they reference the vendored copy under /static/.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-active"
				}
				return ""
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"isDev": func() bool {
				return devMode
			},
			// uuidEq compares a form's string id with a uuid.UUID value.
			"uuidEq": func(s string, val uuid.UUID) bool {
				return strings.EqualFold(strings.TrimSpace(s), val.String())
			},
			"today": forms.Today,
			// dict builds a map for passing several values into a sub-template.
			"dict": func(kv ...any) (map[string]any, error) {
				if len(kv)%2 != 0 {
					return nil, fmt.Errorf("dict: odd number of arguments")
				}
				m := make(map[string]any, len(kv)/2)
				for i := 0; i < len(kv); i += 2 {
					key, ok := kv[i].(string)
					if !ok {
						return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
					}
					m[key] = kv[i+1]
				}
				return m, nil
			},
		},
	}

	partials, err := template.New("partials").Funcs(r.funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name, "templates/partials/*.html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	rn.inject(r, data)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	}
	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		slog.Error("render page failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Fragment renders a single named block from the partials, used for
// modal bodies and other HTMX swaps.
func (rn *Renderer) Fragment(w http.ResponseWriter, r *http.Request, block string, data *PageData) {
	if rn.partials.Lookup(block) == nil {
		http.Error(w, fmt.Sprintf("fragment %q not found", block), http.StatusInternalServerError)
		return
	}
	rn.inject(r, data)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := executeTemplate(w, rn.partials, block, data); err != nil {
		slog.Error("render fragment failed", "block", block, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// inject copies request-scoped values into data.
func (rn *Renderer) inject(r *http.Request, data *PageData) {
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	data.AdminMode = middleware.AdminModeFromCtx(r.Context())
	if data.Data == nil {
		data.Data = map[string]any{}
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

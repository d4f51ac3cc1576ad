// Package view renders the HTML pages of the API from embedded templates.
//
// Every page is executed through the shared layout, which draws the header,
// the alternates footer and the page's "content" block. Resource URIs are
// written through the link function so that a deployment serving the
// dataset away from its canonical host can keep navigation local.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"tb16pix/internal/conneg"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "layout.html"

// Page is the data passed to every template
type Page struct {
	Title      string
	Self       string // request path and query, used for alternate links
	Profile    conneg.Profile
	Mediatype  conneg.Mediatype
	Alternates []conneg.Alternate
	Data       any
}

// ErrorContext is the data of the error page
type ErrorContext struct {
	Title   string
	Status  int
	Message string
}

// ConformanceClass is one row of the conformance page
type ConformanceClass struct {
	URI   string
	Label string
}

// Options configure a renderer
type Options struct {
	// DatasetURI is the prefix of URIs minted by this API
	DatasetURI string
	// LocalURIs rewrites dataset URIs to the local /object resolver
	LocalURIs bool
}

// Renderer executes the page templates. It is safe for concurrent use.
type Renderer struct {
	opts      Options
	templates map[string]*template.Template
}

// New parses every embedded page against the layout
func New(opts Options) (*Renderer, error) {
	r := &Renderer{opts: opts, templates: make(map[string]*template.Template)}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if name == layoutFile {
			continue
		}
		t, err := template.New(name).Funcs(r.funcs()).ParseFS(templateFS,
			"templates/"+layoutFile, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Has reports whether a page template exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render writes a complete page. Output is buffered so that a failing
// template never produces a partial response.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"link":           r.Link,
		"href":           conneg.AlternateHref,
		"mediatypeLabel": conneg.MediatypeLabel,
		"paragraphs":     paragraphs,
	}
}

// Link returns the href used for a resource URI
func (r *Renderer) Link(uri string) string {
	if !r.opts.LocalURIs || r.opts.DatasetURI == "" {
		return uri
	}
	if uri == r.opts.DatasetURI || uri == r.opts.DatasetURI+"/" {
		return "/"
	}
	if strings.HasPrefix(uri, r.opts.DatasetURI+"/") {
		return "/object?uri=" + url.QueryEscape(uri)
	}
	return uri
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package view renders the server-side HTML pages.  Templates are embedded
// in the binary; each page is parsed together with the shared layout and
// partials into its own template set so pages can all define "content".
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/flash"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded CSS/JS assets rooted at the static directory.
func Static() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}

// Page is the value every template receives.
type Page struct {
	Flashes []flash.Message // banners popped from the flash cookie
	Path    string          // request path, used to highlight the navbar
	Data    interface{}     // page specific view model
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
	flash *flash.Store
}

// NewRenderer parses every page under templates/{pages,forms,errors}.
// Template names are the page path without extension, e.g. "pages/venues".
func NewRenderer(store *flash.Store) (*Renderer, error) {
	shared := []string{"templates/layouts/*.html", "templates/partials/*.html"}
	r := &Renderer{pages: map[string]*template.Template{}, flash: store}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(templateFS, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := dir + "/" + strings.TrimSuffix(path.Base(f), ".html")
			patterns := append(append([]string{}, shared...), f)
			t, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, patterns...)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render executes the layout of page name.  Pending flash messages are
// popped from the request and handed to the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	p := Page{Data: data}
	if c != nil {
		p.Path = c.Request().URL.Path
		if r.flash != nil {
			p.Flashes = r.flash.Pop(c)
		}
	}
	return t.ExecuteTemplate(w, "layout", p)
}

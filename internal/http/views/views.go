// Package views renderiza las páginas HTML (templates embebidos) y sirve
// los estáticos.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"signin", "signup", "consent", "logout", "error"}

// Data es lo que recibe cada template.
type Data struct {
	Base      string // prefijo de rutas (ej: /auth)
	CSRF      string
	RequestID string
	Page      any
}

// ErrorPage es el modelo del template "error".
type ErrorPage struct {
	Code    string
	Message string
	Detail  string
}

// Renderer tiene un template compilado por página (layout + página).
type Renderer struct {
	pages map[string]*template.Template
}

// New compila todos los templates; falla al inicio si alguno es inválido.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render ejecuta en un buffer primero: un template roto no deja una
// respuesta a medias.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("views: unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("views: render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static sirve el contenido de static/ (montar con http.StripPrefix).
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

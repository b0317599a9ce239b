// Package views renders the embedded HTML pages for fiber.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile = "base.html"
	layoutName = "base"
)

// Engine implements fiber.Views. Each page is parsed into its own clone of
// the base layout, so pages can all define "title" and "content".
type Engine struct {
	fs    fs.FS
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New returns an engine over the embedded templates.
func New() *Engine {
	return NewFromFS(templateFS)
}

// NewFromFS returns an engine reading templates/*.html from fsys.
func NewFromFS(fsys fs.FS) *Engine {
	return &Engine{fs: fsys}
}

// Load parses every page. fiber calls it once at startup.
func (e *Engine) Load() error {
	base, err := template.ParseFS(e.fs, path.Join("templates", layoutFile))
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(e.fs, "templates/*.html")
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := path.Base(file)
		if name == layoutFile {
			continue
		}
		layout, err := base.Clone()
		if err != nil {
			return fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := layout.ParseFS(e.fs, file)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = page
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render writes page name inside the base layout. The layout arguments are
// ignored; every page uses the same layout.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	page, ok := e.pages[strings.TrimSuffix(name, ".html")]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return page.ExecuteTemplate(w, layoutName, binding)
}

// Has reports whether a page called name was loaded.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.pages[name]
	return ok
}

// Package web serves server-rendered pages and their static assets.
// Templates are parsed once at startup so rendering never touches the
// filesystem.
package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef binds a route to a view template, page title, and script bundle.
type ViewDef struct {
	Route    string
	Template string
	Title    string
	Bundle   string
}

// ViewData is passed to every template. Templates build URLs from
// {{ .BasePath }} so the module can be mounted anywhere.
type ViewData struct {
	Title    string
	Bundle   string
	BasePath string
	Data     any
}

// TemplateSet holds one parsed template tree per view, each a clone of
// the shared layouts.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layouts matched by layoutGlob and clones them
// for each view found under viewSubdir of viewFS.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		parsed[v.Template] = t
	}

	return &TemplateSet{
		views:    parsed,
		basePath: basePath,
	}, nil
}

// ViewHandlerWithData renders view inside layout with data exposed as {{ .Data }}.
func (ts *TemplateSet) ViewHandlerWithData(layout string, view ViewDef, data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vd := ViewData{
			Title:    view.Title,
			Bundle:   view.Bundle,
			BasePath: ts.basePath,
			Data:     data,
		}
		if err := ts.Render(w, layout, view.Template, vd); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// ErrorHandler renders view inside layout with the given status code.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vd := ViewData{
			Title:    view.Title,
			Bundle:   view.Bundle,
			BasePath: ts.basePath,
		}
		t, ok := ts.views[view.Template]
		if !ok {
			http.Error(w, http.StatusText(status), status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		t.ExecuteTemplate(w, layout, vd)
	}
}

// Render executes layout for the view parsed from viewPath.
func (ts *TemplateSet) Render(w http.ResponseWriter, layout, viewPath string, data ViewData) error {
	t, ok := ts.views[viewPath]
	if !ok {
		return fmt.Errorf("template not found: %s", viewPath)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, layout, data)
}

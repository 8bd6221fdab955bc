package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/cmyk-lab/pkg/web"
)

var testFS = fstest.MapFS{
	"layouts/app.html": {Data: []byte(
		`{{ define "app" }}<!DOCTYPE html><title>{{ .Title }}</title>` +
			`<body data-basepath="{{ .BasePath }}">{{ block "content" . }}{{ end }}` +
			`<script src="{{ .BasePath }}/dist/{{ .Bundle }}.js"></script></body>{{ end }}`,
	)},
	"views/home.html":   {Data: []byte(`{{ define "content" }}Convert{{ with .Data }} up to {{ . }}{{ end }}{{ end }}`)},
	"views/404.html":    {Data: []byte(`{{ define "content" }}Not Found{{ end }}`)},
	"static/app.js":     {Data: []byte(`console.log("app")`)},
	"public/robots.txt": {Data: []byte("User-agent: *")},
}

var views = []web.ViewDef{
	{Route: "/{$}", Template: "home.html", Title: "Convert", Bundle: "app"},
}

var notFound = web.ViewDef{Template: "404.html", Title: "Not Found"}

func newTemplateSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(testFS, testFS, "layouts/*.html", "views", "/app", append(views, notFound))
	if err != nil {
		t.Fatalf("NewTemplateSet() error = %v", err)
	}
	return ts
}

func TestNewTemplateSet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		glob   string
		subdir string
		views  []web.ViewDef
	}{
		{"invalid layout glob", "nonexistent/*.html", "views", views},
		{"missing template", "layouts/*.html", "views", []web.ViewDef{{Template: "missing.html"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := web.NewTemplateSet(testFS, testFS, tt.glob, tt.subdir, "/app", tt.views); err == nil {
				t.Error("NewTemplateSet() expected error")
			}
		})
	}
}

func TestViewHandlerWithData(t *testing.T) {
	ts := newTemplateSet(t)

	w := httptest.NewRecorder()
	ts.ViewHandlerWithData("app", views[0], "50 MB")(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{"<title>Convert</title>", `data-basepath="/app"`, "/app/dist/app.js", "up to 50 MB"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
}

func TestErrorHandler(t *testing.T) {
	ts := newTemplateSet(t)

	w := httptest.NewRecorder()
	ts.ErrorHandler("app", notFound, http.StatusNotFound)(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not Found") {
		t.Error("error view not rendered")
	}
}

func TestRender_UnknownView(t *testing.T) {
	ts := newTemplateSet(t)

	if err := ts.Render(httptest.NewRecorder(), "app", "other.html", web.ViewData{}); err == nil {
		t.Error("Render() expected error for unknown view")
	}
}

func TestRouter_Fallback(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /exists", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("exists"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status without fallback = %d, want 404", w.Code)
	}

	r.SetFallback(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("custom 404"))
	})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))
	if w.Body.String() != "custom 404" {
		t.Errorf("body = %q, want custom 404", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exists", nil))
	if w.Body.String() != "exists" {
		t.Errorf("body = %q, want exists", w.Body.String())
	}
}

func TestDistServer(t *testing.T) {
	handler := web.DistServer(testFS, "static", "/dist/")

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/dist/app.js", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), "console.log") {
		t.Error("asset content not served")
	}

	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/dist/missing.js", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPublicFileRoutes(t *testing.T) {
	rs := web.PublicFileRoutes(testFS, "public", "robots.txt")

	if len(rs) != 1 || rs[0].Pattern != "/robots.txt" || rs[0].Method != http.MethodGet {
		t.Fatalf("routes = %+v", rs)
	}

	w := httptest.NewRecorder()
	rs[0].Handler(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	if !strings.Contains(w.Body.String(), "User-agent") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeEmbeddedFile(t *testing.T) {
	w := httptest.NewRecorder()
	web.ServeEmbeddedFile([]byte("<html></html>"), "text/html; charset=utf-8")(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.String() != "<html></html>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

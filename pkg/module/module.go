// Package module mounts self-contained HTTP handlers under a single-segment
// path prefix. Each module owns its middleware chain and sees request paths
// relative to its prefix.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/cmyk-lab/pkg/middleware"
)

// Module is an HTTP handler bound to a path prefix such as "/api".
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
	handler    http.Handler
}

// New creates a module for prefix. It panics if prefix is not a single
// path segment beginning with "/".
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	m := &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
	m.build()
	return m
}

// Prefix returns the module's mount path.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's chain. It is not safe to call once
// the module is serving requests.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
	m.build()
}

// Handler returns the module wrapped in its middleware. Middleware sees
// the full request path; the router sees the path relative to the prefix.
func (m *Module) Handler() http.Handler {
	return m.handler
}

// Serve dispatches a request addressed to the module's prefix.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.handler.ServeHTTP(w, req)
}

func (m *Module) build() {
	m.handler = m.middleware.Apply(http.HandlerFunc(m.dispatch))
}

func (m *Module) dispatch(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r := req.Clone(req.Context())
	r.URL.Path = path
	r.URL.RawPath = ""

	m.router.ServeHTTP(w, r)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}

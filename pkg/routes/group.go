// Package routes describes HTTP routes together with their OpenAPI
// metadata so registration and documentation stay in one place.
package routes

import (
	"net/http"

	"github.com/JaimeStill/cmyk-lab/pkg/openapi"
)

// Route is a single method and pattern bound to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group is a set of routes under a common prefix. Children inherit the
// accumulated prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents the group's routes under basePath.
// Routes without OpenAPI metadata are skipped. Operations without tags
// inherit the group's tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g *Group) addToSpec(parentPrefix string, spec *openapi.Spec) {
	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	fullPrefix := parentPrefix + g.Prefix

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		spec.AddOperation(fullPrefix+route.Pattern, route.Method, op)
	}

	for i := range g.Children {
		g.Children[i].addToSpec(fullPrefix, spec)
	}
}

// Register mounts every group on mux and documents it in spec.
// Handlers are registered relative to the module, while the spec
// records the full path under basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		pattern := fullPrefix + route.Pattern
		mux.HandleFunc(route.Method+" "+pattern, route.Handler)
	}

	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

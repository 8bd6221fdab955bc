// Package app serves the converter UI: a server-rendered page that uploads
// images to the conversion endpoint and tracks each file's status.
package app

import (
	"embed"
	"net/http"

	"github.com/JaimeStill/cmyk-lab/pkg/module"
	"github.com/JaimeStill/cmyk-lab/pkg/web"
)

//go:embed dist/*
var distFS embed.FS

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app"

var publicFiles = []string{
	"favicon.svg",
}

var views = []web.ViewDef{
	{Route: "/{$}", Template: "home.html", Title: "RGB to CMYK TIFF", Bundle: "app"},
}

var errorViews = []web.ViewDef{
	{Template: "404.html", Title: "Not Found", Bundle: "app"},
}

// Settings are rendered into the page for the script to read.
type Settings struct {
	Endpoint      string
	MaxUploadSize string
	AllowedTypes  []string
}

// NewModule creates the app module mounted at basePath.
func NewModule(basePath string, settings Settings) (*module.Module, error) {
	allViews := append(views, errorViews...)
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		basePath,
		allViews,
	)
	if err != nil {
		return nil, err
	}

	return module.New(basePath, buildRouter(ts, settings)), nil
}

func buildRouter(ts *web.TemplateSet, settings Settings) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(layout, errorViews[0], http.StatusNotFound))

	for _, view := range views {
		r.HandleFunc("GET "+view.Route, ts.ViewHandlerWithData(layout, view, settings))
	}

	r.HandleFunc("GET /dist/", web.DistServer(distFS, "dist", "/dist/"))

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}

// Package api assembles the JSON API module: domain systems, routes,
// middleware, and the generated OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/internal/infrastructure"
	"github.com/JaimeStill/cmyk-lab/pkg/middleware"
	"github.com/JaimeStill/cmyk-lab/pkg/module"
	"github.com/JaimeStill/cmyk-lab/pkg/openapi"
)

// NewModule creates the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := cfg.API.OpenAPI.Spec(cfg.Version, cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TraceID())
	m.Use(middleware.TrimSlash())
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, nil
}

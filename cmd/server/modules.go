package main

import (
	"net/http"

	"github.com/JaimeStill/cmyk-lab/internal/api"
	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/internal/infrastructure"
	"github.com/JaimeStill/cmyk-lab/pkg/middleware"
	"github.com/JaimeStill/cmyk-lab/pkg/module"
	"github.com/JaimeStill/cmyk-lab/web/app"
	"github.com/JaimeStill/cmyk-lab/web/scalar"
)

// Modules holds every prefix-mounted module of the service.
type Modules struct {
	API    *module.Module
	App    *module.Module
	Scalar *module.Module
}

// NewModules creates the API, UI, and API reference modules.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	appModule, err := app.NewModule("/app", app.Settings{
		Endpoint:      cfg.API.BasePath + "/convert",
		MaxUploadSize: cfg.Convert.MaxUploadSize,
		AllowedTypes:  cfg.Convert.AllowedTypes,
	})
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.AddSlash())
	appModule.Use(middleware.Logger(infra.Logger.With("module", "app")))

	scalarModule, err := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	if err != nil {
		return nil, err
	}
	scalarModule.Use(middleware.AddSlash())

	return &Modules{
		API:    apiModule,
		App:    appModule,
		Scalar: scalarModule,
	}, nil
}

// Mount registers every module on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusFound)
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}

package api

import (
	"net/http"

	"github.com/JaimeStill/cmyk-lab/internal/conversions"
	"github.com/JaimeStill/cmyk-lab/pkg/openapi"
	"github.com/JaimeStill/cmyk-lab/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, runtime *Runtime, domain *Domain) {
	conversionsHandler := conversions.NewHandler(
		domain.Conversions,
		runtime.Logger,
		runtime.Convert.MaxUploadSizeBytes(),
		runtime.Convert.AllowedTypes,
	)

	routes.Register(
		mux,
		runtime.BasePath,
		spec,
		conversionsHandler.Routes(),
	)
}

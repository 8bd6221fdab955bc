package api

import (
	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	BasePath string
	Convert  *config.ConvertConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: infra.Scoped("api"),
		BasePath:       cfg.API.BasePath,
		Convert:        &cfg.Convert,
	}
}

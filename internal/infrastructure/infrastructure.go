// Package infrastructure assembles the dependencies shared by every module:
// lifecycle coordination and logging.
package infrastructure

import (
	"log/slog"

	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/pkg/lifecycle"
	"github.com/JaimeStill/cmyk-lab/pkg/logging"
)

// Infrastructure holds the core systems required by all modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
}

// New creates an Infrastructure from the application configuration.
func New(cfg *config.Config) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.New(&cfg.Logging),
	}
}

// Scoped returns a copy whose logger carries the module attribute.
func (i *Infrastructure) Scoped(module string) *Infrastructure {
	return &Infrastructure{
		Lifecycle: i.Lifecycle,
		Logger:    i.Logger.With("module", module),
	}
}

package main

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/cmyk-lab/internal/config"
	"github.com/JaimeStill/cmyk-lab/internal/infrastructure"
	"github.com/JaimeStill/cmyk-lab/internal/server"
	"github.com/JaimeStill/cmyk-lab/pkg/module"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	router  *module.Router
	http    server.System
	logger  *slog.Logger
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra := infrastructure.New(cfg)

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"api", cfg.API.BasePath,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		router:  router,
		http:    server.New(&cfg.Server, cfg.ShutdownTimeoutDuration(), router, infra.Logger),
		logger:  infra.Logger,
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

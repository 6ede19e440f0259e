// Package app holds the assembled review API and controls its lifecycle.
package app

import (
	"log/slog"

	"github.com/codesphere-app/review-api/internal/config"
	"github.com/codesphere-app/review-api/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp sets up the application from already constructed components.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	logger.Info("review API initialized",
		"llm_provider", cfg.AI.LLMProvider,
		"generator_model", cfg.GeneratorModel(),
		"client_timeout", cfg.Server.ClientTimeout)

	return &App{
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting review API", "server_port", a.cfg.Server.Port)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the HTTP server down, letting in-flight reviews finish.
func (a *App) Stop() error {
	a.logger.Info("shutting down review API")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("review API stopped successfully")
	return nil
}

package cli

import (
	"context"

	"infoco/internal/server"
)

// ServeCommand handles the serve command
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the HTTP API until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context) error {
	cfg := c.app.config.Server
	e := server.New(c.app.service, server.Options{
		Addr:            cfg.Addr,
		AllowOrigins:    cfg.AllowOrigins,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, c.app.logger)

	c.app.logger.WithField("addr", cfg.Addr).Info("serving HTTP API")
	if err := server.Run(ctx, e, cfg.Addr, cfg.ShutdownTimeout); err != nil {
		return err
	}
	c.app.logger.Info("server stopped")
	return nil
}

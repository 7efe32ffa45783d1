package app

import (
	"context"
	"fmt"

	"github.com/ms/opnet/internal/ctxlog"
	"github.com/ms/opnet/internal/net"
)

// Run executes the loaded network based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		a.startHealthcheckServer(appConfig.HealthcheckPort)
	}

	if appConfig.Strategy != "" {
		a.def.Type = appConfig.Strategy
	}
	if appConfig.Workers > 0 {
		a.def.Workers = appConfig.Workers
	}

	a.logger.Debug("Constructing net from definition.", "net", a.def.Name, "strategy", a.def.Type)
	n, err := net.Create(ctx, a.def, a.ws, a.registry)
	if err != nil {
		return fmt.Errorf("failed to construct net: %w", err)
	}

	a.logger.Info("Starting execution.", "net", n.Name(), "operators", len(a.def.Ops))
	result, runErr := n.Run(ctx)
	a.logger.Info("Execution finished.",
		"run_id", result.RunID,
		"duration", result.Duration,
		"completed", len(result.Completed),
		"failed", len(result.Failed),
		"skipped", len(result.Skipped),
	)
	if runErr != nil {
		return fmt.Errorf("execution failed: %w", runErr)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

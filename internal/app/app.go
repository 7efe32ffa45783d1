// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: it loads the network definition, registers operator
// modules, and drives one execution.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ms/opnet/internal/config"
	"github.com/ms/opnet/internal/ctxlog"
	"github.com/ms/opnet/internal/registry"
	"github.com/ms/opnet/internal/workspace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	def      *config.NetDef
	ws       *workspace.Workspace
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// A failure to load the network definition is a fatal startup error and
// panics; the entrypoint recovers to produce a clean exit message.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	def, err := loader.Load(ctx, appConfig.NetPath)
	if err != nil {
		panic(fmt.Errorf("failed to load network definition: %w", err))
	}
	logger.Debug("Network definition loaded into unified model.", "net", def.Name)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All operator modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		def:      def,
		ws:       workspace.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Workspace returns the application's blob workspace. This is primarily for testing.
func (a *App) Workspace() *workspace.Workspace {
	return a.ws
}

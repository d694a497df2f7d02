// Package app implements the application layer for forge.
package app

import (
	"context"
	"os"

	"go.trai.ch/zerr"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/regen"
)

// App ties the regeneration controller and the external executor together.
type App struct {
	buildDir   string
	controller *regen.Controller
	executor   ports.Executor
	logger     ports.Logger
}

// New creates an App instance.
func New(buildDir string, controller *regen.Controller, executor ports.Executor, logger ports.Logger) *App {
	return &App{
		buildDir:   buildDir,
		controller: controller,
		executor:   executor,
		logger:     logger,
	}
}

// Build regenerates the graph if needed and hands off to the executor,
// passing extra arguments through verbatim. When the executor fails, the
// recorded file-set snapshot is discarded so the next invocation starts
// from a forced regeneration.
func (a *App) Build(ctx context.Context, force bool, executorArgs []string) error {
	if err := os.MkdirAll(a.buildDir, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create build directory")
	}

	if err := a.controller.EnsureFresh(ctx, force); err != nil {
		return err
	}

	if err := a.executor.Execute(ctx, a.controller.BuildFile(), executorArgs); err != nil {
		if inv := a.controller.Invalidate(); inv != nil {
			a.logger.Error(inv)
		} else {
			a.logger.Warn("discarded file-set snapshot, next build regenerates " + forge.BuildFileName)
		}
		return zerr.Wrap(err, "build execution failed")
	}
	return nil
}

// Clean removes the build directory tree.
func (a *App) Clean() error {
	if err := os.RemoveAll(a.buildDir); err != nil {
		return zerr.Wrap(err, "failed to remove build directory")
	}
	a.logger.Info("removed " + a.buildDir)
	return nil
}

// Package main is the entry point for the forge CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/forge/cmd/forge/commands"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/adapters/describe"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/ninja"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/regen"
)

func main() {
	if err := run(); err != nil {
		// zerr prints a report with stack trace and metadata under %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New()

	cli := commands.New(func(configPath string) (*app.App, error) {
		ws, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}

		runner := describe.NewRunner(ws.Regen, ws.Build)
		controller := regen.NewController(ws.Build.BuildDir, runner, log)
		executor := ninja.NewExecutor(ws.Ninja)

		return app.New(ws.Build.BuildDir, controller, executor, log), nil
	})

	return cli.Execute(context.Background())
}

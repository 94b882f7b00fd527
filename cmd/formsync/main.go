// Package main provides the entry point for the formsync CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentstation/formsync/cmd/formsync/app"
	"github.com/agentstation/formsync/pkg/constants"
)

// Set by the release build through -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	runErr := application.Execute(ctx, os.Args[1:])
	cancel()

	// the signal context may already be done
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil {
		application.Logger().Error().Err(shutdownErr).Msg("Shutdown error")
	}

	if runErr != nil {
		shutdownCancel()
		app.ExitOnError(runErr)
	}
}

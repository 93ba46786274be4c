// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the amb command-line interface: the argument handler,
// the help and version screens, and the built-in commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/config"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/internal/logging"
	"github.com/ambar-lang/amb/internal/version"
	"github.com/ambar-lang/amb/pkg/types"
)

var (
	// Version overrides the built-in version string (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns the version shown on the version screen.
func getVersionString() string {
	if Version == "" {
		return version.Current.String()
	}
	return Version
}

// getBuildString returns build provenance, or "" for source builds.
func getBuildString() string {
	if Commit == "unknown" && BuildDate == "unknown" {
		return ""
	}
	return fmt.Sprintf("commit: %s, built: %s", Commit, BuildDate)
}

// Main builds the application from the process environment, runs one command
// and returns the exit code.
func Main() int {
	logger := logging.Default()
	cfg := config.NewManager(config.WithLogger(logger))
	app := appctx.New(cfg, appctx.WithLogger(logger))

	if err := app.Initialize(); err != nil {
		printError(app.Err(), issue.Wrap(issue.DirectoryCreateFailedId, "initialize amb", err), false)
		return types.ExitFailure.Int()
	}

	factory := command.NewFactory(logger)
	RegisterBuiltins(factory, app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewHandler(app, factory).Run(ctx, os.Args[1:]).Int()
}

// Execute runs Main and exits the process with its code.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

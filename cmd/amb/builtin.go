// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/pkg/types"

	"github.com/spf13/pflag"
)

type (
	// action is the behavior of a built-in command. The shared wrapper parses
	// flags, handles --help and renders errors.
	action interface {
		// flags declares the command's own options on fs.
		flags(fs *pflag.FlagSet)
		// run executes with the positional arguments left after flag parsing.
		run(ctx context.Context, args []string) error
	}

	// builtin adapts an action to command.Command.
	builtin struct {
		command.Base
		name   string
		app    *appctx.Context
		action action
	}
)

// RegisterBuiltins installs every built-in command into factory.
func RegisterBuiltins(factory *command.Factory, app *appctx.Context) {
	ctors := map[string]func() *builtin{
		"completion": func() *builtin { return newCompletionCommand(app, factory) },
		"config":     func() *builtin { return newConfigCommand(app) },
		"help":       func() *builtin { return newHelpCommand(app, factory) },
		"init":       func() *builtin { return newInitCommand(app) },
		"install":    func() *builtin { return newInstallCommand(app) },
		"list":       func() *builtin { return newListCommand(app) },
		"publish":    func() *builtin { return newPublishCommand(app) },
		"remove":     func() *builtin { return newRemoveCommand(app) },
		"search":     func() *builtin { return newSearchCommand(app) },
		"update":     func() *builtin { return newUpdateCommand(app) },
		"version":    func() *builtin { return newVersionCommand(app) },
	}
	for name, ctor := range ctors {
		factory.Register(name, func() (command.Command, error) { return ctor(), nil })
	}
}

func newBuiltin(app *appctx.Context, name string, base command.Base, a action) *builtin {
	return &builtin{Base: base, name: name, app: app, action: a}
}

// flagSet builds a fresh flag set for one parse.
func (b *builtin) flagSet() (*pflag.FlagSet, *bool) {
	fs := pflag.NewFlagSet(b.name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	help := fs.BoolP("help", "h", false, "show help for this command")
	b.action.flags(fs)
	return fs, help
}

// FlagUsages lists the command's options for its help screen.
func (b *builtin) FlagUsages() string {
	fs, _ := b.flagSet()
	return strings.TrimRight(fs.FlagUsages(), "\n")
}

// Execute parses flags, runs the action and maps its error to an exit code.
func (b *builtin) Execute(ctx context.Context, args []string) types.ExitCode {
	fs, help := b.flagSet()
	if err := fs.Parse(args); err != nil {
		return b.fail(usageErrorf("%v", err))
	}
	if *help {
		renderCommandHelp(b.app.Out(), b.name, b)
		return types.ExitSuccess
	}

	if err := b.action.run(ctx, fs.Args()); err != nil {
		return b.fail(err)
	}
	return types.ExitSuccess
}

// fail renders err and returns its exit code.
func (b *builtin) fail(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			printError(b.app.Err(), exitErr.Err, b.app.IsVerbose())
		}
		return exitErr.Code
	}

	var uerr *usageError
	if !errors.As(err, &uerr) {
		printError(b.app.Err(), err, b.app.IsVerbose())
		return types.ExitFailure
	}

	printError(b.app.Err(), issue.Wrap(issue.InvalidUsageId, "", err), b.app.IsVerbose())
	usage := "amb " + b.name
	if b.Usage() != "" {
		usage += " " + b.Usage()
	}
	fmt.Fprintf(b.app.Err(), "Usage: %s\n", usage)
	return types.ExitFailure
}

// noFlags is embedded by actions without options of their own.
type noFlags struct{}

func (noFlags) flags(*pflag.FlagSet) {}

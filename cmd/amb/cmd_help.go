// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
)

type helpAction struct {
	noFlags
	app     *appctx.Context
	factory *command.Factory
}

func newHelpCommand(app *appctx.Context, factory *command.Factory) *builtin {
	return newBuiltin(app, "help", command.Base{
		Desc:        "Show help for amb or a command",
		UsageText:   "[command]",
		ExampleText: "amb help install",
	}, &helpAction{app: app, factory: factory})
}

func (a *helpAction) run(_ context.Context, args []string) error {
	switch len(args) {
	case 0:
		renderHelp(a.app.Out(), a.factory)
		return nil
	case 1:
	default:
		return usageErrorf("help takes at most one command name")
	}

	cmd, err := a.factory.Create(args[0])
	if errors.Is(err, command.ErrCommandNotFound) {
		return issue.Wrap(issue.CommandNotFoundId, "", err)
	}
	if err != nil {
		return err
	}
	renderCommandHelp(a.app.Out(), args[0], cmd)
	return nil
}

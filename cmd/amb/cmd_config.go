// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/config"
	"github.com/ambar-lang/amb/internal/issue"
)

type configAction struct {
	noFlags
	app *appctx.Context
}

func newConfigCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "config", command.Base{
		Desc:        "Show or change the global configuration",
		UsageText:   "list | get <key> | set <key> <value> | path | validate",
		ExampleText: "amb config set network_timeout 60",
	}, &configAction{app: app})
}

func (a *configAction) run(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usageErrorf("no config subcommand specified")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.list(rest)
	case "get":
		return a.get(rest)
	case "set":
		return a.set(rest)
	case "path":
		if len(rest) != 0 {
			return usageErrorf("config path takes no arguments")
		}
		fmt.Fprintln(a.app.Out(), a.app.Config().ConfigPath())
		return nil
	case "validate":
		return a.validate(rest)
	default:
		return usageErrorf("unknown config subcommand %q", sub)
	}
}

func (a *configAction) list(args []string) error {
	if len(args) != 0 {
		return usageErrorf("config list takes no arguments")
	}
	for _, key := range config.Keys() {
		value, err := a.app.Config().Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.app.Out(), "%s = %s\n", key, value)
	}
	return nil
}

func (a *configAction) get(args []string) error {
	if len(args) != 1 {
		return usageErrorf("config get takes exactly one key")
	}
	value, err := a.app.Config().Get(args[0])
	if err != nil {
		return keyError(err)
	}
	fmt.Fprintln(a.app.Out(), value)
	return nil
}

func (a *configAction) set(args []string) error {
	if len(args) != 2 {
		return usageErrorf("config set takes a key and a value")
	}
	key, value := args[0], args[1]

	if a.app.IsDryRun() {
		if _, err := a.app.Config().Get(key); err != nil {
			return keyError(err)
		}
		fmt.Fprintf(a.app.Out(), "%s would set %s = %s\n", WarningStyle.Render("[dry-run]"), key, value)
		return nil
	}

	if err := a.app.Config().Set(key, value); err != nil {
		return keyError(err)
	}
	stored, err := a.app.Config().Get(key)
	if err != nil {
		return keyError(err)
	}
	fmt.Fprintf(a.app.Out(), "%s %s = %s\n", SuccessStyle.Render("Set"), key, stored)
	return nil
}

func (a *configAction) validate(args []string) error {
	if len(args) != 0 {
		return usageErrorf("config validate takes no arguments")
	}
	if err := a.app.Config().Validate(); err != nil {
		return issue.WrapWithContext(err, "validate configuration", a.app.Config().ConfigPath())
	}
	fmt.Fprintln(a.app.Out(), SuccessStyle.Render("Configuration is valid"))
	return nil
}

// keyError attaches advice to config key failures.
func keyError(err error) error {
	switch {
	case errors.Is(err, config.ErrUnknownKey):
		return issue.Wrap(issue.UnknownConfigKeyId, "", err)
	case errors.Is(err, config.ErrConfig):
		return issue.Wrap(issue.ConfigLoadFailedId, "save configuration", err)
	default:
		return err
	}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
)

type versionAction struct {
	noFlags
	app *appctx.Context
}

func newVersionCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "version", command.Base{
		Desc: "Show version information",
	}, &versionAction{app: app})
}

func (a *versionAction) run(context.Context, []string) error {
	renderVersion(a.app.Out())
	return nil
}

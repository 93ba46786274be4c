// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
)

type removeAction struct {
	noFlags
	app *appctx.Context
}

func newRemoveCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "remove", command.Base{
		Desc:         "Remove packages",
		UsageText:    "<package>...",
		ExampleText:  "amb remove math_utils",
		NeedsProject: true,
	}, &removeAction{app: app})
}

func (a *removeAction) run(_ context.Context, args []string) error {
	refs, err := parseRefs(args)
	if err != nil {
		return err
	}

	lib := a.app.ProjectLibDir()
	for _, ref := range refs {
		target := filepath.Join(lib, ref.Name)
		if a.app.IsDryRun() {
			fmt.Fprintf(a.app.Out(), "%s would remove %s from %s\n", WarningStyle.Render("[dry-run]"), CmdStyle.Render(ref.Name), target)
			continue
		}
		fmt.Fprintf(a.app.Out(), "Removing %s from %s\n", CmdStyle.Render(ref.Name), target)
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/internal/manifest"
)

type publishAction struct {
	noFlags
	app *appctx.Context
}

func newPublishCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "publish", command.Base{
		Desc:         "Publish a package to the registry",
		UsageText:    "[path]",
		ExampleText:  "amb publish",
		NeedsProject: true,
	}, &publishAction{app: app})
}

func (a *publishAction) run(_ context.Context, args []string) error {
	if len(args) > 1 {
		return usageErrorf("publish takes at most one path")
	}

	dir, _ := a.app.ProjectRoot()
	if len(args) == 1 {
		dir = args[0]
	}

	m, err := manifest.Load(dir)
	if errors.Is(err, manifest.ErrNotFound) {
		return issue.NewErrorContext().
			WithOperation("publish package").
			WithResource(manifest.Path(dir)).
			WithSuggestion("Run 'amb init' to create a manifest").
			Wrap(err).
			Build()
	}
	if err == nil {
		err = m.Validate()
	}
	if err != nil {
		return issue.Wrap(issue.ManifestInvalidId, "publish package", err)
	}

	registry := a.app.Config().Config().RegistryURL
	if a.app.IsDryRun() {
		fmt.Fprintf(a.app.Out(), "%s would publish %s@%s to %s\n", WarningStyle.Render("[dry-run]"), CmdStyle.Render(m.Name), m.Version, registry)
		return nil
	}
	fmt.Fprintf(a.app.Out(), "Publishing %s@%s to %s\n", CmdStyle.Render(m.Name), m.Version, registry)
	return nil
}

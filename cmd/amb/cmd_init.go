// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/internal/manifest"
	"github.com/ambar-lang/amb/internal/pkgref"

	"github.com/spf13/pflag"
)

type initAction struct {
	app         *appctx.Context
	force       bool
	description string
	version     string
}

func newInitCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "init", command.Base{
		Desc:        "Create a new Ambar project",
		UsageText:   "[name]",
		ExampleText: "amb init math_utils",
	}, &initAction{app: app})
}

func (a *initAction) flags(fs *pflag.FlagSet) {
	fs.BoolVarP(&a.force, "force", "f", false, "overwrite an existing ambar.json")
	fs.StringVarP(&a.description, "description", "d", "", "project description")
	fs.StringVar(&a.version, "version", manifest.DefaultVersion, "initial project version")
}

func (a *initAction) run(_ context.Context, args []string) error {
	if len(args) > 1 {
		return usageErrorf("init takes at most one project name")
	}

	dir := a.app.WorkDir()
	name := filepath.Base(dir)
	if len(args) == 1 {
		name = args[0]
	}
	if err := pkgref.ValidateName(name); err != nil {
		return issue.Wrap(issue.InvalidPackageRefId, "initialize project", err)
	}

	m := manifest.New(name)
	m.Description = a.description
	m.Version = a.version
	if err := m.Validate(); err != nil {
		return issue.Wrap(issue.ManifestInvalidId, "initialize project", err)
	}

	path := manifest.Path(dir)
	if a.app.IsDryRun() {
		fmt.Fprintf(a.app.Out(), "%s would create %s for %s@%s\n", WarningStyle.Render("[dry-run]"), path, CmdStyle.Render(m.Name), m.Version)
		return nil
	}

	if err := manifest.Save(dir, m, a.force); err != nil {
		if errors.Is(err, manifest.ErrExists) {
			return issue.Wrap(issue.ManifestExistsId, "initialize project", err)
		}
		return issue.WrapWithContext(err, "initialize project", path)
	}

	fmt.Fprintf(a.app.Out(), "%s %s for %s@%s\n", SuccessStyle.Render("Created"), path, CmdStyle.Render(m.Name), m.Version)
	return nil
}

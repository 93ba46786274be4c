// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/internal/pkgref"

	"github.com/spf13/pflag"
)

type installAction struct {
	app    *appctx.Context
	global bool
}

func newInstallCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "install", command.Base{
		Desc:        "Install packages",
		UsageText:   "<package>[@<version>]...",
		ExampleText: "amb install math_utils@1.0.0",
	}, &installAction{app: app})
}

func (a *installAction) flags(fs *pflag.FlagSet) {
	fs.BoolVarP(&a.global, "global", "g", false, "install into the global library")
}

func (a *installAction) run(_ context.Context, args []string) error {
	refs, err := parseRefs(args)
	if err != nil {
		return err
	}

	lib, scope := a.app.LibDir(), "global"
	if !a.global && a.app.IsInsideProject() {
		lib, scope = a.app.ProjectLibDir(), "project"
	}
	a.app.Logger().Debug("Resolving install target", "scope", scope, "lib", lib)

	registry := a.app.Config().Config().RegistryURL
	for _, ref := range refs {
		target := ref.InstallDir(lib)
		if a.app.IsDryRun() {
			fmt.Fprintf(a.app.Out(), "%s would install %s into %s\n", WarningStyle.Render("[dry-run]"), CmdStyle.Render(ref.String()), target)
			continue
		}
		fmt.Fprintf(a.app.Out(), "Installing %s from %s into %s\n", CmdStyle.Render(ref.String()), registry, target)
	}
	return nil
}

// parseRefs parses one or more package references, rejecting an empty list.
func parseRefs(args []string) ([]pkgref.Ref, error) {
	if len(args) == 0 {
		return nil, usageErrorf("no package specified")
	}
	refs := make([]pkgref.Ref, 0, len(args))
	for _, arg := range args {
		ref, err := pkgref.Parse(arg)
		if err != nil {
			return nil, issue.Wrap(issue.InvalidPackageRefId, "", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"

	"github.com/spf13/pflag"
)

type listAction struct {
	app    *appctx.Context
	global bool
}

func newListCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "list", command.Base{
		Desc:        "List installed packages",
		UsageText:   "[--global]",
		ExampleText: "amb list --global",
	}, &listAction{app: app})
}

func (a *listAction) flags(fs *pflag.FlagSet) {
	fs.BoolVarP(&a.global, "global", "g", false, "list the global library")
}

func (a *listAction) run(_ context.Context, args []string) error {
	if len(args) > 0 {
		return usageErrorf("list takes no arguments")
	}

	title, lib := "Global packages", a.app.LibDir()
	if !a.global {
		if !a.app.IsInsideProject() {
			return projectRequired("list")
		}
		title, lib = "Project packages", a.app.ProjectLibDir()
	}

	pkgs, err := installedPackages(lib)
	if err != nil {
		return issue.WrapWithContext(err, "list packages", lib)
	}

	w := a.app.Out()
	fmt.Fprintf(w, "%s (%s):\n", SubtitleStyle.Render(title), lib)
	if len(pkgs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	for _, p := range pkgs {
		fmt.Fprintf(w, "  %s\n", CmdStyle.Render(p))
	}
	return nil
}

// installedPackages returns name@version for every <lib>/<name>/<version>
// directory, sorted. A missing library is empty.
func installedPackages(lib string) ([]string, error) {
	names, err := os.ReadDir(lib)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pkgs []string
	for _, name := range names {
		if !name.IsDir() {
			continue
		}
		versions, err := os.ReadDir(filepath.Join(lib, name.Name()))
		if err != nil {
			return nil, err
		}
		for _, v := range versions {
			if v.IsDir() {
				pkgs = append(pkgs, name.Name()+"@"+v.Name())
			}
		}
	}
	slices.Sort(pkgs)
	return pkgs, nil
}

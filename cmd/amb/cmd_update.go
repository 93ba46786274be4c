// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/depgraph"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/internal/manifest"
	"github.com/ambar-lang/amb/internal/pkgref"
)

type updateAction struct {
	noFlags
	app *appctx.Context
}

func newUpdateCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "update", command.Base{
		Desc:         "Update packages",
		UsageText:    "[package]",
		ExampleText:  "amb update math_utils",
		NeedsProject: true,
	}, &updateAction{app: app})
}

func (a *updateAction) run(_ context.Context, args []string) error {
	if len(args) > 1 {
		return usageErrorf("update takes at most one package")
	}

	refs, err := a.targets(args)
	if err != nil {
		return err
	}

	w := a.app.Out()
	if len(refs) == 0 {
		fmt.Fprintln(w, "No dependencies to update.")
		return nil
	}

	refs, err = a.dependencyOrder(refs)
	if err != nil {
		return issue.WrapWithContext(err, "order packages for update", a.app.ProjectLibDir())
	}
	for _, ref := range refs {
		if a.app.IsDryRun() {
			fmt.Fprintf(w, "%s would update %s (%s)\n", WarningStyle.Render("[dry-run]"), CmdStyle.Render(ref.Name), ref.Spec)
			continue
		}
		fmt.Fprintf(w, "Updating %s (%s)\n", CmdStyle.Render(ref.Name), ref.Spec)
	}
	return nil
}

// targets returns the named package, or every manifest dependency.
func (a *updateAction) targets(args []string) ([]pkgref.Ref, error) {
	if len(args) == 1 {
		return parseRefs(args)
	}

	root, _ := a.app.ProjectRoot()
	m, err := manifest.Load(root)
	if errors.Is(err, manifest.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, issue.Wrap(issue.ManifestInvalidId, "read dependencies", err)
	}
	refs, err := m.DependencyRefs()
	if err != nil {
		return nil, issue.Wrap(issue.ManifestInvalidId, "read dependencies", err)
	}
	return refs, nil
}

// dependencyOrder sorts refs so installed dependencies are updated before
// the packages that need them.
func (a *updateAction) dependencyOrder(refs []pkgref.Ref) ([]pkgref.Ref, error) {
	byName := make(map[string]pkgref.Ref, len(refs))
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		byName[ref.Name] = ref
		names = append(names, ref.Name)
	}

	g, err := depgraph.Build(a.app.ProjectLibDir(), names)
	if err != nil {
		return nil, err
	}
	order, err := g.Order()
	if err != nil {
		return nil, err
	}
	a.app.Logger().Debug("Resolved update order", "packages", g.Len())

	sorted := make([]pkgref.Ref, 0, len(refs))
	for _, name := range order {
		if ref, ok := byName[name]; ok {
			sorted = append(sorted, ref)
		}
	}
	return sorted, nil
}

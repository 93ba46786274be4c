// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"

	"github.com/spf13/pflag"
)

type searchAction struct {
	app   *appctx.Context
	limit int
}

func newSearchCommand(app *appctx.Context) *builtin {
	return newBuiltin(app, "search", command.Base{
		Desc:        "Search for packages",
		UsageText:   "<query>",
		ExampleText: "amb search math",
	}, &searchAction{app: app})
}

func (a *searchAction) flags(fs *pflag.FlagSet) {
	fs.IntVar(&a.limit, "limit", 20, "maximum number of results")
}

func (a *searchAction) run(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usageErrorf("no search query specified")
	}
	if a.limit < 1 {
		return usageErrorf("--limit must be at least 1")
	}

	query := strings.Join(args, " ")
	cfg := a.app.Config().Config()
	a.app.Logger().Debug("Searching registry", "url", cfg.RegistryURL, "timeout", cfg.NetworkTimeout, "limit", a.limit)

	fmt.Fprintf(a.app.Out(), "Searching %s for %q\n", cfg.RegistryURL, query)
	fmt.Fprintln(a.app.Out(), "No packages found.")
	return nil
}

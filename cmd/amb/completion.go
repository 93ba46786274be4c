// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/pkg/types"

	"github.com/spf13/cobra"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

type completionAction struct {
	noFlags
	app     *appctx.Context
	factory *command.Factory
}

func newCompletionCommand(app *appctx.Context, factory *command.Factory) *builtin {
	return newBuiltin(app, "completion", command.Base{
		Desc:        "Generate shell completion scripts",
		UsageText:   "bash|zsh|fish|powershell",
		ExampleText: `eval "$(amb completion bash)"`,
	}, &completionAction{app: app, factory: factory})
}

// completionTree mirrors the registered commands as a cobra tree. It backs
// both the generated scripts and the hidden __complete requests they send.
func completionTree(factory *command.Factory) *cobra.Command {
	root := &cobra.Command{
		Use:           "amb",
		Short:         "Ambar Package Manager",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().AddFlagSet(newGlobalFlags())
	root.CompletionOptions.DisableDefaultCmd = true

	validArgs := map[string][]string{
		"completion": shells,
		"config":     {"list", "get", "set", "path", "validate"},
		"help":       factory.List(),
	}

	for _, name := range factory.List() {
		sub := &cobra.Command{
			Use:       name,
			Short:     factory.Describe(name),
			ValidArgs: validArgs[name],
			Run:       func(*cobra.Command, []string) {},
		}
		root.AddCommand(sub)
		if name == "help" {
			root.SetHelpCommand(sub)
		}
	}
	return root
}

// isCompletionRequest reports whether name is one of cobra's hidden
// completion entry points.
func isCompletionRequest(name string) bool {
	return name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd
}

// complete answers a shell completion request.
func (h *Handler) complete(ctx context.Context, inv invocation) types.ExitCode {
	root := completionTree(h.factory)
	root.SetArgs(append([]string{inv.command}, inv.args...))
	root.SetOut(h.app.Out())
	root.SetErr(h.app.Err())
	if err := root.ExecuteContext(ctx); err != nil {
		h.app.Logger().Debug("Completion request failed", "err", err)
		return types.ExitFailure
	}
	return types.ExitSuccess
}

func (a *completionAction) run(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageErrorf("completion takes exactly one shell name")
	}

	root := completionTree(a.factory)
	out := a.app.Out()
	switch args[0] {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	default:
		return usageErrorf("unsupported shell %q", args[0])
	}
}

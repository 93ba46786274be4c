// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/pkg/types"

	"github.com/spf13/pflag"
)

const (
	flagHelp    = "help"
	flagVersion = "version"
	flagVerbose = "verbose"
	flagDryRun  = "dry-run"
	flagNoColor = "no-color"
)

type (
	// Handler turns an argument vector into one command dispatch.
	Handler struct {
		app     *appctx.Context
		factory *command.Factory
	}

	// invocation is the result of scanning the global options.
	invocation struct {
		help    bool
		version bool
		verbose bool
		dryRun  bool
		noColor bool
		command string
		args    []string
	}
)

// newGlobalFlags declares the options accepted before the command name.
func newGlobalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("amb", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.BoolP(flagHelp, "h", false, "show this help message")
	fs.BoolP(flagVersion, "v", false, "show version information")
	fs.Bool(flagVerbose, false, "enable verbose output")
	fs.BoolP(flagDryRun, "n", false, "show what would be done without making changes")
	fs.Bool(flagNoColor, false, "disable colored output")
	return fs
}

// NewHandler creates a handler dispatching through factory.
func NewHandler(app *appctx.Context, factory *command.Factory) *Handler {
	return &Handler{app: app, factory: factory}
}

// Run dispatches args (without the program name) and returns the exit code.
// It never panics.
func (h *Handler) Run(ctx context.Context, args []string) (code types.ExitCode) {
	defer func() {
		if r := recover(); r != nil {
			h.app.Logger().Error("Unhandled failure", "panic", r)
			printError(h.app.Err(), fmt.Errorf("internal error: %v", r), false)
			code = types.ExitFailure
		}
	}()

	inv := h.parse(args)
	h.apply(inv)

	if inv.help && inv.command == "" {
		renderHelp(h.app.Out(), h.factory)
		return types.ExitSuccess
	}
	if inv.version {
		renderVersion(h.app.Out())
		return types.ExitSuccess
	}
	if inv.command == "" {
		renderHelp(h.app.Err(), h.factory)
		return types.ExitFailure
	}

	return h.dispatch(ctx, inv)
}

// parse scans global options up to the first non-option token, which becomes
// the command name. Unknown options are warned about and dropped.
func (h *Handler) parse(args []string) invocation {
	fs := newGlobalFlags()

	var inv invocation
	i := 0
	for i < len(args) {
		tok := args[i]
		i++

		if tok == "--" {
			if i < len(args) {
				inv.command = args[i]
				i++
			}
			break
		}
		if len(tok) > 1 && strings.HasPrefix(tok, "-") {
			h.setOption(fs, tok)
			continue
		}
		inv.command = tok
		break
	}
	inv.args = append([]string(nil), args[i:]...)

	inv.help, _ = fs.GetBool(flagHelp)
	inv.version, _ = fs.GetBool(flagVersion)
	inv.verbose, _ = fs.GetBool(flagVerbose)
	inv.dryRun, _ = fs.GetBool(flagDryRun)
	inv.noColor, _ = fs.GetBool(flagNoColor)
	return inv
}

// setOption applies one option token. Long options accept --name=value;
// short options may be grouped (-nh).
func (h *Handler) setOption(fs *pflag.FlagSet, tok string) {
	if long, ok := strings.CutPrefix(tok, "--"); ok {
		name, value, hasValue := strings.Cut(long, "=")
		if fs.Lookup(name) == nil {
			h.warnUnknown(tok)
			return
		}
		if !hasValue {
			value = "true"
		}
		if err := fs.Set(name, value); err != nil {
			h.app.Logger().Warn(fmt.Sprintf("Invalid value for option: %s", tok))
		}
		return
	}

	shorts := tok[1:]
	names := make([]string, 0, len(shorts))
	for _, r := range shorts {
		f := fs.ShorthandLookup(string(r))
		if f == nil {
			h.warnUnknown(tok)
			return
		}
		names = append(names, f.Name)
	}
	for _, name := range names {
		_ = fs.Set(name, "true")
	}
}

func (h *Handler) warnUnknown(tok string) {
	h.app.Logger().Warn(fmt.Sprintf("Unknown option: %s", tok))
}

// apply pushes the parsed switches into the context.
func (h *Handler) apply(inv invocation) {
	if inv.noColor {
		h.app.SetColor(false)
	}
	if inv.verbose {
		h.app.SetVerbose(true)
	}
	if inv.dryRun {
		h.app.SetDryRun(true)
	}
}

// dispatch resolves and runs the named command.
func (h *Handler) dispatch(ctx context.Context, inv invocation) types.ExitCode {
	if isCompletionRequest(inv.command) {
		return h.complete(ctx, inv)
	}

	cmd, err := h.factory.Create(inv.command)
	if err != nil {
		if errors.Is(err, command.ErrCommandNotFound) {
			h.reportUnknown(inv.command)
			return types.ExitFailure
		}
		printError(h.app.Err(), err, h.app.IsVerbose())
		return types.ExitFailure
	}

	if inv.help {
		renderCommandHelp(h.app.Out(), inv.command, cmd)
		return types.ExitSuccess
	}

	if cmd.RequiresProject() && !h.app.IsInsideProject() {
		printError(h.app.Err(), projectRequired(inv.command), h.app.IsVerbose())
		return types.ExitFailure
	}

	h.app.Logger().Debug("Executing command", "command", inv.command, "args", len(inv.args))

	code, err := command.SafeExecute(ctx, inv.command, cmd, inv.args)
	if err != nil {
		h.app.Logger().Error("Command failed", "command", inv.command, "err", err)
		printError(h.app.Err(), err, h.app.IsVerbose())
		return types.ExitFailure
	}
	return code
}

// reportUnknown prints the unknown-command error followed by every command.
func (h *Handler) reportUnknown(name string) {
	w := h.app.Err()
	printError(w, &command.NotFoundError{Name: name}, false)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available commands:")
	writeCommandList(w, h.factory)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use 'amb --help' for more information")
}

// projectRequired builds the project-required failure with its advice.
func projectRequired(name string) error {
	return issue.Wrap(issue.ProjectRequiredId, "", &command.ProjectRequiredError{Name: name})
}

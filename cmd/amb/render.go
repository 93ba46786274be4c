// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/issue"
	"github.com/ambar-lang/amb/internal/version"
)

// nameColumnWidth is the width command names are padded to in listings.
const nameColumnWidth = 14

type (
	// flagDescriber is implemented by commands that can list their own flags
	// for the per-command help screen.
	flagDescriber interface {
		FlagUsages() string
	}
)

// printError writes a user-facing failure as "Error: <message>". Actionable
// errors add their suggestions, and in verbose mode the cause chain.
func printError(w io.Writer, err error, verbose bool) {
	msg := err.Error()
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(verbose)
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+msg)
}

// writeCommandList writes every registered command, sorted, with its cached
// description. No command is constructed.
func writeCommandList(w io.Writer, factory *command.Factory) {
	for _, name := range factory.List() {
		fmt.Fprintf(w, "  %s%s\n", padName(name), factory.Describe(name))
	}
}

func padName(name string) string {
	if len(name) >= nameColumnWidth {
		return name + " "
	}
	return name + strings.Repeat(" ", nameColumnWidth-len(name))
}

// renderHelp writes the full help screen.
func renderHelp(w io.Writer, factory *command.Factory) {
	fmt.Fprintf(w, "%s v%s\n\n", TitleStyle.Render("Ambar Package Manager (amb)"), getVersionString())
	fmt.Fprintln(w, "Usage: amb [global-options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Global options:"))
	fmt.Fprint(w, newGlobalFlags().FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Commands:"))
	writeCommandList(w, factory)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For more information on a specific command:")
	fmt.Fprintln(w, "  amb help <command>")
}

// renderCommandHelp writes the help screen of one command.
func renderCommandHelp(w io.Writer, name string, cmd command.Command) {
	usage := "amb " + name
	if u := cmd.Usage(); u != "" {
		usage += " " + u
	}
	fmt.Fprintf(w, "Usage: %s\n\n", usage)

	if d := cmd.Description(); d != "" {
		fmt.Fprintf(w, "%s\n\n", d)
	}

	if fd, ok := cmd.(flagDescriber); ok {
		if flags := fd.FlagUsages(); flags != "" {
			fmt.Fprintln(w, SubtitleStyle.Render("Options:"))
			fmt.Fprintln(w, flags)
		}
	}

	if ex := cmd.Example(); ex != "" {
		fmt.Fprintln(w, SubtitleStyle.Render("Example:"))
		fmt.Fprintf(w, "  %s\n\n", ex)
	}

	if cmd.RequiresProject() {
		fmt.Fprintln(w, "This command must be run inside an Ambar project.")
	}
}

// renderVersion writes the version screen.
func renderVersion(w io.Writer) {
	fmt.Fprintf(w, "amb version %s\n", getVersionString())
	fmt.Fprintln(w, "Ambar Package Manager")
	fmt.Fprintf(w, "Protocol version %s\n", version.ProtocolVersion)
	if build := getBuildString(); build != "" {
		fmt.Fprintln(w, build)
	}
}

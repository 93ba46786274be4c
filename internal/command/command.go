// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"

	"github.com/ambar-lang/amb/pkg/types"
)

type (
	// Command is a named unit of work invoked from the command line.
	// Execute receives the arguments after the command name and returns the
	// process exit code; it reports user-facing failures itself.
	Command interface {
		Execute(ctx context.Context, args []string) types.ExitCode
		Description() string
		Usage() string
		Example() string
		RequiresProject() bool
	}

	// Constructor builds a fresh Command.
	Constructor func() (Command, error)

	// Base carries the descriptive half of a Command. Embed it and implement
	// Execute.
	Base struct {
		Desc         types.DescriptionText
		UsageText    string
		ExampleText  string
		NeedsProject bool
	}
)

// Description returns the one-line summary shown in command listings.
func (b Base) Description() string { return string(b.Desc) }

// Usage returns the argument synopsis that follows the command name.
func (b Base) Usage() string { return b.UsageText }

// Example returns a sample invocation, or "".
func (b Base) Example() string { return b.ExampleText }

// RequiresProject reports whether the command only runs inside a project.
func (b Base) RequiresProject() bool { return b.NeedsProject }

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/ambar-lang/amb/pkg/types"
)

type (
	// ExitError lets a command action pick its exit code. A nil Err exits
	// silently.
	ExitError struct {
		Code types.ExitCode
		Err  error
	}

	// usageError reports arguments a command cannot accept. The command's
	// usage line is printed after the message.
	usageError struct {
		msg string
	}
)

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

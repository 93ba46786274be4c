// SPDX-License-Identifier: MPL-2.0

package command

import (
	"context"

	"github.com/ambar-lang/amb/pkg/types"
)

// SafeExecute runs cmd and converts a panic into *ExecutionError with exit
// code 1. Otherwise the command's own exit code is returned unchanged.
func SafeExecute(ctx context.Context, name string, cmd Command, args []string) (code types.ExitCode, err error) {
	defer func() {
		if r := recover(); r != nil {
			code = types.ExitFailure
			err = &ExecutionError{Name: name, Panic: r}
		}
	}()

	return cmd.Execute(ctx, args), nil
}

// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
)

var (
	// ErrCommandNotFound is the sentinel error wrapped by NotFoundError.
	ErrCommandNotFound = errors.New("command not found")
	// ErrProjectRequired is the sentinel error wrapped by ProjectRequiredError.
	ErrProjectRequired = errors.New("project required")
	// ErrCommandExecution is the sentinel error wrapped by ExecutionError.
	ErrCommandExecution = errors.New("command execution failed")
	// ErrConstruction is the sentinel error wrapped by ConstructionError.
	ErrConstruction = errors.New("command construction failed")
)

type (
	// NotFoundError is returned for a name with no registered constructor.
	NotFoundError struct {
		Name string
	}

	// ProjectRequiredError is returned when a project-only command runs
	// outside a project.
	ProjectRequiredError struct {
		Name string
	}

	// ExecutionError reports a panic raised inside Command.Execute.
	ExecutionError struct {
		Name  string
		Panic any
	}

	// ConstructionError reports a constructor that failed or panicked.
	ConstructionError struct {
		Name string
		Err  error
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// Unwrap returns ErrCommandNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrCommandNotFound }

// Error implements the error interface.
func (e *ProjectRequiredError) Error() string {
	return fmt.Sprintf("command %q must be run inside an Ambar project", e.Name)
}

// Unwrap returns ErrProjectRequired for errors.Is() compatibility.
func (e *ProjectRequiredError) Unwrap() error { return ErrProjectRequired }

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %q panicked: %v", e.Name, e.Panic)
}

// Unwrap returns ErrCommandExecution for errors.Is() compatibility.
func (e *ExecutionError) Unwrap() error { return ErrCommandExecution }

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("create command %q: %v", e.Name, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *ConstructionError) Unwrap() []error { return []error{ErrConstruction, e.Err} }

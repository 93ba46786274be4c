// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type (
	// ActionableError is a failure shown to the user as a single line naming
	// the step that failed, optionally followed by advice.
	ActionableError struct {
		// Operation is the step that failed, phrased so that "failed to "
		// can precede it. Empty means the cause alone is the message.
		Operation string
		// Resource is the path or package the step was working on.
		Resource string
		// Suggestions are printed as a bullet list below the message.
		Suggestions []string
		Cause       error
	}

	// ErrorContext collects the parts of an ActionableError one call at a
	// time, for call sites whose advice is not in the catalog.
	ErrorContext struct {
		err ActionableError
	}
)

// WrapWithContext attaches an operation and a resource to err. A nil err
// stays nil.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

func (e *ActionableError) Error() string {
	parts := make([]string, 0, 3)
	if e.Operation != "" {
		parts = append(parts, "failed to "+e.Operation)
	}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders the message with its suggestions as bullets. With verbose
// set, every error in the cause chain follows on its own numbered line.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", i, err)
		}
	}
	return b.String()
}

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one line of advice.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, s)
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the collected error, or nil when neither an operation nor a
// cause was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" && c.err.Cause == nil {
		return nil
	}
	out := c.err
	out.Suggestions = slices.Clone(c.err.Suggestions)
	return &out
}

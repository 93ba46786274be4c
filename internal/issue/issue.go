// SPDX-License-Identifier: MPL-2.0

package issue

import "slices"

// Catalogued failures. Each maps to the advice shown under the error.
const (
	CommandNotFoundId Id = iota + 1
	ProjectRequiredId
	ConfigLoadFailedId
	DirectoryCreateFailedId
	InvalidPackageRefId
	ManifestExistsId
	ManifestInvalidId
	UnknownConfigKeyId
	InvalidUsageId
)

// Id identifies a catalogued failure.
type Id int

var suggestions = map[Id][]string{
	CommandNotFoundId: {
		"Run 'amb help' to see the available commands",
	},
	ProjectRequiredId: {
		"Run 'amb init' to create a project in the current directory",
		"Or change into a directory that contains ambar.json, ambar.lock or .ambar",
	},
	ConfigLoadFailedId: {
		"Check that the file is valid JSON",
		"Run 'amb config validate' to see which values are rejected",
	},
	DirectoryCreateFailedId: {
		"Check the permissions of the parent directory",
		"Set AMBAR_HOME to a writable location",
	},
	InvalidPackageRefId: {
		"Use name, name@1.2.3 or a range such as name@^1.2",
	},
	ManifestExistsId: {
		"Edit the existing ambar.json instead",
	},
	ManifestInvalidId: {
		"Fix the listed fields in ambar.json",
	},
	UnknownConfigKeyId: {
		"Run 'amb config list' to see the supported keys",
	},
	InvalidUsageId: {
		"Pass --help after the command name for its usage",
	},
}

// Suggestions returns the advice for id, or nil for an unknown id.
func (id Id) Suggestions() []string {
	return slices.Clone(suggestions[id])
}

// Wrap builds an ActionableError for a catalogued failure.
func Wrap(id Id, operation string, cause error) *ActionableError {
	return &ActionableError{
		Operation:   operation,
		Suggestions: id.Suggestions(),
		Cause:       cause,
	}
}

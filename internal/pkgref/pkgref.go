// SPDX-License-Identifier: MPL-2.0

// Package pkgref parses the package references given to amb commands.
//
// A reference is name[@spec]. The spec is empty or "latest", an exact version
// such as 1.2.0, or a semantic-version range such as ^1.2 or ">=1.0, <2.0".
package pkgref

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ambar-lang/amb/internal/version"
	"github.com/ambar-lang/amb/pkg/platform"

	"github.com/Masterminds/semver/v3"
)

// Latest is the spec that selects the newest available version.
const Latest = "latest"

const (
	// KindLatest selects the newest version.
	KindLatest Kind = iota
	// KindExact pins one version.
	KindExact
	// KindRange accepts any version satisfying a constraint.
	KindRange
)

var (
	// ErrInvalidRef is the sentinel error wrapped by InvalidRefError.
	ErrInvalidRef = errors.New("invalid package reference")

	namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

type (
	// Kind classifies a reference's version spec.
	Kind int

	// Ref is a parsed package reference.
	Ref struct {
		Name string
		Spec string
		Kind Kind

		exact      version.Version
		constraint *semver.Constraints
	}

	// InvalidRefError describes why a reference was rejected.
	InvalidRefError struct {
		Input  string
		Reason string
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindRange:
		return "range"
	default:
		return Latest
	}
}

// Error implements the error interface.
func (e *InvalidRefError) Error() string {
	return fmt.Sprintf("invalid package reference %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidRef for errors.Is() compatibility.
func (e *InvalidRefError) Unwrap() error { return ErrInvalidRef }

// ValidateName checks a package name. Names become directory names, so the
// Windows device names are rejected on every platform.
func ValidateName(name string) error {
	if name == "" {
		return &InvalidRefError{Input: name, Reason: "package name is empty"}
	}
	if !namePattern.MatchString(name) {
		return &InvalidRefError{Input: name, Reason: "package name must start with a letter or digit and contain only letters, digits, '_', '.' or '-'"}
	}
	if platform.IsWindowsReservedName(name) {
		return &InvalidRefError{Input: name, Reason: "package name is a reserved device name"}
	}
	return nil
}

// Parse parses name[@spec].
func Parse(arg string) (Ref, error) {
	name, spec, hasSpec := strings.Cut(arg, "@")
	if err := ValidateName(name); err != nil {
		var refErr *InvalidRefError
		if errors.As(err, &refErr) {
			refErr.Input = arg
		}
		return Ref{}, err
	}
	if hasSpec && spec == "" {
		return Ref{}, &InvalidRefError{Input: arg, Reason: "version after '@' is empty"}
	}

	ref, err := ParseSpec(spec)
	if err != nil {
		return Ref{}, &InvalidRefError{Input: arg, Reason: err.Error()}
	}
	ref.Name = name
	return ref, nil
}

// ParseSpec parses a version spec on its own, as found in manifest
// dependency maps. The returned Ref has no name.
func ParseSpec(spec string) (Ref, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, Latest) {
		return Ref{Spec: Latest, Kind: KindLatest}, nil
	}

	if v, err := version.Parse(spec); err == nil {
		return Ref{Spec: spec, Kind: KindExact, exact: v}, nil
	}

	c, err := semver.NewConstraint(spec)
	if err != nil {
		return Ref{}, fmt.Errorf("%q is neither a version nor a version range", spec)
	}
	return Ref{Spec: spec, Kind: KindRange, constraint: c}, nil
}

// String renders the reference as name@spec, or name alone for latest.
func (r Ref) String() string {
	if r.Kind == KindLatest {
		return r.Name
	}
	return r.Name + "@" + r.Spec
}

// Exact returns the pinned version of an exact reference.
func (r Ref) Exact() (version.Version, bool) {
	return r.exact, r.Kind == KindExact
}

// InstallDir returns <lib>/<name>/<version>. References that are not pinned
// install into <lib>/<name>/latest until a registry resolves them.
func (r Ref) InstallDir(lib string) string {
	dir := Latest
	if r.Kind == KindExact {
		dir = r.exact.String()
	}
	return filepath.Join(lib, r.Name, dir)
}

// Allows reports whether v satisfies the reference.
func (r Ref) Allows(v version.Version) bool {
	switch r.Kind {
	case KindExact:
		return v.Equal(r.exact)
	case KindRange:
		sv, err := semver.NewVersion(v.String())
		if err != nil {
			return false
		}
		return r.constraint.Check(sv)
	default:
		return true
	}
}

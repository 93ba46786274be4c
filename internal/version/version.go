// SPDX-License-Identifier: MPL-2.0

// Package version parses, formats, and orders the version identifiers used by
// Ambar packages (major.minor.patch[-prerelease][+build]).
//
// Ordering looks only at the numeric (major, minor, patch) triple. Two versions
// that differ only in their prerelease or build labels compare as equal.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVersion is the sentinel error wrapped by ParseError.
var ErrInvalidVersion = errors.New("invalid version")

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([A-Za-z0-9.-]+))?(?:\+([A-Za-z0-9.-]+))?$`)

type (
	// Version is an immutable semantic-version-like identifier.
	// The zero value is 0.0.0 with no labels.
	Version struct {
		major      uint32
		minor      uint32
		patch      uint32
		prerelease string
		build      string
	}

	// ParseError is returned when a string does not follow the version grammar
	// or one of its numeric components does not fit in 32 bits.
	ParseError struct {
		Input  string
		Reason string
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrInvalidVersion }

// New builds a version from its numeric triple.
func New(major, minor, patch uint32) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// Parse reads a version string. It never panics: malformed input and numeric
// components that overflow uint32 both produce a *ParseError.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &ParseError{Input: s, Reason: "expected major.minor.patch[-prerelease][+build]"}
	}

	var nums [3]uint32
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.ParseUint(m[i+1], 10, 32)
		if err != nil {
			return Version{}, &ParseError{Input: s, Reason: name + " component out of range"}
		}
		nums[i] = uint32(n)
	}

	return Version{
		major:      nums[0],
		minor:      nums[1],
		patch:      nums[2],
		prerelease: m[4],
		build:      m[5],
	}, nil
}

// MustParse is like Parse but panics on error. Use it only for literals.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Major returns the major component.
func (v Version) Major() uint32 { return v.major }

// Minor returns the minor component.
func (v Version) Minor() uint32 { return v.minor }

// Patch returns the patch component.
func (v Version) Patch() uint32 { return v.patch }

// Prerelease returns the prerelease label, or "" when absent.
func (v Version) Prerelease() string { return v.prerelease }

// Build returns the build label, or "" when absent.
func (v Version) Build() string { return v.build }

// WithPrerelease returns a copy of v carrying the given prerelease label.
func (v Version) WithPrerelease(label string) Version {
	v.prerelease = label
	return v
}

// WithBuild returns a copy of v carrying the given build label.
func (v Version) WithBuild(label string) Version {
	v.build = label
	return v
}

// IsPrerelease reports whether v carries a prerelease label.
func (v Version) IsPrerelease() bool { return v.prerelease != "" }

// IsStable reports whether v has no prerelease label.
func (v Version) IsStable() bool { return v.prerelease == "" }

// String returns the canonical form major.minor.patch[-prerelease][+build].
func (v Version) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(v.major), 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(uint64(v.minor), 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(uint64(v.patch), 10))
	if v.prerelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.prerelease)
	}
	if v.build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.build)
	}
	return sb.String()
}

// Compare returns -1, 0, or +1 depending on whether a sorts before, with, or
// after b. Only the numeric triple takes part in the comparison.
func Compare(a, b Version) int {
	switch {
	case a.major != b.major:
		return cmpUint(a.major, b.major)
	case a.minor != b.minor:
		return cmpUint(a.minor, b.minor)
	default:
		return cmpUint(a.patch, b.patch)
	}
}

func cmpUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare is the method form of Compare.
func (v Version) Compare(other Version) int { return Compare(v, other) }

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool { return Compare(v, other) < 0 }

// Equal reports ordering equality. Labels are ignored, so 1.2.3-alpha equals 1.2.3.
func (v Version) Equal(other Version) bool { return Compare(v, other) == 0 }

// Satisfies reports whether v falls inside rangeExpr.
// Range matching is not implemented yet; every version satisfies every range.
func (v Version) Satisfies(rangeExpr string) bool {
	_ = rangeExpr
	return true
}

// SPDX-License-Identifier: MPL-2.0

// Package manifest reads and writes ambar.json, the manifest at the root of
// every Ambar project.
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/ambar-lang/amb/internal/discovery"
	"github.com/ambar-lang/amb/internal/pkgref"
	"github.com/ambar-lang/amb/internal/version"
	"github.com/ambar-lang/amb/pkg/cueutil"
)

//go:embed manifest_schema.cue
var manifestSchema string

// DefaultVersion is the version written by amb init.
const DefaultVersion = "0.1.0"

var (
	// ErrNotFound is returned by Load when the directory has no manifest.
	ErrNotFound = errors.New("manifest not found")
	// ErrExists is returned by Save when a manifest is already present.
	ErrExists = errors.New("manifest already exists")
	// ErrInvalidManifest is the sentinel error wrapped by ValidationError.
	ErrInvalidManifest = errors.New("invalid manifest")
)

type (
	// Manifest is the content of ambar.json.
	Manifest struct {
		Name         string            `json:"name"`
		Version      string            `json:"version"`
		Description  string            `json:"description,omitempty"`
		Dependencies map[string]string `json:"dependencies,omitempty"`
	}

	// ValidationError lists every problem found in a manifest.
	ValidationError struct {
		Path     string
		Problems []error
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid manifest %s", e.Path)
	for _, p := range e.Problems {
		msg += "\n  - " + p.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidManifest for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrInvalidManifest }

// New returns the manifest amb init writes for a new project.
func New(name string) Manifest {
	return Manifest{Name: name, Version: DefaultVersion}
}

// Path returns the manifest path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, discovery.ManifestFile)
}

// Load reads the manifest in dir and checks its shape. Names and versions are
// not validated; call Validate for that.
func Load(dir string) (Manifest, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	m, err := cueutil.Decode[Manifest](manifestSchema, data, "#Manifest",
		cueutil.WithFilename(discovery.ManifestFile))
	if err != nil {
		return Manifest{}, &ValidationError{Path: path, Problems: []error{err}}
	}
	return m, nil
}

// Save writes m to dir. An existing manifest is only replaced when overwrite
// is set.
func Save(dir string, m Manifest, overwrite bool) error {
	path := Path(dir)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Validate checks the name, the version and every dependency spec.
func (m Manifest) Validate() error {
	var problems []error

	if err := pkgref.ValidateName(m.Name); err != nil {
		problems = append(problems, fmt.Errorf("name: %w", err))
	}
	if _, err := version.Parse(m.Version); err != nil {
		problems = append(problems, fmt.Errorf("version: %w", err))
	}

	for _, dep := range slices.Sorted(maps.Keys(m.Dependencies)) {
		if err := pkgref.ValidateName(dep); err != nil {
			problems = append(problems, fmt.Errorf("dependencies: %w", err))
			continue
		}
		if _, err := pkgref.ParseSpec(m.Dependencies[dep]); err != nil {
			problems = append(problems, fmt.Errorf("dependencies.%s: %w", dep, err))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Path: discovery.ManifestFile, Problems: problems}
	}
	return nil
}

// DependencyRefs returns the dependencies as parsed references, sorted by name.
func (m Manifest) DependencyRefs() ([]pkgref.Ref, error) {
	refs := make([]pkgref.Ref, 0, len(m.Dependencies))
	for _, name := range slices.Sorted(maps.Keys(m.Dependencies)) {
		spec := m.Dependencies[name]
		arg := name
		if spec != "" {
			arg += "@" + spec
		}
		ref, err := pkgref.Parse(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

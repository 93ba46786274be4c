// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ManifestFile is the project manifest marker.
	ManifestFile = "ambar.json"
	// LockFile is the lock file marker.
	LockFile = "ambar.lock"
	// MetadataDir is the project metadata directory marker.
	MetadataDir = ".ambar"
)

// ErrEmptyStart is returned when FindProjectRoot is called without a start
// directory.
var ErrEmptyStart = errors.New("discovery: empty start directory")

type (
	// Option configures a project search.
	Option func(*finder)

	finder struct {
		excluded map[string]bool
	}

	// marker is a file or directory whose presence marks a project root.
	marker struct {
		name  string
		isDir bool
	}
)

// markers are checked in this order in every directory.
var markers = []marker{
	{name: ManifestFile},
	{name: LockFile},
	{name: MetadataDir, isDir: true},
}

// WithExcludedDir ignores a metadata directory at exactly path. The per-user
// ambar root normally lives at ~/.ambar, which would otherwise make the home
// directory look like a project.
func WithExcludedDir(path string) Option {
	return func(f *finder) {
		if path == "" {
			return
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		f.excluded[filepath.Clean(path)] = true
	}
}

// FindProjectRoot returns the nearest directory at or above start that holds a
// project marker. The boolean is false when no ancestor is marked; the error
// is only set when start cannot be resolved to an absolute path.
func FindProjectRoot(start string, opts ...Option) (string, bool, error) {
	if start == "" {
		return "", false, ErrEmptyStart
	}

	f := &finder{excluded: make(map[string]bool)}
	for _, opt := range opts {
		opt(f)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory %s: %w", start, err)
	}
	dir = filepath.Clean(dir)

	for {
		if _, ok := f.markerIn(dir); ok {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// HasMarker reports whether dir itself holds a project marker and which one.
func HasMarker(dir string) (string, bool) {
	f := &finder{}
	return f.markerIn(dir)
}

func (f *finder) markerIn(dir string) (string, bool) {
	for _, m := range markers {
		path := filepath.Join(dir, m.name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if m.isDir != info.IsDir() {
			continue
		}
		if m.isDir && f.excluded[path] {
			continue
		}
		return m.name, true
	}
	return "", false
}

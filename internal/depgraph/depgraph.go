// SPDX-License-Identifier: MPL-2.0

// Package depgraph orders packages so that every package comes after the
// packages it depends on. The graph is built from the manifests of packages
// already installed in a library directory.
package depgraph

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ambar-lang/amb/internal/manifest"
	"github.com/ambar-lang/amb/internal/pkgref"
	"github.com/ambar-lang/amb/internal/version"
)

// latestDir is the install directory of packages referenced without a pinned version.
const latestDir = "latest"

type (
	// CycleError is returned when packages depend on each other in a loop.
	CycleError struct {
		// Packages lists the names left unordered, in insertion order.
		Packages []string
	}

	// Graph is a directed graph of package names. An edge from A to B means
	// A must be handled before B, i.e. B depends on A.
	Graph struct {
		adjacency map[string][]string
		edges     map[[2]string]bool
		nodes     []string
		nodeSet   map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle between packages: %s", strings.Join(e.Packages, ", "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		edges:     make(map[[2]string]bool),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a package. Adding an existing package is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddDependency records that dependent needs dep. Both are added as nodes.
func (g *Graph) AddDependency(dependent, dep string) {
	g.AddNode(dep)
	g.AddNode(dependent)
	key := [2]string{dep, dependent}
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.adjacency[dep] = append(g.adjacency[dep], dependent)
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Order returns the packages with dependencies first (Kahn's algorithm).
// Packages at the same depth keep their insertion order.
func (g *Graph) Order() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, targets := range g.adjacency {
		for _, t := range targets {
			inDegree[t]++
		}
	}

	queue := make([]string, 0, len(g.nodes))
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, next := range g.adjacency[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var stuck []string
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				stuck = append(stuck, node)
			}
		}
		return nil, &CycleError{Packages: stuck}
	}
	return result, nil
}

// Build starts from roots and follows the dependencies declared by the
// installed manifests under lib. Packages that are not installed, or carry
// no manifest, are leaves.
func Build(lib string, roots []string) (*Graph, error) {
	g := New()
	pending := append([]string(nil), roots...)
	seen := make(map[string]bool, len(roots))

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		g.AddNode(name)

		dir, ok, err := InstalledDir(lib, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		m, err := manifest.Load(dir)
		if errors.Is(err, manifest.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, dep := range slices.Sorted(maps.Keys(m.Dependencies)) {
			if err := pkgref.ValidateName(dep); err != nil {
				return nil, fmt.Errorf("dependency of %s in %s: %w", name, manifest.Path(dir), err)
			}
			g.AddDependency(name, dep)
			pending = append(pending, dep)
		}
	}
	return g, nil
}

// InstalledDir returns the directory of the newest installed version of
// name under lib. A "latest" install is used only when no versioned one
// exists. Names that are not valid package names are rejected before any
// path is built.
func InstalledDir(lib, name string) (string, bool, error) {
	if err := pkgref.ValidateName(name); err != nil {
		return "", false, err
	}
	entries, err := os.ReadDir(filepath.Join(lib, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read installed versions of %s: %w", name, err)
	}

	var (
		best      version.Version
		bestName  string
		hasLatest bool
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == latestDir {
			hasLatest = true
			continue
		}
		v, err := version.Parse(e.Name())
		if err != nil {
			continue
		}
		if bestName == "" || best.Less(v) {
			best, bestName = v, e.Name()
		}
	}

	switch {
	case bestName != "":
		return filepath.Join(lib, name, bestName), true, nil
	case hasLatest:
		return filepath.Join(lib, name, latestDir), true, nil
	default:
		return "", false, nil
	}
}

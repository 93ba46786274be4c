// SPDX-License-Identifier: MPL-2.0

// Package discovery locates the root of an Ambar project.
//
// A directory is a project root when it contains one of the project markers:
// the ambar.json manifest, the ambar.lock lock file, or a .ambar metadata
// directory. The search starts at a directory and walks its ancestors up to
// and including the filesystem root; the nearest marked directory wins.
package discovery

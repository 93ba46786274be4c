// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ambar-lang/amb/internal/testutil"
)

// evalDir resolves symlinks so comparisons hold on systems where the temp
// directory is itself a symlink (macOS /var -> /private/var).
func evalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", dir, err)
	}
	return resolved
}

func TestFindProjectRoot_Markers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		create func(t *testing.T, dir string)
		want   string
	}{
		{
			name:   "manifest",
			create: func(t *testing.T, dir string) { testutil.MustWriteFile(t, filepath.Join(dir, ManifestFile), "{}") },
			want:   ManifestFile,
		},
		{
			name:   "lock file",
			create: func(t *testing.T, dir string) { testutil.MustWriteFile(t, filepath.Join(dir, LockFile), "") },
			want:   LockFile,
		},
		{
			name:   "metadata dir",
			create: func(t *testing.T, dir string) { testutil.MustMkdirAll(t, filepath.Join(dir, MetadataDir), 0o755) },
			want:   MetadataDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := evalDir(t, t.TempDir())
			project := filepath.Join(root, "a", "b")
			start := filepath.Join(project, "c")
			testutil.MustMkdirAll(t, start, 0o755)
			tt.create(t, project)

			got, found, err := FindProjectRoot(start)
			if err != nil {
				t.Fatalf("FindProjectRoot() returned error: %v", err)
			}
			if !found {
				t.Fatal("FindProjectRoot() found no project")
			}
			if got != project {
				t.Errorf("FindProjectRoot() = %q, want %q", got, project)
			}
			if name, ok := HasMarker(project); !ok || name != tt.want {
				t.Errorf("HasMarker() = %q, %v, want %q", name, ok, tt.want)
			}
		})
	}
}

func TestFindProjectRoot_StartIsRoot(t *testing.T) {
	t.Parallel()

	dir := evalDir(t, t.TempDir())
	testutil.MustWriteFile(t, filepath.Join(dir, ManifestFile), "{}")

	got, found, err := FindProjectRoot(dir)
	if err != nil || !found || got != dir {
		t.Errorf("FindProjectRoot() = %q, %v, %v, want %q", got, found, err, dir)
	}
}

func TestFindProjectRoot_NearestWins(t *testing.T) {
	t.Parallel()

	root := evalDir(t, t.TempDir())
	outer := filepath.Join(root, "outer")
	inner := filepath.Join(outer, "inner")
	testutil.MustWriteFile(t, filepath.Join(outer, ManifestFile), "{}")
	testutil.MustWriteFile(t, filepath.Join(inner, LockFile), "")

	got, found, err := FindProjectRoot(filepath.Join(inner, "src"))
	if err != nil || !found {
		t.Fatalf("FindProjectRoot() = %q, %v, %v", got, found, err)
	}
	if got != inner {
		t.Errorf("FindProjectRoot() = %q, want nearest %q", got, inner)
	}
}

func TestFindProjectRoot_WrongKindIsNotMarker(t *testing.T) {
	t.Parallel()

	root := evalDir(t, t.TempDir())
	// A directory named ambar.json and a file named .ambar mark nothing.
	testutil.MustMkdirAll(t, filepath.Join(root, ManifestFile), 0o755)
	testutil.MustWriteFile(t, filepath.Join(root, MetadataDir), "")

	if name, ok := HasMarker(root); ok {
		t.Errorf("HasMarker() = %q, want no marker", name)
	}
}

func TestFindProjectRoot_ExcludedDir(t *testing.T) {
	t.Parallel()

	home := evalDir(t, t.TempDir())
	ambRoot := filepath.Join(home, MetadataDir)
	testutil.MustMkdirAll(t, ambRoot, 0o755)
	start := filepath.Join(home, "work")
	testutil.MustMkdirAll(t, start, 0o755)

	got, found, err := FindProjectRoot(start, WithExcludedDir(ambRoot))
	if err != nil {
		t.Fatalf("FindProjectRoot() returned error: %v", err)
	}
	if found && got == home {
		t.Errorf("excluded %s still marked %s as a project", ambRoot, home)
	}

	got, found, _ = FindProjectRoot(start)
	if !found || got != home {
		t.Errorf("without exclusion FindProjectRoot() = %q, %v, want %q", got, found, home)
	}
}

func TestFindProjectRoot_ExcludedDirKeepsOtherMarkers(t *testing.T) {
	t.Parallel()

	home := evalDir(t, t.TempDir())
	ambRoot := filepath.Join(home, MetadataDir)
	testutil.MustMkdirAll(t, ambRoot, 0o755)
	testutil.MustWriteFile(t, filepath.Join(home, ManifestFile), "{}")

	got, found, err := FindProjectRoot(home, WithExcludedDir(ambRoot))
	if err != nil || !found || got != home {
		t.Errorf("FindProjectRoot() = %q, %v, %v, want %q", got, found, err, home)
	}
}

func TestFindProjectRoot_RelativeStart(t *testing.T) {
	dir := evalDir(t, t.TempDir())
	testutil.MustWriteFile(t, filepath.Join(dir, ManifestFile), "{}")
	sub := filepath.Join(dir, "pkg")
	testutil.MustMkdirAll(t, sub, 0o755)
	t.Cleanup(testutil.MustChdir(t, sub))

	got, found, err := FindProjectRoot(".")
	if err != nil || !found || got != dir {
		t.Errorf("FindProjectRoot(\".\") = %q, %v, %v, want %q", got, found, err, dir)
	}
}

func TestFindProjectRoot_EmptyStart(t *testing.T) {
	t.Parallel()

	_, found, err := FindProjectRoot("")
	if !errors.Is(err, ErrEmptyStart) {
		t.Errorf("FindProjectRoot(\"\") error = %v, want ErrEmptyStart", err)
	}
	if found {
		t.Error("FindProjectRoot(\"\") should not report a project")
	}
}

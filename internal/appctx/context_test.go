// SPDX-License-Identifier: MPL-2.0

package appctx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ambar-lang/amb/internal/config"
	"github.com/ambar-lang/amb/internal/discovery"
	"github.com/ambar-lang/amb/internal/logging"
	"github.com/ambar-lang/amb/internal/testutil"

	"github.com/charmbracelet/log"
)

type fixture struct {
	home   string
	work   string
	logs   *bytes.Buffer
	logger *log.Logger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := fixture{
		home: filepath.Join(base, "home"),
		work: filepath.Join(base, "work"),
		logs: &bytes.Buffer{},
	}
	testutil.MustMkdirAll(t, f.home, 0o755)
	testutil.MustMkdirAll(t, f.work, 0o755)
	f.logger = logging.New(f.logs)
	return f
}

func (f fixture) newContext(environ map[string]string) *Context {
	if environ == nil {
		environ = map[string]string{}
	}
	cfg := config.NewManager(
		config.WithHomeDir(f.home),
		config.WithEnviron(environ),
		config.WithLogger(f.logger),
	)
	return New(cfg, WithWorkDir(f.work), WithLogger(f.logger), WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
}

func TestInitialize_OutsideProject(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := f.newContext(nil)

	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if !ctx.IsInitialized() {
		t.Error("IsInitialized() = false")
	}
	if ctx.IsInsideProject() {
		root, _ := ctx.ProjectRoot()
		t.Fatalf("unexpected project at %s", root)
	}
	if ctx.ModulesDir() != "" || ctx.ProjectLibDir() != "" {
		t.Errorf("project dirs should be empty outside a project: %q %q", ctx.ModulesDir(), ctx.ProjectLibDir())
	}
	if _, err := os.Stat(filepath.Join(f.work, ModulesDirName)); !os.IsNotExist(err) {
		t.Errorf("ambar_modules must not be created outside a project (stat err: %v)", err)
	}
	for _, dir := range []string{ctx.AmbRoot(), ctx.CacheDir(), ctx.LibDir(), ctx.TempDir()} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("global directory %s missing: %v", dir, err)
		}
	}
}

func TestInitialize_HomeMetadataDirIsNotAProject(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	// Work directly inside the home directory whose ~/.ambar is the ambar root.
	f.work = filepath.Join(f.home, "src")
	testutil.MustMkdirAll(t, f.work, 0o755)
	ctx := f.newContext(nil)

	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if root, ok := ctx.ProjectRoot(); ok && root == f.home {
		t.Errorf("the ambar root made %s look like a project", f.home)
	}
}

func TestInitialize_InsideProject(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	testutil.MustWriteFile(t, filepath.Join(f.work, discovery.ManifestFile), `{"name": "demo", "version": "0.1.0"}`)
	sub := filepath.Join(f.work, "src", "deep")
	testutil.MustMkdirAll(t, sub, 0o755)

	cfg := config.NewManager(config.WithHomeDir(f.home), config.WithEnviron(map[string]string{}), config.WithLogger(f.logger))
	ctx := New(cfg, WithWorkDir(sub), WithLogger(f.logger))

	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	root, ok := ctx.ProjectRoot()
	if !ok || root != f.work {
		t.Fatalf("ProjectRoot() = %q, %v, want %q", root, ok, f.work)
	}
	if want := filepath.Join(f.work, "ambar_modules"); ctx.ModulesDir() != want {
		t.Errorf("ModulesDir() = %q, want %q", ctx.ModulesDir(), want)
	}
	if want := filepath.Join(f.work, "ambar_modules", "lib"); ctx.ProjectLibDir() != want {
		t.Errorf("ProjectLibDir() = %q, want %q", ctx.ProjectLibDir(), want)
	}
	if info, err := os.Stat(ctx.ProjectLibDir()); err != nil || !info.IsDir() {
		t.Errorf("project lib dir not created: %v", err)
	}
}

func TestInitialize_ProjectDirFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	testutil.MustWriteFile(t, filepath.Join(f.work, discovery.LockFile), "")
	// A file where ambar_modules should be blocks its creation.
	testutil.MustWriteFile(t, filepath.Join(f.work, ModulesDirName), "")
	ctx := f.newContext(nil)

	err := ctx.Initialize()
	var dirErr *config.DirectoryError
	if !errors.As(err, &dirErr) {
		t.Fatalf("Initialize() error = %v, want *config.DirectoryError", err)
	}
	if ctx.IsInitialized() {
		t.Error("context must not be initialized after a directory failure")
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := f.newContext(nil)
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("first Initialize() returned error: %v", err)
	}

	// A marker that appears later is not picked up by a second call.
	testutil.MustWriteFile(t, filepath.Join(f.work, discovery.ManifestFile), "{}")
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("second Initialize() returned error: %v", err)
	}
	if ctx.IsInsideProject() {
		t.Error("second Initialize() re-ran discovery")
	}
}

func TestInitialize_VerboseFromEnvironment(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := f.newContext(map[string]string{"AMBAR_VERBOSE": "true"})
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}
	if !ctx.IsVerbose() {
		t.Error("AMBAR_VERBOSE=true should enable verbose mode")
	}
	if ctx.Logger().GetLevel() != log.DebugLevel {
		t.Errorf("logger level = %v, want debug", ctx.Logger().GetLevel())
	}
}

func TestSetVerbose_ControlsLogLevel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := f.newContext(nil)

	ctx.Logger().Debug("hidden")
	ctx.SetVerbose(true)
	ctx.Logger().Debug("shown")
	ctx.SetVerbose(false)
	ctx.Logger().Debug("hidden again")

	out := f.logs.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug output leaked while not verbose:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("debug output missing while verbose:\n%s", out)
	}
}

func TestSetDryRun_NoticeOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := f.newContext(nil)

	if ctx.IsDryRun() {
		t.Fatal("dry-run should default to off")
	}
	ctx.SetDryRun(true)
	ctx.SetDryRun(true)
	ctx.SetDryRun(false)
	ctx.SetDryRun(true)

	if !ctx.IsDryRun() {
		t.Error("IsDryRun() = false after enabling")
	}
	if n := strings.Count(f.logs.String(), dryRunNotice); n != 1 {
		t.Errorf("dry-run notice logged %d times, want 1:\n%s", n, f.logs.String())
	}
}

func TestSetDryRun_DisabledIsQuiet(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := f.newContext(nil)
	ctx.SetDryRun(false)

	if strings.Contains(f.logs.String(), dryRunNotice) {
		t.Error("disabling dry-run must not log the notice")
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	ctx := New(config.NewManager(config.WithLogger(logging.Discard())))
	if ctx.Out() != os.Stdout || ctx.Err() != os.Stderr {
		t.Error("streams should default to stdout and stderr")
	}
	if ctx.Logger() == nil {
		t.Error("logger should default to the shared logger")
	}
	if ctx.Config() == nil {
		t.Error("Config() returned nil")
	}
}

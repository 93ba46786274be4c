// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ambar-lang/amb/internal/appctx"
	"github.com/ambar-lang/amb/internal/command"
	"github.com/ambar-lang/amb/internal/config"
	"github.com/ambar-lang/amb/internal/logging"
	"github.com/ambar-lang/amb/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// harness is an initialized application with captured streams.
type harness struct {
	app     *appctx.Context
	factory *command.Factory
	handler *Handler
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	logs    *bytes.Buffer
	home    string
	work    string
}

// newHarness builds the application around fresh home and work directories.
// prepare runs before initialization, so it can plant project markers.
func newHarness(t *testing.T, prepare func(work string)) *harness {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		logs:   &bytes.Buffer{},
		home:   filepath.Join(base, "home"),
		work:   filepath.Join(base, "work"),
	}
	for _, dir := range []string{h.home, h.work} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if prepare != nil {
		prepare(h.work)
	}

	logger := logging.New(h.logs)
	cfg := config.NewManager(
		config.WithHomeDir(h.home),
		config.WithEnviron(map[string]string{}),
		config.WithLogger(logger),
	)
	h.app = appctx.New(cfg,
		appctx.WithWorkDir(h.work),
		appctx.WithLogger(logger),
		appctx.WithOutput(h.out, h.errOut),
	)
	if err := h.app.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	h.factory = command.NewFactory(logger)
	RegisterBuiltins(h.factory, h.app)
	h.handler = NewHandler(h.app, h.factory)
	return h
}

// run dispatches args and returns the exit code.
func (h *harness) run(args ...string) types.ExitCode {
	h.out.Reset()
	h.errOut.Reset()
	return h.handler.Run(context.Background(), args)
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

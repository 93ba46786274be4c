// SPDX-License-Identifier: MPL-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/ambar-lang/amb/internal/logging"
	"github.com/ambar-lang/amb/pkg/types"
)

type stubCommand struct {
	Base
	code  types.ExitCode
	panic any
	args  []string
}

func (s *stubCommand) Execute(_ context.Context, args []string) types.ExitCode {
	s.args = args
	if s.panic != nil {
		panic(s.panic)
	}
	return s.code
}

func stub(desc string, code types.ExitCode) Constructor {
	return func() (Command, error) {
		return &stubCommand{Base: Base{Desc: types.DescriptionText(desc)}, code: code}, nil
	}
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	t.Parallel()

	f := NewFactory(logging.Discard())
	f.Register("install", stub("Install packages", types.ExitSuccess))

	if !f.Exists("install") {
		t.Fatal("Exists(install) = false after Register")
	}
	if got := f.Describe("install"); got != "Install packages" {
		t.Errorf("Describe(install) = %q", got)
	}

	cmd, err := f.Create("install")
	if err != nil {
		t.Fatalf("Create(install) returned error: %v", err)
	}
	if cmd.Description() != "Install packages" {
		t.Errorf("created command description = %q", cmd.Description())
	}
}

func TestFactory_CreateReturnsFreshInstances(t *testing.T) {
	t.Parallel()

	f := NewFactory(logging.Discard())
	f.Register("list", stub("List installed packages", types.ExitSuccess))

	a, _ := f.Create("list")
	b, _ := f.Create("list")
	if a == b {
		t.Error("Create() should construct a new command each time")
	}
}

func TestFactory_CreateUnknown(t *testing.T) {
	t.Parallel()

	f := NewFactory(logging.Discard())
	cmd, err := f.Create("frobnicate")
	if cmd != nil {
		t.Error("Create(unknown) returned a command")
	}
	if !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("Create(unknown) error = %v, want ErrCommandNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "frobnicate" {
		t.Errorf("error = %#v, want *NotFoundError for frobnicate", err)
	}
	if f.Describe("frobnicate") != "" {
		t.Error("Describe(unknown) should be empty")
	}
}

func TestFactory_DuplicateOverwritesWithWarning(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	f := NewFactory(logging.New(&logs))
	f.Register("search", stub("first", types.ExitSuccess))
	f.Register("search", stub("second", types.ExitFailure))

	if got := f.Describe("search"); got != "second" {
		t.Errorf("Describe(search) = %q, want the later registration", got)
	}
	if len(f.List()) != 1 {
		t.Errorf("List() = %v, want a single entry", f.List())
	}
	if !strings.Contains(logs.String(), "already registered") {
		t.Errorf("expected overwrite warning, got logs:\n%s", logs.String())
	}
}

func TestFactory_ListSorted(t *testing.T) {
	t.Parallel()

	f := NewFactory(logging.Discard())
	for _, name := range []string{"version", "install", "help", "list"} {
		f.Register(name, stub(name, types.ExitSuccess))
	}

	want := []string{"help", "install", "list", "version"}
	if got := f.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestFactory_FailingConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctor Constructor
	}{
		{"error", func() (Command, error) { return nil, errors.New("boom") }},
		{"panic", func() (Command, error) { panic("kaboom") }},
		{"nil command", func() (Command, error) { return nil, nil }},
		{"nil constructor", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewFactory(logging.Discard())
			f.Register("broken", tt.ctor)

			if !f.Exists("broken") {
				t.Error("a failing constructor should still be registered")
			}
			if f.Describe("broken") != "" {
				t.Errorf("Describe(broken) = %q, want empty", f.Describe("broken"))
			}

			cmd, err := f.Create("broken")
			if cmd != nil {
				t.Error("Create(broken) returned a command")
			}
			if !errors.Is(err, ErrConstruction) {
				t.Errorf("Create(broken) error = %v, want ErrConstruction", err)
			}
		})
	}
}

func TestFactory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := NewFactory(logging.Discard())
	f.Register("help", stub("Show help", types.ExitSuccess))

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			_ = f.List()
			_ = f.Describe("help")
			if _, err := f.Create("help"); err != nil {
				t.Errorf("Create(help) returned error: %v", err)
			}
		})
	}
	wg.Wait()
}

func TestBase_Defaults(t *testing.T) {
	t.Parallel()

	var b Base
	if b.Example() != "" || b.RequiresProject() || b.Usage() != "" || b.Description() != "" {
		t.Errorf("zero Base should have empty defaults: %+v", b)
	}
}

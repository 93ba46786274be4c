// SPDX-License-Identifier: MPL-2.0

// Package cli contains end-to-end tests of the amb command line using
// testscript. Each script runs the real entry point with its own home
// directory, so scripts never see the user's ambar root.
package cli

import (
	"os"
	"path/filepath"
	"testing"

	cmd "github.com/ambar-lang/amb/cmd/amb"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.RunMain(m, map[string]func() int{
		"amb": cmd.Main,
	})
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			home := filepath.Join(env.WorkDir, "home")
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			env.Setenv("HOME", home)
			env.Setenv("USERPROFILE", home)
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

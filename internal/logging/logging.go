// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log loggers used by amb.
//
// Informational and diagnostic messages go through these loggers on stderr.
// User-facing CLI output (help screens, listings, "Error:" lines) is written
// directly to the command streams and never passes through a logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Prefix is printed in front of every log line.
const Prefix = "amb"

var (
	defaultOnce   sync.Once
	defaultLogger *log.Logger
)

// levelStyles returns level badges in the CLI palette.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#9CA3AF"))

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#3B82F6"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#F59E0B"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	return styles
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  log.InfoLevel,
	})
	logger.SetStyles(levelStyles())
	return logger
}

// Default returns the process-wide fallback logger writing to stderr.
// Components that accept an injected logger only use it when none was given.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr)
	})
	return defaultLogger
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *log.Logger {
	return New(io.Discard)
}

// SetColor toggles ANSI styling for the logger and for lipgloss rendering.
// Disabling it forces the plain ASCII profile; enabling it restores terminal
// detection for the logger's output.
func SetColor(logger *log.Logger, enabled bool) {
	if enabled {
		profile := termenv.NewOutput(os.Stderr).Profile
		logger.SetColorProfile(profile)
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).Profile)
		return
	}
	logger.SetColorProfile(termenv.Ascii)
	lipgloss.SetColorProfile(termenv.Ascii)
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every screen amb prints.
const (
	// ColorPrimary is purple, used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for section headers and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, used for completed actions.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, used for the "Error:" prefix.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, used for dry-run notes.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for command and package names.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for the help screen title.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for section headers.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for completed actions.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for the "Error:" prefix.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for dry-run notes.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command and package names.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

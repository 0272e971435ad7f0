// Package ui provides styling and output helpers for the seqstate CLI.
// Machine-readable results go to stdout as JSON; everything meant for a human
// (warnings, errors, the status table) goes to stderr or is styled.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ErrorStyle is the style for error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// WarningStyle is the style for warning messages
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))

	// DimStyle is the style for dimmed text
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// BoldStyle is the style for bold text
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// HeaderStyle is the style for section headers
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
)

var (
	// ErrorIcon prefixes error messages
	ErrorIcon = "✗"

	// WarningIcon prefixes warning messages
	WarningIcon = "⚠"
)

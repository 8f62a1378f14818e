// SPDX-License-Identifier: MIT

package main

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every command.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorAction  = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for scenario names and section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	// SubtitleStyle is for step headers and secondary text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	// SuccessStyle marks passing scenarios.
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	// ErrorStyle marks failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	// WarningStyle marks recoverable problems such as config warnings.
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	// ActionStyle renders callback action names.
	ActionStyle = lipgloss.NewStyle().Foreground(colorAction)
)

// painter applies styles only when color output is enabled.
type painter struct{ color bool }

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

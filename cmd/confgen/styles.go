// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"github.com/charmbracelet/lipgloss"

	"grimm.is/confgen/internal/filesync"
)

const (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// statusStyle pads status words so paths line up.
	statusStyle = lipgloss.NewStyle().Width(10)
)

// renderStatus colors a sync status for terminal output.
func renderStatus(s filesync.Status) string {
	var style lipgloss.Style
	switch s {
	case filesync.Created, filesync.Updated:
		style = SuccessStyle
	case filesync.Stale:
		style = WarningStyle
	default:
		style = SubtitleStyle
	}
	return statusStyle.Render(style.Render(s.String()))
}

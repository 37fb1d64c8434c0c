// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
)

// init configures lipgloss for plain output when stdout is piped or
// NO_COLOR is set.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.EmeraldBright).
			MarginBottom(1)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.EmeraldDim).
			Width(28)

	// ValueStyle is used for values
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// CallsignStyle marks the sender of a transmission
	CallsignStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.EmeraldBright)

	// HQStyle marks HQ traffic
	HQStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Red)

	// DimStyle is used for secondary information
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.EmeraldDeep)

	// SeparatorStyle is used for visual separators
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(styles.EmeraldDeep)

	// WarningStyle is used for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// ErrorStyle is used for fatal errors
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Red)
)

// RenderSeparator renders a horizontal rule of width w (default 60).
func RenderSeparator(w int) string {
	if w <= 0 {
		w = 60
	}
	return SeparatorStyle.Render(strings.Repeat("=", w))
}

// RenderField renders one "label  value" row.
func RenderField(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

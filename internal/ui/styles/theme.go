// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the HUD.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	Palette Palette

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER HUD
	// ==========================================================================

	Header      lipgloss.Style
	HeaderLabel lipgloss.Style
	HeaderClock lipgloss.Style
	HeaderValue lipgloss.Style
	SignalOn    lipgloss.Style
	SignalOff   lipgloss.Style
	Insignia    lipgloss.Style

	// ==========================================================================
	// SIDE PANELS
	// ==========================================================================

	Panel        lipgloss.Style
	PanelTitle   lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
	StatusThreat lipgloss.Style
	IntelEntry   lipgloss.Style
	IntelStamp   lipgloss.Style
	IntelText    lipgloss.Style
	EmptyHint    lipgloss.Style
	WarningBox   lipgloss.Style
	WarningTitle lipgloss.Style
	Operative    lipgloss.Style
	OpActive     lipgloss.Style
	OpIdle       lipgloss.Style
	OpStatus     lipgloss.Style
	HealthBox    lipgloss.Style
	FinePrint    lipgloss.Style

	// ==========================================================================
	// MESSAGE LOG
	// ==========================================================================

	Log             lipgloss.Style
	MetaUser        lipgloss.Style
	MetaHQ          lipgloss.Style
	UserBubble      lipgloss.Style
	HQBubble        lipgloss.Style
	SquadBubble     lipgloss.Style
	UrgentBadge     lipgloss.Style
	Transmitting    lipgloss.Style
	TransmitSpinner lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	Footer         lipgloss.Style
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	InputText      lipgloss.Style
	Placeholder    lipgloss.Style
	ToggleOn       lipgloss.Style
	ToggleOff      lipgloss.Style
	Channel        lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Help           lipgloss.Style
}

// NewTheme creates a theme for the named palette. Unknown names fall back
// to the tactical palette.
func NewTheme(name string) *Theme {
	p, _ := PaletteByName(name)
	return NewThemeWithPalette(p)
}

// NewThemeWithPalette creates a theme from an explicit palette.
func NewThemeWithPalette(p Palette) *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
		Palette:      p,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderBottom(true).
		BorderForeground(p.Deep).
		Padding(0, 1)
	t.HeaderLabel = lipgloss.NewStyle().Bold(true).Foreground(p.Dim)
	t.HeaderClock = lipgloss.NewStyle().Bold(true).Foreground(p.Bright)
	t.HeaderValue = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	t.SignalOn = lipgloss.NewStyle().Foreground(p.Primary)
	t.SignalOff = lipgloss.NewStyle().Foreground(p.Deep)
	t.Insignia = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)

	// Side panels
	t.Panel = lipgloss.NewStyle().Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Dim).MarginBottom(1)
	t.StatusKey = lipgloss.NewStyle().Foreground(p.Primary)
	t.StatusValue = lipgloss.NewStyle().Foreground(p.Bright)
	t.StatusThreat = lipgloss.NewStyle().Foreground(p.Warn)
	t.IntelEntry = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(p.Dim).
		PaddingLeft(1).
		MarginBottom(1)
	t.IntelStamp = lipgloss.NewStyle().Bold(true).Foreground(p.Dim)
	t.IntelText = lipgloss.NewStyle().Italic(true).Foreground(p.Primary)
	t.EmptyHint = lipgloss.NewStyle().Italic(true).Foreground(p.Deep)
	t.WarningBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(p.Deep).
		Foreground(p.Primary).
		Padding(0, 1)
	t.WarningTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Dim)
	t.Operative = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Deep).
		Padding(0, 1)
	t.OpActive = lipgloss.NewStyle().Foreground(p.Primary).Blink(true)
	t.OpIdle = lipgloss.NewStyle().Foreground(p.Neutral)
	t.OpStatus = lipgloss.NewStyle().Foreground(p.Dim)
	t.HealthBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Deep).
		Padding(0, 1).
		MarginTop(1)
	t.FinePrint = lipgloss.NewStyle().Foreground(p.Deep)

	// Message log
	t.Log = lipgloss.NewStyle().Padding(0, 1)
	t.MetaUser = lipgloss.NewStyle().Bold(true).Foreground(p.Dim)
	t.MetaHQ = lipgloss.NewStyle().Bold(true).Foreground(p.Alert)
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.Primary).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(p.Dim).
		Padding(0, 1)
	t.HQBubble = lipgloss.NewStyle().
		Foreground(p.AlertDim).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(p.AlertDeep).
		Padding(0, 1)
	t.SquadBubble = lipgloss.NewStyle().
		Foreground(p.Neutral).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ZincDeep).
		Padding(0, 1)
	t.UrgentBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Inverse).
		Background(p.Alert).
		Padding(0, 1)
	t.Transmitting = lipgloss.NewStyle().Italic(true).Foreground(p.Dim)
	t.TransmitSpinner = lipgloss.NewStyle().Foreground(p.Primary)

	// Input area
	t.Footer = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderTop(true).
		BorderForeground(p.Deep).
		Padding(0, 1)
	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(p.Deep).
		Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(p.Primary)
	t.InputText = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	t.Placeholder = lipgloss.NewStyle().Bold(true).Foreground(p.Deep)
	t.ToggleOn = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	t.ToggleOff = lipgloss.NewStyle().Bold(true).Foreground(p.Deep)
	t.Channel = lipgloss.NewStyle().Bold(true).Foreground(p.Dim)
	t.Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(p.Dim).
		Padding(0, 2)
	t.ButtonDisabled = t.Button.Foreground(p.Deep).BorderForeground(p.Deep)
	t.Help = lipgloss.NewStyle().Foreground(p.Dim)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 80 {
		return LayoutNarrow
	}
	if t.Width < 120 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 80 columns: message log only
	LayoutMedium                   // 80-120 columns: adds the mission panel
	LayoutWide                     // >= 120 columns: adds the squad manifest
)

// ShowMissionPanel reports whether the left panel fits.
func (m LayoutMode) ShowMissionPanel() bool { return m >= LayoutMedium }

// ShowSquadPanel reports whether the right panel fits.
func (m LayoutMode) ShowSquadPanel() bool { return m == LayoutWide }

// Panel widths.
const (
	MissionPanelWidth = 34
	SquadPanelWidth   = 28
)

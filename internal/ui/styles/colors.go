// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// PHOSPHOR GREEN
// =============================================================================

// Emerald - Primary text, active indicators
var Emerald = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}

// EmeraldBright - Emphasis, the Zulu clock
var EmeraldBright = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#34D399"}

// EmeraldDim - Section labels, timestamps
var EmeraldDim = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#065F46"}

// EmeraldDeep - Borders and empty signal bars
var EmeraldDeep = lipgloss.AdaptiveColor{Light: "#6EE7B7", Dark: "#064E3B"}

// =============================================================================
// ALERT COLORS
// =============================================================================

// Red - HQ traffic, URGENT badge
var Red = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}

// RedDim - HQ bubble text
var RedDim = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#F87171"}

// RedDeep - HQ bubble border
var RedDeep = lipgloss.AdaptiveColor{Light: "#FCA5A5", Dark: "#7F1D1D"}

// Amber - Threat level
var Amber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}

// AmberDeep - Amber borders
var AmberDeep = lipgloss.AdaptiveColor{Light: "#FCD34D", Dark: "#78350F"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Zinc - Squad-mate and system traffic
var Zinc = lipgloss.AdaptiveColor{Light: "#3F3F46", Dark: "#A1A1AA"}

// ZincDeep - Neutral borders, offline indicators
var ZincDeep = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#3F3F46"}

// Black - Text on badges
var Black = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#000000"}

// =============================================================================
// PALETTES
// =============================================================================

// Palette is the set of color roles a Theme is built from.
type Palette struct {
	Name string

	Primary lipgloss.TerminalColor // body text
	Bright  lipgloss.TerminalColor // clock, toggles
	Dim     lipgloss.TerminalColor // labels, timestamps
	Deep    lipgloss.TerminalColor // borders

	Alert     lipgloss.TerminalColor // HQ, URGENT
	AlertDim  lipgloss.TerminalColor
	AlertDeep lipgloss.TerminalColor

	Warn    lipgloss.TerminalColor // threat level
	Neutral lipgloss.TerminalColor // squad-mate and system traffic
	Inverse lipgloss.TerminalColor // badge text
}

// TacticalPalette is the default green-on-black night vision look.
var TacticalPalette = Palette{
	Name:      "tactical",
	Primary:   Emerald,
	Bright:    EmeraldBright,
	Dim:       EmeraldDim,
	Deep:      EmeraldDeep,
	Alert:     Red,
	AlertDim:  RedDim,
	AlertDeep: RedDeep,
	Warn:      Amber,
	Neutral:   Zinc,
	Inverse:   Black,
}

// AmberPalette mimics an amber monochrome terminal. HQ stays red.
var AmberPalette = Palette{
	Name:      "amber",
	Primary:   Amber,
	Bright:    lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FCD34D"},
	Dim:       lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#92400E"},
	Deep:      AmberDeep,
	Alert:     Red,
	AlertDim:  RedDim,
	AlertDeep: RedDeep,
	Warn:      lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"},
	Neutral:   Zinc,
	Inverse:   Black,
}

// MonoPalette uses no color at all, for dumb terminals and screen readers.
var MonoPalette = Palette{
	Name:      "mono",
	Primary:   lipgloss.NoColor{},
	Bright:    lipgloss.NoColor{},
	Dim:       lipgloss.NoColor{},
	Deep:      lipgloss.NoColor{},
	Alert:     lipgloss.NoColor{},
	AlertDim:  lipgloss.NoColor{},
	AlertDeep: lipgloss.NoColor{},
	Warn:      lipgloss.NoColor{},
	Neutral:   lipgloss.NoColor{},
	Inverse:   lipgloss.NoColor{},
}

var palettes = map[string]Palette{
	TacticalPalette.Name: TacticalPalette,
	AmberPalette.Name:    AmberPalette,
	MonoPalette.Name:     MonoPalette,
}

// PaletteByName returns the named palette, or TacticalPalette and false.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	if !ok {
		return TacticalPalette, false
	}
	return p, true
}

// PaletteNames returns the known palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

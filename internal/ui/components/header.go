// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - mission clock, operation name, signal meter
// =============================================================================

// Header defaults.
const (
	DefaultOperation = "STRIKE TEAM ECHO"
	DefaultSignal    = 4
)

// Header is the HUD bar across the top of the screen.
type Header struct {
	Operation   string    // Operation name (default: STRIKE TEAM ECHO)
	MissionTime time.Time // Rendered as Zulu time
	Signal      int       // Lit bars out of styles.SignalMax
	Uplink      string    // Active uplink label, e.g. SATCOM-3F
	Insignia    string    // Single-letter squad insignia
	Width       int       // Available width
	theme       *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Operation:   DefaultOperation,
		MissionTime: time.Now(),
		Signal:      DefaultSignal,
		Insignia:    "E",
		Width:       80,
		theme:       theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTime updates the mission clock.
func (h *Header) SetTime(t time.Time) {
	h.MissionTime = t
}

// SetUplink updates the uplink label.
func (h *Header) SetUplink(label string) {
	h.Uplink = label
}

// SetTheme swaps the theme.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// View renders the full two-line header.
func (h *Header) View() string {
	t := h.theme
	width := max(h.Width, 40)

	clock := lipgloss.JoinVertical(lipgloss.Left,
		t.HeaderLabel.Render("MISSION TIME"),
		t.HeaderClock.Render(model.FormatZulu(h.MissionTime)),
	)
	op := lipgloss.JoinVertical(lipgloss.Left,
		t.HeaderLabel.Render("OPERATION"),
		t.HeaderValue.Render(h.Operation),
	)

	signalLabel := "SIGNAL STRENGTH"
	if h.Uplink != "" {
		signalLabel = h.Uplink + " // " + signalLabel
	}
	signal := lipgloss.JoinVertical(lipgloss.Right,
		t.HeaderLabel.Render(signalLabel),
		t.RenderSignal(h.Signal),
	)

	left := lipgloss.JoinHorizontal(lipgloss.Top, clock, "   ", op)
	right := lipgloss.JoinHorizontal(lipgloss.Center, signal, " ", t.Insignia.Render(h.Insignia))

	box := t.Header.Width(width - t.Header.GetHorizontalBorderSize())
	inner := width - t.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return box.Render(h.compactLine(inner))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), right)
	return box.Render(row)
}

// ViewCompact renders a single-line header for narrow terminals.
func (h *Header) ViewCompact() string {
	t := h.theme
	width := max(h.Width, 20)
	box := t.Header.Width(width - t.Header.GetHorizontalBorderSize())
	return box.Render(h.compactLine(width - t.Header.GetHorizontalFrameSize()))
}

func (h *Header) compactLine(width int) string {
	t := h.theme
	line := t.HeaderClock.Render(model.FormatZulu(h.MissionTime)) + " " + t.RenderSignal(h.Signal)
	if lipgloss.Width(line) > width {
		return t.HeaderClock.Render(util.TruncateWidth(model.FormatZulu(h.MissionTime), width))
	}
	return line
}

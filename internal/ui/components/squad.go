// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

// =============================================================================
// SQUAD PANEL - manifest and system health
// =============================================================================

// Operative status values.
const (
	StatusActive  = "ACTIVE"
	StatusInfil   = "INFIL"
	StatusStandby = "STANDBY"
)

// EncryptionKeyLabel is the fine print under the health gauges.
const EncryptionKeyLabel = "ENCRYPTION KEY: AES-256-MIL-TAC"

// Operative is one squad manifest entry.
type Operative struct {
	Name   string
	Status string
}

// Active reports whether the operative shows a lit indicator.
func (o Operative) Active() bool {
	return o.Status == StatusActive
}

// DefaultSquad returns the manifest with the operator listed first.
func DefaultSquad(callsign string) []Operative {
	return []Operative{
		{Name: callsign + " (YOU)", Status: StatusActive},
		{Name: "GHOST-2", Status: StatusInfil},
		{Name: "REAPER-4", Status: StatusStandby},
	}
}

// SquadPanel is the right sidebar.
type SquadPanel struct {
	Squad  []Operative
	Health []float64 // gauge fill percentages
	Width  int
	theme  *styles.Theme
}

// NewSquadPanel creates a panel for the operator's callsign.
func NewSquadPanel(theme *styles.Theme, callsign string) *SquadPanel {
	return &SquadPanel{
		Squad:  DefaultSquad(callsign),
		Health: []float64{85, 40},
		Width:  styles.SquadPanelWidth,
		theme:  theme,
	}
}

// SetWidth updates the panel width.
func (p *SquadPanel) SetWidth(width int) {
	p.Width = width
}

// SetTheme swaps the theme.
func (p *SquadPanel) SetTheme(theme *styles.Theme) {
	p.theme = theme
}

// View renders the manifest and health box.
func (p *SquadPanel) View() string {
	t := p.theme
	inner := p.Width - t.Panel.GetHorizontalFrameSize()

	parts := []string{t.PanelTitle.Render("SQUAD MANIFEST")}
	for _, op := range p.Squad {
		parts = append(parts, p.renderOperative(op, inner))
	}
	parts = append(parts, p.renderHealth(inner))

	return t.Panel.Width(p.Width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (p *SquadPanel) renderOperative(op Operative, width int) string {
	t := p.theme
	inner := width - t.Operative.GetHorizontalFrameSize()

	dot := t.OpIdle.Render("○")
	if op.Active() {
		dot = t.OpActive.Render("●")
	}
	name := util.TruncateWidth(op.Name, inner-2)
	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(dot), 1)

	body := lipgloss.JoinVertical(lipgloss.Left,
		t.StatusKey.Bold(true).Render(name)+strings.Repeat(" ", gap)+dot,
		t.OpStatus.Render(op.Status),
	)
	return t.Operative.Width(width - t.Operative.GetHorizontalBorderSize()).Render(body)
}

func (p *SquadPanel) renderHealth(width int) string {
	t := p.theme
	inner := width - t.HealthBox.GetHorizontalFrameSize()

	lines := []string{t.PanelTitle.MarginBottom(0).Render("SYSTEM HEALTH")}
	for _, pct := range p.Health {
		lines = append(lines, t.SignalOn.Render(styles.RenderProgressBar(inner, pct)))
	}
	lines = append(lines, t.FinePrint.Width(inner).Render(EncryptionKeyLabel))

	return t.HealthBox.Width(width - t.HealthBox.GetHorizontalBorderSize()).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

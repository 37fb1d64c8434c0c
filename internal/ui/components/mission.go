// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

// =============================================================================
// MISSION PANEL - operational status, SIGINT feed, classified warning
// =============================================================================

// Fixed panel copy.
const (
	ScanningHint   = "Scanning for signals..."
	WarningHeading = "WARNING:"
	WarningText    = "THIS CHANNEL IS CLASSIFIED. ALL TRANSMISSIONS RECORDED."
	ThreatLevel    = "LEVEL 3"
	CommsState     = "ENCRYPTED"
)

// MissionPanel is the left sidebar.
type MissionPanel struct {
	Position model.Position
	Reports  []model.IntelReport // newest first, as returned by the feed
	Width    int
	Height   int
	theme    *styles.Theme
}

// NewMissionPanel creates a panel at the given position.
func NewMissionPanel(theme *styles.Theme, pos model.Position) *MissionPanel {
	return &MissionPanel{
		Position: pos,
		Width:    styles.MissionPanelWidth,
		theme:    theme,
	}
}

// SetSize updates the panel dimensions.
func (p *MissionPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// SetReports replaces the displayed intel reports. The slice is not modified.
func (p *MissionPanel) SetReports(reports []model.IntelReport) {
	p.Reports = reports
}

// SetTheme swaps the theme.
func (p *MissionPanel) SetTheme(theme *styles.Theme) {
	p.theme = theme
}

// View renders the panel. The warning box is pinned to the bottom when
// Height leaves room for it.
func (p *MissionPanel) View() string {
	t := p.theme
	inner := p.Width - t.Panel.GetHorizontalFrameSize()

	top := lipgloss.JoinVertical(lipgloss.Left,
		p.statusSection(inner),
		"",
		p.intelSection(inner),
	)
	warning := ClassifiedWarning(t, inner)

	body := lipgloss.JoinVertical(lipgloss.Left, top, "", warning)
	if free := p.Height - lipgloss.Height(top) - lipgloss.Height(warning); p.Height > 0 && free > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, top, strings.Repeat("\n", free-1), warning)
	}
	return t.Panel.Width(p.Width).Render(body)
}

func (p *MissionPanel) statusSection(width int) string {
	t := p.theme
	rows := []string{
		t.PanelTitle.Render("OPERATIONAL STATUS"),
		statusRow(t, width, "COMMS:", t.StatusValue.Render(CommsState)),
		statusRow(t, width, "THREAT:", t.StatusThreat.Render(ThreatLevel)),
		statusRow(t, width, "LAT:", t.StatusValue.Render(p.Position.LatString())),
		statusRow(t, width, "LNG:", t.StatusValue.Render(p.Position.LngString())),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func statusRow(t *styles.Theme, width int, key, value string) string {
	gap := width - lipgloss.Width(key) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return t.StatusKey.Render(key) + strings.Repeat(" ", gap) + value
}

func (p *MissionPanel) intelSection(width int) string {
	t := p.theme
	lines := []string{t.PanelTitle.Render("SIGINT INTEL FEED")}
	if len(p.Reports) == 0 {
		lines = append(lines, t.EmptyHint.Render(ScanningHint))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	entryWidth := width - t.IntelEntry.GetHorizontalFrameSize()
	for _, r := range p.Reports {
		lines = append(lines, RenderIntelReport(t, r, entryWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderIntelReport renders one feed entry wrapped to width.
func RenderIntelReport(t *styles.Theme, r model.IntelReport, width int) string {
	stamp := t.IntelStamp.Render("[" + r.Timestamp + "] " + r.Source)
	text := t.IntelText.Width(width).Render(util.CollapseSpace(r.Content))
	return t.IntelEntry.Render(lipgloss.JoinVertical(lipgloss.Left, stamp, text))
}

// ClassifiedWarning renders the boxed channel warning.
func ClassifiedWarning(t *styles.Theme, width int) string {
	inner := width - t.WarningBox.GetHorizontalFrameSize()
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.WarningTitle.Render(WarningHeading),
		lipgloss.NewStyle().Width(inner).Render(WarningText),
	)
	return t.WarningBox.Render(body)
}

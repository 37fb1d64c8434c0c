// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/ui/components"
	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
)

// View renders the console.
func (m Model) View() string {
	if !m.ready {
		return "ESTABLISHING UPLINK..."
	}

	mode := m.theme.GetLayoutMode()
	logColumn := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.renderTransmitting(),
		m.renderFooter(m.viewport.Width),
	)

	columns := []string{}
	if mode.ShowMissionPanel() {
		columns = append(columns, m.mission.View(), m.divider(lipgloss.Height(logColumn)))
	}
	columns = append(columns, logColumn)
	if mode.ShowSquadPanel() {
		columns = append(columns, m.divider(lipgloss.Height(logColumn)), m.squad.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)
}

func (m Model) renderHeader() string {
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		return m.header.ViewCompact()
	}
	return m.header.View()
}

func (m Model) renderTransmitting() string {
	if !m.busy() {
		return ""
	}
	return " " + components.RenderTransmitting(m.theme, m.spinner.View())
}

func (m Model) renderFooter(width int) string {
	t := m.theme
	inner := width - t.Footer.GetHorizontalFrameSize()

	helpRow := m.help.View(m.keys)
	if m.notice != "" {
		helpRow = t.ToggleOn.Render(m.notice)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderModeStrip(t, m.tactical),
		components.RenderInputRow(t, m.input.View(), m.input.Focused(), m.CanTransmit(), inner),
		helpRow,
	)
	return t.Footer.Width(width - t.Footer.GetHorizontalBorderSize()).Render(content)
}

func (m Model) divider(height int) string {
	return lipgloss.NewStyle().
		Foreground(m.theme.Palette.Deep).
		Render(repeatLines("┃", max(height, 1)))
}

func repeatLines(s string, n int) string {
	out := s
	for i := 1; i < n; i++ {
		out += "\n" + s
	}
	return out
}

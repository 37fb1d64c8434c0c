// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
)

// Control strip copy.
const (
	TacticalLabel = "TACTICAL BREVITY MODE"
	ChannelLabel  = "RADIO: CHANNEL A-12"
	TransmitLabel = "TRANSMIT"
)

// RenderModeStrip renders the tactical toggle and the channel label.
func RenderModeStrip(t *styles.Theme, tactical bool) string {
	box, style := "[ ]", t.ToggleOff
	if tactical {
		box, style = "[■]", t.ToggleOn
	}
	return style.Render(box+" "+TacticalLabel) +
		t.Channel.Render("  │  ") +
		t.Channel.Render(ChannelLabel)
}

// RenderTransmitButton renders the transmit button, dimmed when disabled.
func RenderTransmitButton(t *styles.Theme, enabled bool) string {
	if enabled {
		return t.Button.Render(TransmitLabel)
	}
	return t.ButtonDisabled.Render(TransmitLabel)
}

// RenderInputRow places the input box and the button side by side, the
// input stretched to fill width.
func RenderInputRow(t *styles.Theme, input string, focused, canTransmit bool, width int) string {
	button := RenderTransmitButton(t, canTransmit)
	box := t.Input
	if focused {
		box = t.InputFocused
	}
	boxWidth := max(width-lipgloss.Width(button)-1, 10)
	field := box.Width(boxWidth - box.GetHorizontalBorderSize()).Render(input)
	return lipgloss.JoinHorizontal(lipgloss.Center, field, " ", button)
}

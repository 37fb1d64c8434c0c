// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE LOG - radio transmissions
// =============================================================================

// Log copy.
const (
	UrgentLabel      = "URGENT"
	TransmittingText = "TRANSMITTING ENCRYPTED PACKET..."
	MetaSeparator    = " // "
)

// bubbleRatio is the share of the log width a single bubble may use.
const bubbleRatio = 0.85

// RenderMessage renders one transmission: a "CALLSIGN // TIMESTAMP" line
// above a bordered bubble. Operator traffic is right-aligned; HQ is red.
func RenderMessage(t *styles.Theme, msg model.Message, width int) string {
	meta := msg.Callsign + MetaSeparator + msg.Timestamp
	metaStyle := t.MetaUser
	bubble := t.SquadBubble
	align := lipgloss.Left

	switch msg.Sender {
	case model.SenderUser:
		bubble = t.UserBubble
		align = lipgloss.Right
	case model.SenderHQ:
		metaStyle = t.MetaHQ
		bubble = t.HQBubble
	}

	header := metaStyle.Render(meta)
	if msg.IsUrgent() {
		header = t.UrgentBadge.Render(UrgentLabel) + " " + header
	}

	maxBubble := max(int(float64(width)*bubbleRatio), 10)
	textWidth := maxBubble - bubble.GetHorizontalFrameSize()
	if w := lipgloss.Width(msg.Text); w < textWidth {
		textWidth = max(w, 1)
	}
	body := bubble.Render(lipgloss.NewStyle().Width(textWidth).Render(msg.Text))

	block := lipgloss.JoinVertical(align, header, body)
	return lipgloss.PlaceHorizontal(width, align, block)
}

// RenderLog renders every message in order, separated by a blank line.
func RenderLog(t *styles.Theme, msgs []model.Message, width int) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, RenderMessage(t, m, width))
	}
	return strings.Join(parts, "\n\n")
}

// RenderTransmitting renders the in-flight indicator next to a spinner frame.
func RenderTransmitting(t *styles.Theme, spinnerFrame string) string {
	return t.TransmitSpinner.Render(spinnerFrame) + " " + t.Transmitting.Render(TransmittingText)
}

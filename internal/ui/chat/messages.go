// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/tacnet-tui/internal/model"
)

// =============================================================================
// CLOCK
// =============================================================================

// TickMsg advances the mission clock. One arrives every second.
type TickMsg time.Time

// =============================================================================
// BOUNDARY UPDATES
// =============================================================================

// LogUpdatedMsg reports that a message was appended to the radio log.
type LogUpdatedMsg struct {
	Message model.Message
}

// IntelUpdatedMsg reports a new intel report.
type IntelUpdatedMsg struct {
	Report model.IntelReport
}

// SubmitResultMsg carries the outcome of a transmission.
// Accepted is false when the store rejected it (blank or already in flight).
type SubmitResultMsg struct {
	Message  model.Message
	Accepted bool
}

// =============================================================================
// SETTINGS
// =============================================================================

// ThemeChangedMsg switches the palette, e.g. after a config reload.
type ThemeChangedMsg struct {
	Name string
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// CopyResultMsg reports the outcome of copying the log.
type CopyResultMsg struct {
	Lines int
	Err   error
}

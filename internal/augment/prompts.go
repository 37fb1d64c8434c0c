// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package augment

import (
	"fmt"
	"strings"

	"github.com/jeranaias/tacnet-tui/internal/model"
)

// =============================================================================
// FALLBACK STRINGS
// =============================================================================

// Fallbacks substituted when the uplink fails or stays silent. "Empty" and
// "failed" are distinct conditions and must keep distinct text.
const (
	FallbackHQEmpty     = "STATION COPIES ALL. MAINTAIN DISCIPLINE. OUT."
	FallbackHQFailed    = "HQ COPIES ALL. STAY FROSTY."
	FallbackIntelEmpty  = "SITREP: NO CHANGE IN SECTOR STATUS."
	FallbackIntelFailed = "SIGINT: UNSTABLE CONNECTION DETECTED."
)

// =============================================================================
// SAMPLING TEMPERATURES
// =============================================================================

const (
	TemperatureTacticalize = 0.7
	TemperatureHQ          = 0.8
	TemperatureIntel       = 1.0
)

// =============================================================================
// SYSTEM INSTRUCTIONS
// =============================================================================

const (
	systemTacticalize = "You are a Military Communications Specialist. You only speak in professional, tactical radio brevity. Do not use emojis. Keep it concise."
	systemHQ          = "You are 'OVERLORD' - High Command HQ. Your responses are strategic, brief, and use military terminology. You monitor mission progress."
	systemIntel       = "Generate brief, atmospheric military intelligence reports."
)

// intelPrompt has no dynamic content.
const intelPrompt = "Generate a 1-sentence tactical intelligence update (e.g., 'Satellite imagery shows increased activity at sector 7', 'SIGINT detects encrypted broadcast from nearby ridge')."

// =============================================================================
// PROMPT BUILDERS
// =============================================================================

// TacticalizePrompt builds the rewrite prompt for input sent by callsign.
func TacticalizePrompt(input, callsign string) string {
	return fmt.Sprintf(`Transform this civilian message into professional military tactical radio chatter.
Use NATO phonetic alphabet, operational brevity codes (e.g., 'Copy', 'Wilco', 'Interrogative', 'Visual', 'SITREP'),
and ensure it sounds high-stakes.
Current Callsign: %s.
Message: "%s"`, callsign, input)
}

// HQPrompt builds the HQ reply prompt around a transcript of history.
func HQPrompt(history []model.Message) string {
	return `Based on the following tactical log, provide a Command/HQ response.
Update the team on their mission status or provide strategic guidance.
Be authoritative and brief.
Log:
` + FormatTranscript(history)
}

// FormatTranscript renders history as newline-joined "[timestamp] callsign: text" lines.
func FormatTranscript(history []model.Message) string {
	lines := make([]string, len(history))
	for i, m := range history {
		lines[i] = m.TranscriptLine()
	}
	return strings.Join(lines, "\n")
}

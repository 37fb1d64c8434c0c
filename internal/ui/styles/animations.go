// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// UplinkSpinner is shown while a transmission is being encrypted.
var UplinkSpinner = spinner.Spinner{
	Frames: []string{"(   )", "( . )", "( o )", "( O )", "( o )", "( . )"},
	FPS:    time.Second / 8,
}

// =============================================================================
// SIGNAL STRENGTH
// =============================================================================

// SignalBar is one bar of the signal meter.
const SignalBar = "▮"

// SignalMax is the number of bars in the meter.
const SignalMax = 5

// RenderSignal renders a meter with strength of SignalMax bars lit.
// Strength is clamped to [0, SignalMax].
func (t *Theme) RenderSignal(strength int) string {
	strength = clamp(strength, 0, SignalMax)
	var sb strings.Builder
	for i := 1; i <= SignalMax; i++ {
		if i <= strength {
			sb.WriteString(t.SignalOn.Render(SignalBar))
		} else {
			sb.WriteString(t.SignalOff.Render(SignalBar))
		}
	}
	return sb.String()
}

// =============================================================================
// PROGRESS INDICATORS
// =============================================================================

// Progress bar characters for the system health gauges.
var (
	ProgressFull    = "█"
	ProgressEmpty   = "░"
	ProgressPartial = []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}
)

// RenderProgressBar creates an unstyled progress bar string.
// width: total width of the bar in cells
// percent: 0-100 percentage complete
func RenderProgressBar(width int, percent float64) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := float64(width) * percent / 100
	full := int(filled)
	partial := int((filled - float64(full)) * float64(len(ProgressPartial)+1))

	var sb strings.Builder
	sb.Grow(width * 3)

	sb.WriteString(strings.Repeat(ProgressFull, full))
	cells := full
	if cells < width && partial > 0 {
		sb.WriteString(ProgressPartial[partial-1])
		cells++
	}
	if cells < width {
		sb.WriteString(strings.Repeat(ProgressEmpty, width-cells))
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

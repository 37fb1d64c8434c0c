// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the tacnet HUD.

# Color System (colors.go)

Colors are Lip Gloss AdaptiveColor values so the HUD stays legible on light
terminals. They are grouped into palettes that assign color roles:

	Primary - body text
	Bright  - the Zulu clock and active toggles
	Dim     - section labels and timestamps
	Deep    - borders and unlit indicators
	Alert   - HQ traffic and the URGENT badge
	Warn    - threat level

Three palettes ship: "tactical" (phosphor green), "amber", and "mono" (no
color). The [ui] theme config key picks one.

# Theme (theme.go)

NewTheme builds every lipgloss.Style the components use from a palette.
GetLayoutMode hides side panels on narrow terminals:

	< 80 columns   message log only
	80-120 columns adds the mission panel
	>= 120 columns adds the squad manifest

# Animations (animations.go)

UplinkSpinner drives the bubbles spinner shown while a packet is
transmitting. RenderSignal and RenderProgressBar draw the header signal
meter and the system health gauges.
*/
package styles

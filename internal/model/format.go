// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"time"
)

// ZuluLayout is the time layout used for message timestamps, without the
// trailing zone marker.
const ZuluLayout = "2006-01-02 15:04:05"

// ClockLayout is the layout used for intel report timestamps.
const ClockLayout = "15:04:05"

// FormatZulu renders t in UTC as "YYYY-MM-DD HH:MM:SS Z".
func FormatZulu(t time.Time) string {
	return t.UTC().Format(ZuluLayout) + " Z"
}

// FormatClock renders t as a local wall-clock time.
func FormatClock(t time.Time) string {
	return t.Local().Format(ClockLayout)
}

// =============================================================================
// COORDINATES
// =============================================================================

// Position is an operator location, used only for display.
type Position struct {
	Lat float64
	Lng float64
}

// FormatLatitude renders lat with four decimals and a hemisphere, e.g. "34.0522 N".
func FormatLatitude(lat float64) string {
	hemi := "N"
	if lat < 0 {
		hemi = "S"
	}
	return strconv.FormatFloat(lat, 'f', 4, 64) + " " + hemi
}

// FormatLongitude renders lng with four decimals and a hemisphere, e.g. "-118.2437 W".
// The sign is kept alongside the hemisphere.
func FormatLongitude(lng float64) string {
	hemi := "E"
	if lng < 0 {
		hemi = "W"
	}
	return strconv.FormatFloat(lng, 'f', 4, 64) + " " + hemi
}

// LatString returns the formatted latitude.
func (p Position) LatString() string {
	return FormatLatitude(p.Lat)
}

// LngString returns the formatted longitude.
func (p Position) LngString() string {
	return FormatLongitude(p.Lng)
}

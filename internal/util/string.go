// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended to display-truncated text.
const Ellipsis = "..."

// StringWidth returns the terminal cell width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth shortens s to at most maxWidth terminal cells, ending with
// an ellipsis when something was cut. Wide runes are never split.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces to exactly width cells, truncating if longer.
func PadRight(s string, width int) string {
	return runewidth.FillRight(TruncateWidth(s, width), width)
}

// PadLeft pads s with leading spaces to exactly width cells, truncating if longer.
func PadLeft(s string, width int) string {
	return runewidth.FillLeft(TruncateWidth(s, width), width)
}

// CollapseSpace trims s and collapses every run of whitespace, including
// newlines, to a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeInput NFC-normalizes operator input and drops control characters.
// Tabs become spaces.
func SanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, norm.NFC.String(s))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the radio console.
type KeyMap struct {
	Transmit       key.Binding
	ToggleTactical key.Binding
	CopyLog        key.Binding
	Up             key.Binding
	Down           key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings.
// Letter keys are left to the input field, so scrolling uses arrows and paging keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Transmit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "transmit"),
		),
		ToggleTactical: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "tactical mode"),
		),
		CopyLog: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy log"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Transmit, k.ToggleTactical, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Transmit, k.ToggleTactical, k.CopyLog},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

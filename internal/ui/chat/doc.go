// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the radio console: the bubbletea model that renders
// the conversation store and the intel feed.
//
// The console reads snapshots through the Conversation and IntelSource
// interfaces and writes only through SubmitUserMessage. Store and feed
// appends reach the event loop as LogUpdatedMsg and IntelUpdatedMsg via
// Bind; the console then re-reads the snapshot instead of trusting the
// payload, so updates that race each other still render in store order.
//
// # Key Bindings
//
//	Enter   transmit (disabled while sending or blank)
//	Ctrl+T  toggle Tactical Brevity Mode
//	Ctrl+Y  copy the radio log to the clipboard
//	Up/Down, PgUp/PgDn  scroll the log
//	F1      full help
//	Esc, Ctrl+C  quit
package chat

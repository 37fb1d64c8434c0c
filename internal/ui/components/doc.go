// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the HUD building blocks for tacnet.
//
// Components are plain renderers over values handed to them by the chat
// model. None of them hold a reference to the conversation store or the
// intel feed, so they cannot mutate a Message or IntelReport.
//
// # Components
//
//   - Header: Zulu mission clock, operation name, signal meter
//   - MissionPanel: operational status, SIGINT feed, classified warning
//   - SquadPanel: squad manifest and system health gauges
//   - RenderMessage / RenderLog: radio transmissions with URGENT badge
//   - RenderModeStrip / RenderInputRow: tactical toggle, channel, transmit
package components

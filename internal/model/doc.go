// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for radio traffic and intel.
//
// This package defines the core domain types shared by the conversation
// store, the intel feed, the augmentation client, and the UI.
//
// # Key Types
//
//   - Message: one transmission (sender, callsign, text, Zulu timestamp,
//     tactical flag, optional priority)
//   - Sender: closed enumeration USER, SQUAD_MATE, HQ, SYSTEM
//   - Priority: optional LOW, MED, HIGH, CRITICAL marking (nil when absent)
//   - IntelReport: one SIGINT feed entry
//   - ModelInfo: a text-generation model the uplink can target
//
// # Usage
//
//	msg := model.NewMessage(model.SenderHQ, "OVERLORD", "MISSION IS LIVE.", true, time.Now()).
//	    WithPriority(model.PriorityHigh)
//	fmt.Println(msg.TranscriptLine())
//	// [2025-01-01 12:00:00 Z] OVERLORD: MISSION IS LIVE.
package model

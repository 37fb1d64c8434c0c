// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across tacnet.
//
// # Contents
//
//   - WriteFileAtomic: crash-safe file replacement for config saves
//   - TruncateWidth, PadRight, PadLeft, StringWidth: terminal-cell aware
//     text fitting for the HUD panels
//   - CollapseSpace: single-line normalization of model output
//   - SanitizeInput: NFC normalization and control stripping for operator input
//   - Clock, SystemClock, FixedClock: injectable time source
package util

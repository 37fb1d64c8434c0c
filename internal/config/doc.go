// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for tacnet.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - GeminiConfig, OllamaConfig: Uplink provider settings
//   - MissionConfig: Callsigns, HQ reply odds and intel timing
//   - ValidateErrors: Aggregated validation failures
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TACNET_*, GEMINI_API_KEY, API_KEY)
//   - ~/.tacnet/config.toml
//   - ~/.tacnet/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	delay := cfg.HQReplyDelay()
package config

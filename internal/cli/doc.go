// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the tacnet command line.
//
// Usage:
//
//	tacnet                       open the radio console (requires a terminal)
//	tacnet tac <text>            rewrite one line as radio brevity
//	tacnet intel [-n N]          intercept N SIGINT reports
//	tacnet serve [--addr A]      run the feed and status relay headless
//	tacnet models [--json]       list known uplink models
//	tacnet config show|init|get|set|keys
//	tacnet version
//
// Global flags: --config PATH, --provider gemini|ollama.
// Console flags: --no-tactical, --serve.
//
// NewRuntime assembles the augmenter, conversation store, intel feed and
// status relay from a config; every command that talks to the uplink goes
// through it. When the uplink cannot be built (for example, no Gemini API
// key) the runtime falls back to an offline generator so the augmenter's
// fallback transmissions still flow.
package cli

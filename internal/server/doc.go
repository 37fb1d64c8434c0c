// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the optional read-only status relay.
//
// The relay exposes the same snapshots the TUI renders, so a second
// terminal or a dashboard can follow the radio log without sharing the
// process's terminal.
//
// # Endpoints
//
//   - GET /health            - Liveness plus log and feed counters
//   - GET /v1/messages       - Radio log in append order (?limit=N keeps the newest N)
//   - GET /v1/messages/{id}  - A single transmission
//   - GET /v1/intel          - Intel reports, newest first
//   - GET /metrics           - Prometheus exposition
//
// Nothing on the relay can submit traffic.
//
// # Usage
//
//	srv := server.NewServer("127.0.0.1:8787").
//		WithStore(store).
//		WithFeed(feed).
//		WithMetrics(m).
//		WithLogger(logger)
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server

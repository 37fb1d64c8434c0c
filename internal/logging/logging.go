// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap logger used across tacnet.
//
// The TUI owns the terminal, so logs go to a file (default
// ~/.tacnet/tacnet.log) as JSON lines, never to stdout or stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/tacnet-tui/internal/config"
)

// ParseLevel maps a config level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return lvl, nil
}

// New creates a JSON file logger from cfg. An empty cfg.File writes to the
// default path under the config directory.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	path := cfg.File
	if path == "" {
		path, err = config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.Int("pid", os.Getpid())), nil
}

// Must returns New(cfg), or a no-op logger if the file cannot be opened.
// The TUI must start even on a read-only home directory.
func Must(cfg config.LoggingConfig) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

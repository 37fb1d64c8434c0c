// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeranaias/tacnet-tui/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tacnet.log")

	logger, err := New(config.LoggingConfig{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("transmission appended", zap.String("id", "msg_1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "transmission appended", entry["msg"])
	assert.Equal(t, "msg_1", entry["id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "ts")
}

func TestNew_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	logger, err := New(config.LoggingConfig{Level: "warn"})
	require.NoError(t, err)
	logger.Warn("uplink call failed")
	_ = logger.Sync()

	_, err = os.Stat(filepath.Join(home, ".tacnet", "tacnet.log"))
	assert.NoError(t, err)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "verbose", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestMust_FallsBackToNop(t *testing.T) {
	logger := Must(config.LoggingConfig{Level: "nope"})
	require.NotNil(t, logger)
	logger.Info("dropped")
}

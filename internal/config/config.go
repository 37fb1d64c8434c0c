// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for tacnet.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.tacnet/config.toml
//   - ~/.tacnet/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/tacnet-tui/internal/util"
)

// Supported uplink providers.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tacnet configuration.
type Config struct {
	// General settings
	Version  string `toml:"version" json:"version"`
	Provider string `toml:"provider" json:"provider"`

	// Gemini uplink
	Gemini GeminiConfig `toml:"gemini" json:"gemini"`

	// Local (Ollama) uplink
	Ollama OllamaConfig `toml:"ollama" json:"ollama"`

	// Mission parameters: callsigns, HQ reply and intel timing
	Mission MissionConfig `toml:"mission" json:"mission"`

	// Displayed coordinates
	Position PositionConfig `toml:"position" json:"position"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging"`

	// Status relay configuration
	Server ServerConfig `toml:"server" json:"server"`
}

// GeminiConfig contains Google Gemini settings.
type GeminiConfig struct {
	APIKey string `toml:"api_key" json:"api_key"`
	Model  string `toml:"model" json:"model"`
}

// OllamaConfig contains local Ollama settings.
type OllamaConfig struct {
	URL   string `toml:"url" json:"url"`
	Model string `toml:"model" json:"model"`
}

// MissionConfig contains the radio net parameters.
type MissionConfig struct {
	Callsign         string  `toml:"callsign" json:"callsign"`
	HQCallsign       string  `toml:"hq_callsign" json:"hq_callsign"`
	SeedBriefing     bool    `toml:"seed_briefing" json:"seed_briefing"`
	HQReplyDelayMs   int     `toml:"hq_reply_delay_ms" json:"hq_reply_delay_ms"`
	HQReplyThreshold float64 `toml:"hq_reply_threshold" json:"hq_reply_threshold"`
	IntelIntervalMs  int     `toml:"intel_interval_ms" json:"intel_interval_ms"`
	IntelCapacity    int     `toml:"intel_capacity" json:"intel_capacity"`
}

// PositionConfig contains the cosmetic coordinates shown in the status panel.
type PositionConfig struct {
	Lat float64 `toml:"lat" json:"lat"`
	Lng float64 `toml:"lng" json:"lng"`
}

// UIConfig contains UI preferences.
type UIConfig struct {
	Theme           string `toml:"theme" json:"theme"`
	TacticalDefault bool   `toml:"tactical_default" json:"tactical_default"`
}

// LoggingConfig contains log settings. An empty File means ~/.tacnet/tacnet.log.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}

// ServerConfig contains the status relay settings.
type ServerConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Addr    string `toml:"addr" json:"addr"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version:  "1.0.0",
		Provider: ProviderGemini,

		Gemini: GeminiConfig{
			APIKey: "",
			Model:  "gemini-3-flash-preview",
		},

		Ollama: OllamaConfig{
			URL:   "http://127.0.0.1:11434",
			Model: "qwen2.5:7b",
		},

		Mission: MissionConfig{
			Callsign:         "ECHO-1",
			HQCallsign:       "OVERLORD",
			SeedBriefing:     true,
			HQReplyDelayMs:   2000,
			HQReplyThreshold: 0.4,
			IntelIntervalMs:  15000,
			IntelCapacity:    5,
		},

		Position: PositionConfig{
			Lat: 34.0522,
			Lng: -118.2437,
		},

		UI: UIConfig{
			Theme:           "tactical",
			TacticalDefault: true,
		},

		Logging: LoggingConfig{
			Level: "info",
		},

		Server: ServerConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8787",
		},
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Model returns the model ID for the active provider.
func (c *Config) Model() string {
	if c.Provider == ProviderOllama {
		return c.Ollama.Model
	}
	return c.Gemini.Model
}

// HQReplyDelay returns the mission HQ reply delay.
func (c *Config) HQReplyDelay() time.Duration {
	return time.Duration(c.Mission.HQReplyDelayMs) * time.Millisecond
}

// IntelInterval returns the intel poll interval.
func (c *Config) IntelInterval() time.Duration {
	return time.Duration(c.Mission.IntelIntervalMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tacnet configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tacnet"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns the log file used when logging.file is empty.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tacnet.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
// Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file into cfg.
// Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Keys absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	// General
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Provider == "" {
		cfg.Provider = defaults.Provider
	}
	cfg.Provider = strings.ToLower(cfg.Provider)

	// Uplinks
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = defaults.Gemini.Model
	}
	if cfg.Ollama.URL == "" {
		cfg.Ollama.URL = defaults.Ollama.URL
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = defaults.Ollama.Model
	}

	// Mission
	if cfg.Mission.Callsign == "" {
		cfg.Mission.Callsign = defaults.Mission.Callsign
	}
	if cfg.Mission.HQCallsign == "" {
		cfg.Mission.HQCallsign = defaults.Mission.HQCallsign
	}
	if cfg.Mission.IntelIntervalMs == 0 {
		cfg.Mission.IntelIntervalMs = defaults.Mission.IntelIntervalMs
	}
	if cfg.Mission.IntelCapacity == 0 {
		cfg.Mission.IntelCapacity = defaults.Mission.IntelCapacity
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}

	// Server
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# tacnet configuration file")
	fmt.Fprintln(&buf, "# Generated by tacnet - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.WriteFileAtomic(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors as ValidateErrors.
// A missing Gemini API key is not a validation error; the uplink reports it.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Uplink
	// ==========================================================================

	switch strings.ToLower(c.Provider) {
	case ProviderGemini, ProviderOllama:
	default:
		errs = append(errs, ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("invalid provider '%s', must be one of: gemini, ollama", c.Provider),
		})
	}

	if c.Ollama.URL != "" {
		u, err := url.Parse(c.Ollama.URL)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "ollama.url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, ValidationError{
				Field:   "ollama.url",
				Message: fmt.Sprintf("scheme must be http or https, got '%s'", u.Scheme),
			})
		}
	}

	// ==========================================================================
	// Mission
	// ==========================================================================

	if strings.TrimSpace(c.Mission.Callsign) == "" {
		errs = append(errs, ValidationError{Field: "mission.callsign", Message: "must not be empty"})
	}
	if strings.TrimSpace(c.Mission.HQCallsign) == "" {
		errs = append(errs, ValidationError{Field: "mission.hq_callsign", Message: "must not be empty"})
	}
	if c.Mission.HQReplyDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "mission.hq_reply_delay_ms",
			Message: fmt.Sprintf("must be non-negative, got %d", c.Mission.HQReplyDelayMs),
		})
	}
	if c.Mission.HQReplyThreshold < 0 || c.Mission.HQReplyThreshold > 1 {
		errs = append(errs, ValidationError{
			Field:   "mission.hq_reply_threshold",
			Message: "must be between 0.0 and 1.0",
		})
	}
	if c.Mission.IntelIntervalMs < 1000 {
		errs = append(errs, ValidationError{
			Field:   "mission.intel_interval_ms",
			Message: fmt.Sprintf("must be at least 1000, got %d", c.Mission.IntelIntervalMs),
		})
	}
	if c.Mission.IntelCapacity < 1 || c.Mission.IntelCapacity > 100 {
		errs = append(errs, ValidationError{
			Field:   "mission.intel_capacity",
			Message: fmt.Sprintf("must be 1-100, got %d", c.Mission.IntelCapacity),
		})
	}

	// ==========================================================================
	// Position
	// ==========================================================================

	if c.Position.Lat < -90 || c.Position.Lat > 90 {
		errs = append(errs, ValidationError{Field: "position.lat", Message: "must be between -90 and 90"})
	}
	if c.Position.Lng < -180 || c.Position.Lng > 180 {
		errs = append(errs, ValidationError{Field: "position.lng", Message: "must be between -180 and 180"})
	}

	// ==========================================================================
	// UI / Logging / Server
	// ==========================================================================

	validThemes := map[string]bool{"tactical": true, "amber": true, "mono": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: tactical, amber, mono", c.UI.Theme),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if c.Server.Enabled && strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, ValidationError{Field: "server.addr", Message: "required when server is enabled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TACNET_PROVIDER: overrides provider
//   - TACNET_API_KEY, GEMINI_API_KEY, API_KEY: gemini.api_key (first set wins)
//   - TACNET_MODEL: overrides the active provider's model
//   - TACNET_OLLAMA_URL: overrides ollama.url
//   - TACNET_LOG_LEVEL: overrides logging.level
//   - TACNET_SERVER_ADDR: overrides server.addr and enables the relay
func (c *Config) ApplyEnvOverrides() {
	if provider := os.Getenv("TACNET_PROVIDER"); provider != "" {
		c.Provider = strings.ToLower(provider)
	}

	for _, name := range []string{"TACNET_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if key := os.Getenv(name); key != "" {
			c.Gemini.APIKey = key
			break
		}
	}

	if model := os.Getenv("TACNET_MODEL"); model != "" {
		if c.Provider == ProviderOllama {
			c.Ollama.Model = model
		} else {
			c.Gemini.Model = model
		}
	}

	if u := os.Getenv("TACNET_OLLAMA_URL"); u != "" {
		c.Ollama.URL = u
	}

	if level := os.Getenv("TACNET_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if addr := os.Getenv("TACNET_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
		c.Server.Enabled = true
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "mission.callsign").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "mission.callsign").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"provider",
		"gemini.api_key",
		"gemini.model",
		"ollama.url",
		"ollama.model",
		"mission.callsign",
		"mission.hq_callsign",
		"mission.seed_briefing",
		"mission.hq_reply_delay_ms",
		"mission.hq_reply_threshold",
		"mission.intel_interval_ms",
		"mission.intel_capacity",
		"position.lat",
		"position.lng",
		"ui.theme",
		"ui.tactical_default",
		"logging.level",
		"logging.file",
		"server.enabled",
		"server.addr",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a JSON rendering of the config with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Gemini.APIKey != "" {
		safe.Gemini.APIKey = "[REDACTED]"
	}

	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/augment"
	"github.com/jeranaias/tacnet-tui/internal/config"
	"github.com/jeranaias/tacnet-tui/internal/conversation"
	"github.com/jeranaias/tacnet-tui/internal/gemini"
	"github.com/jeranaias/tacnet-tui/internal/intel"
	"github.com/jeranaias/tacnet-tui/internal/logging"
	"github.com/jeranaias/tacnet-tui/internal/metrics"
	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ollama"
	"github.com/jeranaias/tacnet-tui/internal/server"
)

// GeneratorFactory builds the uplink for cfg. Replaced in tests.
type GeneratorFactory func(ctx context.Context, cfg *config.Config) (augment.Generator, error)

// ollamaCheckTimeout bounds the startup reachability check. Generation
// requests themselves are bounded only by their context.
const ollamaCheckTimeout = 3 * time.Second

// NewGenerator selects the uplink backend named by cfg.Provider. The
// ollama backend is checked first, so an unreachable server or an unpulled
// model leaves the runtime offline instead of failing every call.
func NewGenerator(ctx context.Context, cfg *config.Config) (augment.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		client := newOllamaClient(cfg)
		if err := checkOllama(ctx, client, cfg.Ollama.Model); err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderGemini, "":
		gen, err := gemini.New(ctx, gemini.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini uplink: %w", err)
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func newOllamaClient(cfg *config.Config) *ollama.Client {
	return ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Ollama.URL,
		DefaultModel: cfg.Ollama.Model,
	})
}

func checkOllama(ctx context.Context, c *ollama.Client, name string) error {
	if name == "" {
		name = ollama.DefaultModel
	}
	ctx, cancel := context.WithTimeout(ctx, ollamaCheckTimeout)
	defer cancel()

	if err := c.CheckRunning(ctx); err != nil {
		return describeOllamaError(c, err)
	}
	models, err := c.ListModels(ctx)
	if err != nil {
		return describeOllamaError(c, err)
	}
	if !ollama.HasModel(models, name) {
		return fmt.Errorf("ollama uplink: model %s is not pulled (run: ollama pull %s): %w", name, name, ollama.ErrModelNotFound)
	}
	return nil
}

func describeOllamaError(c *ollama.Client, err error) error {
	switch {
	case ollama.IsNotRunning(err):
		return fmt.Errorf("ollama uplink: nothing answering at %s: %w", c.BaseURL(), err)
	case ollama.IsTimeout(err):
		return fmt.Errorf("ollama uplink: %s did not answer in time: %w", c.BaseURL(), err)
	}
	return fmt.Errorf("ollama uplink: %w", err)
}

// offlineGenerator fails every call, so the augmenter serves its fallbacks.
// Used when no uplink can be built, e.g. a missing API key.
var offlineGenerator = augment.GeneratorFunc(func(context.Context, augment.GenerateRequest) (string, error) {
	return "", errors.New("uplink offline")
})

// =============================================================================
// RUNTIME
// =============================================================================

// Runtime is the assembled application: augmenter, store, feed and relay.
type Runtime struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	Augment *augment.Client
	Store   *conversation.Store
	Feed    *intel.Feed
	Server  *server.Server

	// Offline is set when the uplink could not be built.
	Offline error
}

// NewRuntime wires every component from cfg. Nothing is started; call Start.
func NewRuntime(ctx context.Context, cfg *config.Config, logger *zap.Logger, newGen GeneratorFactory) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	if newGen == nil {
		newGen = NewGenerator
	}
	m := metrics.New()

	rt := &Runtime{Config: cfg, Logger: logger, Metrics: m}

	gen, err := newGen(ctx, cfg)
	if err != nil {
		logger.Warn("uplink unavailable, serving fallbacks", zap.Error(err))
		rt.Offline = err
		gen = offlineGenerator
	}

	rt.Augment = augment.New(gen,
		augment.WithModel(model.ResolveModelID(cfg.Model())),
		augment.WithLogger(logger.Named("augment")),
		augment.WithMetrics(m),
	)

	rt.Store = conversation.New(rt.Augment, conversation.Config{
		Callsign:       cfg.Mission.Callsign,
		HQCallsign:     cfg.Mission.HQCallsign,
		ReplyDelay:     cfg.HQReplyDelay(),
		ReplyThreshold: cfg.Mission.HQReplyThreshold,
		SeedBriefing:   cfg.Mission.SeedBriefing,
	},
		conversation.WithLogger(logger.Named("conversation")),
		conversation.WithMetrics(m),
	)

	rt.Feed = intel.NewFeed(rt.Augment, intel.Config{
		Interval: cfg.IntelInterval(),
		Capacity: cfg.Mission.IntelCapacity,
	},
		intel.WithLogger(logger.Named("intel")),
		intel.WithMetrics(m),
	)

	rt.Server = server.NewServer(cfg.Server.Addr).
		WithStore(rt.Store).
		WithFeed(rt.Feed).
		WithMetrics(m).
		WithLogger(logger.Named("server"))

	return rt
}

// Start ties the store and feed to ctx and begins intel polling.
func (rt *Runtime) Start(ctx context.Context) {
	rt.Store.Start(ctx)
	rt.Feed.Start(ctx)
}

// Stop halts polling and cancels pending HQ replies.
func (rt *Runtime) Stop() {
	rt.Feed.Stop()
	rt.Store.Stop()
}

// UplinkLabel is the header label for the active model.
func (rt *Runtime) UplinkLabel() string {
	if rt.Offline != nil {
		return "OFFLINE"
	}
	return model.UplinkLabel(rt.Augment.Model())
}

// =============================================================================
// CONFIG + LOGGER
// =============================================================================

// loadConfig loads path if set, else the default locations, then applies
// flag overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFromPath(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		// defaults are usable; the file was not
		fmt.Fprintln(opts.Err, WarningStyle.Render("Warning: "+err.Error()))
	}

	if opts.Provider != "" {
		cfg.Provider = strings.ToLower(opts.Provider)
	}
	if opts.NoTactical {
		cfg.UI.TacticalDefault = false
	}
	if opts.Serve {
		cfg.Server.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logging.Must(cfg.Logging)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package augment turns radio traffic into prompts for a text-generation
// uplink and normalizes every result, including failures, into plain text.
package augment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/metrics"
	"github.com/jeranaias/tacnet-tui/internal/model"
)

// Operation names used in logs and metrics.
const (
	OpTacticalize = "tacticalize"
	OpHQResponse  = "hq_response"
	OpIntel       = "intel"
)

// =============================================================================
// GENERATOR BOUNDARY
// =============================================================================

// GenerateRequest is one call to the text-generation uplink.
type GenerateRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float64
}

// Generator is the remote text-generation capability.
// Implementations may block; they must honor ctx.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req GenerateRequest) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return f(ctx, req)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client wraps a Generator with the three tacnet operations.
//
// Every operation is total: errors, panics, and empty output from the
// Generator are absorbed into a per-operation fallback string, so callers
// never handle uplink failures.
//
// The Client is safe for concurrent use if its Generator is.
type Client struct {
	gen     Generator
	model   string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model ID passed to the Generator.
func WithModel(id string) Option {
	return func(c *Client) { c.model = id }
}

// WithLogger sets the logger used to report absorbed failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client around gen.
func New(gen Generator, opts ...Option) *Client {
	c := &Client{
		gen:    gen,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model ID.
func (c *Client) Model() string {
	return c.model
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Tacticalize rewrites input as radio brevity chatter from callsign.
// It degrades to returning input unchanged when the uplink fails or is silent.
func (c *Client) Tacticalize(ctx context.Context, input, callsign string) string {
	text, outcome := c.call(ctx, OpTacticalize, GenerateRequest{
		Prompt:            TacticalizePrompt(input, callsign),
		SystemInstruction: systemTacticalize,
		Temperature:       TemperatureTacticalize,
	})
	if outcome != metrics.OutcomeOK {
		return input
	}
	return text
}

// GenerateHQResponse asks OVERLORD to respond to history.
func (c *Client) GenerateHQResponse(ctx context.Context, history []model.Message) string {
	text, outcome := c.call(ctx, OpHQResponse, GenerateRequest{
		Prompt:            HQPrompt(history),
		SystemInstruction: systemHQ,
		Temperature:       TemperatureHQ,
	})
	switch outcome {
	case metrics.OutcomeEmpty:
		return FallbackHQEmpty
	case metrics.OutcomeFailed:
		return FallbackHQFailed
	}
	return text
}

// GenerateIntel produces one sentence of atmospheric intelligence.
func (c *Client) GenerateIntel(ctx context.Context) string {
	text, outcome := c.call(ctx, OpIntel, GenerateRequest{
		Prompt:            intelPrompt,
		SystemInstruction: systemIntel,
		Temperature:       TemperatureIntel,
	})
	switch outcome {
	case metrics.OutcomeEmpty:
		return FallbackIntelEmpty
	case metrics.OutcomeFailed:
		return FallbackIntelFailed
	}
	return text
}

// call invokes the Generator and classifies the result. It never panics.
// Non-blank text is returned exactly as the uplink sent it.
func (c *Client) call(ctx context.Context, op string, req GenerateRequest) (text string, outcome string) {
	req.Model = c.model
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("uplink panicked",
				zap.String("op", op),
				zap.String("panic", fmt.Sprint(r)))
			text, outcome = "", metrics.OutcomeFailed
		}
		c.metrics.ObserveAugment(op, outcome, time.Since(start).Seconds())
	}()

	if c.gen == nil {
		c.logger.Warn("uplink not configured", zap.String("op", op))
		return "", metrics.OutcomeFailed
	}

	text, err := c.gen.Generate(ctx, req)
	if err != nil {
		c.logger.Warn("uplink call failed",
			zap.String("op", op),
			zap.String("model", req.Model),
			zap.Error(err))
		return "", metrics.OutcomeFailed
	}

	if strings.TrimSpace(text) == "" {
		c.logger.Debug("uplink returned no text", zap.String("op", op))
		return "", metrics.OutcomeEmpty
	}

	c.logger.Debug("uplink call succeeded",
		zap.String("op", op),
		zap.Duration("latency", time.Since(start)))
	return text, metrics.OutcomeOK
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the Google Gemini uplink backed by google.golang.org/genai.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/jeranaias/tacnet-tui/internal/augment"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// ErrNoAPIKey is returned when a Generator is created without credentials.
var ErrNoAPIKey = errors.New("gemini API key is required")

// Config holds the options for a Generator.
type Config struct {
	// APIKey is the Gemini API credential (required)
	APIKey string

	// Model is the default model ID (default: gemini-3-flash-preview)
	Model string

	// BaseURL overrides the API endpoint; used by tests
	BaseURL string
}

// Generator sends single-turn generateContent requests to Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// New creates a Generator for the Gemini API.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Model returns the default model ID.
func (g *Generator) Model() string {
	return g.model
}

// Generate implements augment.Generator.
func (g *Generator) Generate(ctx context.Context, req augment.GenerateRequest) (string, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = g.model
	}

	temp := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, modelID, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if resp == nil {
		return "", errors.New("gemini returned no response")
	}

	return resp.Text(), nil
}

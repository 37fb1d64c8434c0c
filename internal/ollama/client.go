// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/tacnet-tui/internal/augment"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError is a failed exchange with the local uplink.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType says which leg of the exchange failed.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// ErrModelNotFound is returned by Generate when the model is not pulled.
var ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	DefaultBaseURL = "http://127.0.0.1:11434"
	DefaultModel   = "qwen2.5:7b"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL of the Ollama server. The IPv4 loopback avoids resolving
	// localhost to ::1 on hosts where Ollama binds IPv4 only.
	BaseURL string

	// Timeout caps each HTTP request. Zero means no cap: a request lasts
	// as long as its context allows, however slow the local model is.
	Timeout time.Duration

	// DefaultModel is used when a request names no model.
	DefaultModel string
}

// DefaultConfig returns a config for a stock local install.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      DefaultBaseURL,
		DefaultModel: DefaultModel,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to an Ollama server and satisfies augment.Generator.
// It is safe for concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewClientWithConfig creates a Client. Zero fields take their defaults,
// except Timeout, where zero stays zero.
func NewClientWithConfig(config *ClientConfig) *Client {
	cfg := *DefaultConfig()
	if config != nil {
		if config.BaseURL != "" {
			cfg.BaseURL = config.BaseURL
		}
		if config.DefaultModel != "" {
			cfg.DefaultModel = config.DefaultModel
		}
		cfg.Timeout = config.Timeout
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Timeout returns the per-request cap; zero means none.
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// =============================================================================
// HEALTH
// =============================================================================

// CheckRunning reports whether the server answers on its root path.
func (c *Client) CheckRunning(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{Type: ErrTypeConnection, Message: "unexpected status from Ollama: " + resp.Status}
	}
	return nil
}

// ListModels returns the models pulled into the local store.
func (c *Client) ListModels(ctx context.Context) ([]LocalModel, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to list models: " + resp.Status}
	}

	var result ListModelsResponse
	if err := decode(resp.Body, &result); err != nil {
		return nil, err
	}
	return result.Models, nil
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate implements augment.Generator as one non-streaming chat turn:
// an optional system message followed by the prompt.
func (c *Client) Generate(ctx context.Context, req augment.GenerateRequest) (string, error) {
	messages := make([]Message, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, NewSystemMessage(req.SystemInstruction))
	}
	messages = append(messages, NewUserMessage(req.Prompt))

	model := req.Model
	if model == "" {
		model = c.config.DefaultModel
	}

	resp, err := c.chat(ctx, ChatRequest{
		Model:    model,
		Messages: messages,
		Options:  &Options{Temperature: req.Temperature},
	})
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

func (c *Client) chat(ctx context.Context, body ChatRequest) (*ChatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/chat", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrModelNotFound
	case resp.StatusCode != http.StatusOK:
		var apiErr OllamaError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: apiErr.Error}
		}
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "chat request failed: " + resp.Status}
	}

	var result ChatResponse
	if err := decode(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	return resp, nil
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running", Cause: err}
}

// IsNotRunning reports whether err means nothing answered at the base URL.
func IsNotRunning(err error) bool {
	return errorType(err) == ErrTypeNotRunning
}

// IsTimeout reports whether err means the request's context ran out.
func IsTimeout(err error) bool {
	return errorType(err) == ErrTypeTimeout
}

func errorType(err error) ErrorType {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type
	}
	return ErrTypeUnknown
}

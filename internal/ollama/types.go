// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "time"

// =============================================================================
// WIRE TYPES
// =============================================================================

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. Stream is always false.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  *Options  `json:"options,omitempty"`
}

// Options holds the sampling parameters tacnet sets.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
}

// ChatResponse is the body returned by a non-streaming /api/chat call.
type ChatResponse struct {
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
	Message    Message   `json:"message"`
	Done       bool      `json:"done"`
	DoneReason string    `json:"done_reason,omitempty"`
}

// LocalModel describes a model pulled into the local Ollama store.
type LocalModel struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
}

// ListModelsResponse is the body of GET /api/tags.
type ListModelsResponse struct {
	Models []LocalModel `json:"models"`
}

// OllamaError is the error body Ollama sends with non-2xx statuses.
type OllamaError struct {
	Error string `json:"error"`
}

// NewUserMessage creates a user turn.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewSystemMessage creates a system turn.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// Matches reports whether m is the model called name. A name without a
// tag matches its ":latest" entry.
func (m LocalModel) Matches(name string) bool {
	return m.Name == name || m.Name == name+":latest"
}

// HasModel reports whether any of models matches name.
func HasModel(models []LocalModel, name string) bool {
	for _, m := range models {
		if m.Matches(name) {
			return true
		}
	}
	return false
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the local uplink for tacnet, an HTTP client for
// the Ollama API.
//
// The Client satisfies augment.Generator, so a local model can stand in for
// Gemini when the operator has no network or no API key. Requests carry no
// timeout of their own unless ClientConfig.Timeout is set.
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: url})
//	if err := client.CheckRunning(ctx); err != nil {
//	    return err
//	}
//	text, err := client.Generate(ctx, augment.GenerateRequest{
//	    Prompt:      "Generate a 1-sentence tactical intelligence update.",
//	    Temperature: 1.0,
//	})
package ollama

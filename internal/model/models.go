// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strings"
)

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// ModelInfo describes a text-generation model the uplink can be pointed at.
// The HUD uses it to label the active uplink.
type ModelInfo struct {
	// ID is the model identifier used in API calls
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Provider is "gemini" or "ollama"
	Provider string `json:"provider"`

	// Callsign is the short label shown in the header
	Callsign string `json:"callsign"`
}

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// Models is the registry of known models keyed by short name.
var Models = map[string]ModelInfo{
	"flash-3": {
		ID:       "gemini-3-flash-preview",
		Name:     "Gemini 3 Flash (preview)",
		Provider: "gemini",
		Callsign: "SATCOM-3F",
	},
	"flash-2.5": {
		ID:       "gemini-2.5-flash",
		Name:     "Gemini 2.5 Flash",
		Provider: "gemini",
		Callsign: "SATCOM-25F",
	},
	"pro-2.5": {
		ID:       "gemini-2.5-pro",
		Name:     "Gemini 2.5 Pro",
		Provider: "gemini",
		Callsign: "SATCOM-25P",
	},
	"qwen2.5": {
		ID:       "qwen2.5:7b",
		Name:     "Qwen 2.5 7B",
		Provider: "ollama",
		Callsign: "FIELD-Q7",
	},
	"llama3": {
		ID:       "llama3.1:8b",
		Name:     "Llama 3.1 8B",
		Provider: "ollama",
		Callsign: "FIELD-L8",
	},
	"mistral": {
		ID:       "mistral:7b",
		Name:     "Mistral 7B",
		Provider: "ollama",
		Callsign: "FIELD-M7",
	},
}

// GetModelInfo looks up a model by short name or full API ID.
func GetModelInfo(id string) (ModelInfo, bool) {
	if info, ok := Models[id]; ok {
		return info, true
	}
	for _, info := range Models {
		if strings.EqualFold(info.ID, id) {
			return info, true
		}
	}
	return ModelInfo{}, false
}

// ResolveModelID maps a short name to its API ID. Unknown names are returned
// unchanged so that any model the provider serves can still be used.
func ResolveModelID(id string) string {
	if info, ok := Models[id]; ok {
		return info.ID
	}
	return id
}

// UplinkLabel returns the header label for a model, falling back to the raw ID.
func UplinkLabel(id string) string {
	if info, ok := GetModelInfo(id); ok {
		return info.Callsign
	}
	return strings.ToUpper(id)
}

// GetModelsByProvider returns all registered models for provider, sorted by ID.
func GetModelsByProvider(provider string) []ModelInfo {
	var out []ModelInfo
	for _, info := range Models {
		if info.Provider == provider {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

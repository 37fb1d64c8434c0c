// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for radio traffic and intel.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who transmitted a message.
type Sender string

const (
	SenderUser      Sender = "USER"
	SenderSquadMate Sender = "SQUAD_MATE"
	SenderHQ        Sender = "HQ"
	SenderSystem    Sender = "SYSTEM"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderSquadMate, SenderHQ, SenderSystem:
		return true
	default:
		return false
	}
}

// ParseSender parses a sender name, case-insensitively.
func ParseSender(s string) (Sender, error) {
	sender := Sender(strings.ToUpper(strings.TrimSpace(s)))
	if !sender.Valid() {
		return "", fmt.Errorf("unknown sender %q", s)
	}
	return sender, nil
}

// =============================================================================
// PRIORITY TYPE
// =============================================================================

// Priority is the optional urgency marking of a message.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMed      Priority = "MED"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Ptr returns a pointer to a copy of p.
func (p Priority) Ptr() *Priority {
	return &p
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single transmission in the radio log.
// Messages are values; once appended to a log they are never changed.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Callsign  string    `json:"callsign"`
	Text      string    `json:"text"`
	Timestamp string    `json:"timestamp"` // Zulu time
	Tactical  bool      `json:"tactical"`
	Priority  *Priority `json:"priority,omitempty"`
}

// NewMessage creates a message stamped with the Zulu time of now.
func NewMessage(sender Sender, callsign, text string, tactical bool, now time.Time) Message {
	return Message{
		ID:        generateID(),
		Sender:    sender,
		Callsign:  callsign,
		Text:      text,
		Timestamp: FormatZulu(now),
		Tactical:  tactical,
	}
}

// WithPriority returns a copy of m carrying priority p.
func (m Message) WithPriority(p Priority) Message {
	m.Priority = p.Ptr()
	return m
}

// HasPriority reports whether m is marked with priority p.
func (m Message) HasPriority(p Priority) bool {
	return m.Priority != nil && *m.Priority == p
}

// IsUrgent reports whether the message should carry the URGENT badge.
func (m Message) IsUrgent() bool {
	return m.HasPriority(PriorityHigh) || m.HasPriority(PriorityCritical)
}

// Clone returns a copy of m that shares no memory with it.
func (m Message) Clone() Message {
	if m.Priority != nil {
		m.Priority = m.Priority.Ptr()
	}
	return m
}

// TranscriptLine renders the message as a single log line:
//
//	[2024-06-01 12:00:00 Z] ECHO-1: message text
func (m Message) TranscriptLine() string {
	return "[" + m.Timestamp + "] " + m.Callsign + ": " + m.Text
}

// CloneMessages returns a deep copy of msgs.
func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}

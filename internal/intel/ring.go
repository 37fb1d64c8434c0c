// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intel

import (
	"sync"

	"github.com/jeranaias/tacnet-tui/internal/model"
)

// DefaultCapacity is the number of reports the feed retains.
const DefaultCapacity = 5

// Ring is a bounded list of reports ordered newest first.
// Pushing onto a full ring evicts the oldest report. Safe for concurrent use.
type Ring struct {
	mu   sync.RWMutex
	buf  []model.IntelReport
	head int // index of the newest report
	size int
}

// NewRing creates a ring holding at most capacity reports.
// A capacity below 1 uses DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ring{
		buf:  make([]model.IntelReport, capacity),
		head: -1,
	}
}

// Push inserts rep as the newest report.
func (r *Ring) Push(rep model.IntelReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = (r.head + 1) % len(r.buf)
	r.buf[r.head] = rep
	if r.size < len(r.buf) {
		r.size++
	}
}

// Items returns a copy of the reports, newest first.
func (r *Ring) Items() []model.IntelReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.IntelReport, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.head-i+len(r.buf))%len(r.buf)]
	}
	return out
}

// Len returns the number of reports held.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Cap returns the ring's capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

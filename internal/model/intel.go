// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// SourceSIGINT tags reports produced by the intel poller.
const SourceSIGINT = "SIGINT"

// IntelReport is one entry in the intelligence feed.
type IntelReport struct {
	Timestamp string `json:"timestamp"` // local clock, display only
	Content   string `json:"content"`
	Source    string `json:"source"`
}

// NewIntelReport wraps content as a SIGINT report stamped with now.
func NewIntelReport(content string, now time.Time) IntelReport {
	return IntelReport{
		Timestamp: FormatClock(now),
		Content:   content,
		Source:    SourceSIGINT,
	}
}

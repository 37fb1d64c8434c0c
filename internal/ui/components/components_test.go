// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
)

var zulu = time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

func testTheme() *styles.Theme {
	return styles.NewTheme("mono")
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	h := NewHeader(testTheme())

	if h.Operation != DefaultOperation {
		t.Errorf("Operation = %q, want %q", h.Operation, DefaultOperation)
	}
	if h.Signal != 4 {
		t.Errorf("Signal = %d, want 4", h.Signal)
	}
	if h.Width != 80 {
		t.Errorf("Width = %d, want 80", h.Width)
	}
}

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(120)
	h.SetTime(zulu)
	h.SetUplink("SATCOM-3F")

	view := h.View()

	for _, want := range []string{"MISSION TIME", "2025-06-01 12:30:45 Z", "STRIKE TEAM ECHO", "SIGNAL STRENGTH", "SATCOM-3F"} {
		if !strings.Contains(view, want) {
			t.Errorf("header missing %q:\n%s", want, view)
		}
	}
	if strings.Count(view, styles.SignalBar) != styles.SignalMax {
		t.Errorf("header should draw %d signal bars", styles.SignalMax)
	}
}

func TestHeaderView_FitsWidth(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetTime(zulu)

	for _, w := range []int{40, 80, 120} {
		h.SetWidth(w)
		for _, line := range strings.Split(h.View(), "\n") {
			if lipgloss.Width(line) > w {
				t.Errorf("width %d: line too wide (%d): %q", w, lipgloss.Width(line), line)
			}
		}
	}
}

func TestHeaderViewCompact(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(50)
	h.SetTime(zulu)

	view := h.ViewCompact()
	if !strings.Contains(view, "2025-06-01 12:30:45 Z") {
		t.Errorf("compact header missing clock: %q", view)
	}
	if strings.Contains(view, "STRIKE TEAM ECHO") {
		t.Error("compact header should omit the operation name")
	}
}

// =============================================================================
// MISSION PANEL TESTS
// =============================================================================

func TestMissionPanel_Status(t *testing.T) {
	p := NewMissionPanel(testTheme(), model.Position{Lat: 34.0522, Lng: -118.2437})
	view := p.View()

	for _, want := range []string{"OPERATIONAL STATUS", "COMMS:", "ENCRYPTED", "THREAT:", "LEVEL 3", "34.0522 N", "118.2437 W"} {
		if !strings.Contains(view, want) {
			t.Errorf("mission panel missing %q", want)
		}
	}
}

func TestMissionPanel_EmptyFeed(t *testing.T) {
	p := NewMissionPanel(testTheme(), model.Position{})
	view := p.View()

	if !strings.Contains(view, "SIGINT INTEL FEED") {
		t.Error("missing feed title")
	}
	if !strings.Contains(view, ScanningHint) {
		t.Error("empty feed should show the scanning hint")
	}
	if !strings.Contains(view, WarningHeading) {
		t.Error("missing classified warning")
	}
}

func TestMissionPanel_Reports(t *testing.T) {
	p := NewMissionPanel(testTheme(), model.Position{})
	reports := []model.IntelReport{
		{Timestamp: "10:30:15", Content: "Newer", Source: model.SourceSIGINT},
		{Timestamp: "10:30:00", Content: "Older", Source: model.SourceSIGINT},
	}
	p.SetReports(reports)

	view := p.View()
	if strings.Contains(view, ScanningHint) {
		t.Error("scanning hint shown with reports present")
	}
	if !strings.Contains(view, "[10:30:15] SIGINT") {
		t.Errorf("missing report stamp:\n%s", view)
	}
	if strings.Index(view, "Newer") > strings.Index(view, "Older") {
		t.Error("reports should render in the order given (newest first)")
	}
	if reports[0].Content != "Newer" {
		t.Error("View must not modify the reports")
	}
}

func TestMissionPanel_PinsWarningToBottom(t *testing.T) {
	p := NewMissionPanel(testTheme(), model.Position{})
	p.SetSize(styles.MissionPanelWidth, 40)

	if h := lipgloss.Height(p.View()); h != 40 {
		t.Errorf("panel height = %d, want 40", h)
	}
}

func TestRenderIntelReport_CollapsesNewlines(t *testing.T) {
	r := model.IntelReport{Timestamp: "01:02:03", Content: "Radio\nchatter", Source: "SIGINT"}
	view := RenderIntelReport(testTheme(), r, 40)
	if !strings.Contains(view, "Radio chatter") {
		t.Errorf("content should be a single line: %q", view)
	}
}

// =============================================================================
// SQUAD PANEL TESTS
// =============================================================================

func TestDefaultSquad(t *testing.T) {
	squad := DefaultSquad("ECHO-1")
	if len(squad) != 3 {
		t.Fatalf("len = %d, want 3", len(squad))
	}
	if squad[0].Name != "ECHO-1 (YOU)" || !squad[0].Active() {
		t.Errorf("first operative = %+v", squad[0])
	}
	if squad[1].Status != StatusInfil || squad[2].Status != StatusStandby {
		t.Errorf("unexpected statuses: %+v", squad)
	}
	if squad[1].Active() {
		t.Error("GHOST-2 should not be active")
	}
}

func TestSquadPanelView(t *testing.T) {
	p := NewSquadPanel(testTheme(), "ECHO-1")
	view := p.View()

	for _, want := range []string{"SQUAD MANIFEST", "ECHO-1 (YOU)", "GHOST-2", "REAPER-4", "STANDBY", "SYSTEM HEALTH"} {
		if !strings.Contains(view, want) {
			t.Errorf("squad panel missing %q", want)
		}
	}
	for _, line := range strings.Split(view, "\n") {
		if lipgloss.Width(line) > styles.SquadPanelWidth {
			t.Errorf("line too wide: %q", line)
		}
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestRenderMessage_Meta(t *testing.T) {
	msg := model.NewMessage(model.SenderHQ, "OVERLORD", "HOLD.", true, zulu)
	view := RenderMessage(testTheme(), msg, 80)

	if !strings.Contains(view, "OVERLORD // 2025-06-01 12:30:45 Z") {
		t.Errorf("missing meta line:\n%s", view)
	}
	if !strings.Contains(view, "HOLD.") {
		t.Error("missing text")
	}
	if strings.Contains(view, UrgentLabel) {
		t.Error("unprioritized message should not be urgent")
	}
}

func TestRenderMessage_UrgentBadge(t *testing.T) {
	tests := []struct {
		priority model.Priority
		urgent   bool
	}{
		{model.PriorityLow, false},
		{model.PriorityMed, false},
		{model.PriorityHigh, true},
		{model.PriorityCritical, true},
	}
	for _, tc := range tests {
		msg := model.NewMessage(model.SenderHQ, "OVERLORD", "MOVE.", true, zulu).WithPriority(tc.priority)
		got := strings.Contains(RenderMessage(testTheme(), msg, 80), UrgentLabel)
		if got != tc.urgent {
			t.Errorf("priority %s: urgent badge = %v, want %v", tc.priority, got, tc.urgent)
		}
	}
}

func TestRenderMessage_UserRightAligned(t *testing.T) {
	user := RenderMessage(testTheme(), model.NewMessage(model.SenderUser, "ECHO-1", "CHECK", false, zulu), 80)
	hq := RenderMessage(testTheme(), model.NewMessage(model.SenderHQ, "OVERLORD", "CHECK", true, zulu), 80)

	userLine := lineContaining(user, "CHECK")
	hqLine := lineContaining(hq, "CHECK")
	if strings.Index(userLine, "CHECK") <= strings.Index(hqLine, "CHECK") {
		t.Errorf("user text should sit further right than HQ text\nuser: %q\nhq:   %q", userLine, hqLine)
	}
}

func TestRenderMessage_WrapsToWidth(t *testing.T) {
	long := strings.Repeat("CONTACT FRONT ", 20)
	view := RenderMessage(testTheme(), model.NewMessage(model.SenderSquadMate, "GHOST-2", long, true, zulu), 60)

	for _, line := range strings.Split(view, "\n") {
		if lipgloss.Width(line) > 60 {
			t.Errorf("line too wide (%d): %q", lipgloss.Width(line), line)
		}
	}
}

func TestRenderLog_Order(t *testing.T) {
	msgs := []model.Message{
		model.NewMessage(model.SenderHQ, "OVERLORD", "FIRST", true, zulu),
		model.NewMessage(model.SenderUser, "ECHO-1", "SECOND", false, zulu),
	}
	view := RenderLog(testTheme(), msgs, 80)

	if strings.Index(view, "FIRST") > strings.Index(view, "SECOND") {
		t.Error("log should render in append order")
	}
	if RenderLog(testTheme(), nil, 80) != "" {
		t.Error("empty log should render nothing")
	}
}

func TestRenderTransmitting(t *testing.T) {
	view := RenderTransmitting(testTheme(), "( o )")
	if !strings.Contains(view, TransmittingText) || !strings.Contains(view, "( o )") {
		t.Errorf("unexpected indicator: %q", view)
	}
}

// =============================================================================
// CONTROL TESTS
// =============================================================================

func TestRenderModeStrip(t *testing.T) {
	on := RenderModeStrip(testTheme(), true)
	off := RenderModeStrip(testTheme(), false)

	if !strings.Contains(on, "[■]") || strings.Contains(off, "[■]") {
		t.Errorf("toggle box wrong: on=%q off=%q", on, off)
	}
	for _, s := range []string{on, off} {
		if !strings.Contains(s, TacticalLabel) || !strings.Contains(s, ChannelLabel) {
			t.Errorf("strip missing labels: %q", s)
		}
	}
}

func TestRenderInputRow(t *testing.T) {
	row := RenderInputRow(testTheme(), "ENTER MESSAGE TO SQUAD...", true, false, 80)
	if !strings.Contains(row, TransmitLabel) {
		t.Error("missing transmit button")
	}
	for _, line := range strings.Split(row, "\n") {
		if lipgloss.Width(line) > 80 {
			t.Errorf("line too wide (%d): %q", lipgloss.Width(line), line)
		}
	}
}

func lineContaining(s, sub string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, sub) {
			return line
		}
	}
	return ""
}

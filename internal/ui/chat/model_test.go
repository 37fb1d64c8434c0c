// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/components"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeConversation records submissions and appends them like the store.
type fakeConversation struct {
	mu        sync.Mutex
	msgs      []model.Message
	sending   bool
	submitted []string
	tactical  []bool
}

func (f *fakeConversation) Messages() []model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.CloneMessages(f.msgs)
}

func (f *fakeConversation) Sending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sending
}

func (f *fakeConversation) SubmitUserMessage(_ context.Context, raw string, tactical bool) (model.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, raw)
	f.tactical = append(f.tactical, tactical)
	msg := model.NewMessage(model.SenderUser, "ECHO-1", raw, tactical, t0)
	f.msgs = append(f.msgs, msg)
	return msg, true
}

func (f *fakeConversation) Subscribe(func(model.Message)) func() { return func() {} }

type fakeFeed struct {
	reports []model.IntelReport
}

func (f *fakeFeed) Reports() []model.IntelReport { return f.reports }
func (f *fakeFeed) Subscribe(func(model.IntelReport)) func() { return func() {} }

func newConsole(t *testing.T, conv *fakeConversation, feed *fakeFeed, width int) Model {
	t.Helper()
	m := New(context.Background(), conv, feed, Config{
		Callsign: "ECHO-1",
		Position: model.Position{Lat: 34.0522, Lng: -118.2437},
		Theme:    "mono",
		Tactical: true,
	})
	return update(t, m, tea.WindowSizeMsg{Width: width, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// collect runs cmd and flattens batches. Commands that sleep (tea.Tick) are
// never produced on the paths exercised here.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSubmit(msgs []tea.Msg) (SubmitResultMsg, bool) {
	for _, msg := range msgs {
		if r, ok := msg.(SubmitResultMsg); ok {
			return r, true
		}
	}
	return SubmitResultMsg{}, false
}

// =============================================================================
// INPUT
// =============================================================================

func TestNew_Defaults(t *testing.T) {
	m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)

	assert.True(t, m.Tactical())
	assert.False(t, m.Transmitting())
	assert.False(t, m.CanTransmit())
	assert.Empty(t, m.InputValue())
}

func TestToggleTactical(t *testing.T) {
	m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.Tactical())
	assert.Contains(t, m.View(), "[ ] "+components.TacticalLabel)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.Tactical())
	assert.Contains(t, m.View(), "[■] "+components.TacticalLabel)
}

func TestTransmit_BlankDoesNothing(t *testing.T) {
	conv := &fakeConversation{}
	m := newConsole(t, conv, &fakeFeed{}, 140)
	m = typeText(t, m, "   ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).Transmitting())
	assert.Empty(t, conv.submitted)
}

func TestTransmit_SubmitsWithMode(t *testing.T) {
	conv := &fakeConversation{}
	m := newConsole(t, conv, &fakeFeed{}, 140)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = typeText(t, m, "radio check")
	require.True(t, m.CanTransmit())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.True(t, m.Transmitting())
	assert.False(t, m.CanTransmit(), "Enter must be disabled while transmitting")
	assert.Contains(t, m.View(), components.TransmittingText)

	result, ok := findSubmit(collect(cmd))
	require.True(t, ok)
	assert.True(t, result.Accepted)
	assert.Equal(t, []string{"radio check"}, conv.submitted)
	assert.Equal(t, []bool{false}, conv.tactical)

	m = update(t, m, result)
	assert.False(t, m.Transmitting())
	assert.Empty(t, m.InputValue())
	assert.NotContains(t, m.View(), components.TransmittingText)
	assert.Contains(t, m.View(), "radio check")
}

func TestTransmit_SanitizesInput(t *testing.T) {
	conv := &fakeConversation{}
	m := newConsole(t, conv, &fakeFeed{}, 140)
	m.input.SetValue("grid\x007")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := findSubmit(collect(cmd))
	require.True(t, ok)
	assert.Equal(t, []string{"grid7"}, conv.submitted)
}

func TestTransmit_BlockedWhileStoreSending(t *testing.T) {
	conv := &fakeConversation{sending: true}
	m := newConsole(t, conv, &fakeFeed{}, 140)
	m = typeText(t, m, "second")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, conv.submitted)
	assert.Contains(t, m.View(), components.TransmittingText)
}

func TestRejectedSubmissionKeepsInput(t *testing.T) {
	m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)
	m = typeText(t, m, "hold")
	m.transmitting = true

	m = update(t, m, SubmitResultMsg{Accepted: false})
	assert.Equal(t, "hold", m.InputValue())
	assert.False(t, m.Transmitting())
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.QuitMsg{}, cmd(), k)
	}
}

// =============================================================================
// BOUNDARY UPDATES
// =============================================================================

func TestLogUpdated_RereadsStore(t *testing.T) {
	conv := &fakeConversation{}
	m := newConsole(t, conv, &fakeFeed{}, 140)

	hq := model.NewMessage(model.SenderHQ, "OVERLORD", "HOLD POSITION.", true, t0).WithPriority(model.PriorityHigh)
	conv.msgs = append(conv.msgs, hq)
	m = update(t, m, LogUpdatedMsg{Message: hq})

	view := m.View()
	assert.Contains(t, view, "HOLD POSITION.")
	assert.Contains(t, view, "OVERLORD // "+hq.Timestamp)
	assert.Contains(t, view, components.UrgentLabel)
}

func TestLogAutoScrollsToBottom(t *testing.T) {
	conv := &fakeConversation{}
	for i := 0; i < 40; i++ {
		conv.msgs = append(conv.msgs, model.NewMessage(model.SenderSquadMate, "GHOST-2", "CONTACT", true, t0))
	}
	m := newConsole(t, conv, &fakeFeed{}, 140)

	last := model.NewMessage(model.SenderHQ, "OVERLORD", "LAST TRANSMISSION", true, t0)
	conv.msgs = append(conv.msgs, last)
	m = update(t, m, LogUpdatedMsg{Message: last})

	assert.True(t, m.viewport.AtBottom())
	assert.Contains(t, m.View(), "LAST TRANSMISSION")
}

func TestIntelUpdated(t *testing.T) {
	feed := &fakeFeed{}
	m := newConsole(t, &fakeConversation{}, feed, 140)
	assert.Contains(t, m.View(), components.ScanningHint)

	feed.reports = []model.IntelReport{{Timestamp: "10:30:00", Content: "Drone overhead", Source: "SIGINT"}}
	m = update(t, m, IntelUpdatedMsg{Report: feed.reports[0]})

	view := m.View()
	assert.NotContains(t, view, components.ScanningHint)
	assert.Contains(t, view, "Drone overhead")
}

func TestTick_UpdatesClock(t *testing.T) {
	m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)

	next, cmd := m.Update(TickMsg(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.NotNil(t, cmd)
	assert.Contains(t, next.(Model).View(), "2030-01-02 03:04:05 Z")
}

// =============================================================================
// LAYOUT
// =============================================================================

func TestView_BeforeResize(t *testing.T) {
	m := New(context.Background(), &fakeConversation{}, &fakeFeed{}, Config{Theme: "mono"})
	assert.Equal(t, "ESTABLISHING UPLINK...", m.View())
}

func TestView_LayoutModes(t *testing.T) {
	tests := []struct {
		width   int
		mission bool
		squad   bool
	}{
		{70, false, false},
		{100, true, false},
		{150, true, true},
	}
	for _, tc := range tests {
		m := newConsole(t, &fakeConversation{}, &fakeFeed{}, tc.width)
		view := m.View()

		assert.Equal(t, tc.mission, strings.Contains(view, "OPERATIONAL STATUS"), "width %d", tc.width)
		assert.Equal(t, tc.squad, strings.Contains(view, "SQUAD MANIFEST"), "width %d", tc.width)
		assert.Contains(t, view, Placeholder[:10], "width %d", tc.width)
		assert.Contains(t, view, components.ChannelLabel, "width %d", tc.width)
	}
}

func TestView_FitsTerminal(t *testing.T) {
	for _, w := range []int{70, 100, 150} {
		m := newConsole(t, &fakeConversation{}, &fakeFeed{}, w)
		view := m.View()

		lines := strings.Split(view, "\n")
		assert.LessOrEqual(t, len(lines), 40, "width %d: too many lines", w)
	}
}

func TestThemeChanged(t *testing.T) {
	m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)
	m = update(t, m, ThemeChangedMsg{Name: "amber"})
	assert.Equal(t, "amber", m.theme.Palette.Name)
}

// =============================================================================
// CLIPBOARD
// =============================================================================

func TestCopyLog(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	conv := &fakeConversation{msgs: []model.Message{
		model.NewMessage(model.SenderHQ, "OVERLORD", "ESTABLISH COMMS.", true, t0),
		model.NewMessage(model.SenderUser, "ECHO-1", "COMMS UP.", true, t0),
	}}
	m := newConsole(t, conv, &fakeFeed{}, 140)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	res := msgs[0].(CopyResultMsg)
	assert.NoError(t, res.Err)
	assert.Equal(t, 2, res.Lines)
	assert.Equal(t,
		"[2025-06-01 12:00:00 Z] OVERLORD: ESTABLISH COMMS.\n[2025-06-01 12:00:00 Z] ECHO-1: COMMS UP.",
		copied)

	m = update(t, m, res)
	assert.Contains(t, m.View(), CopiedNotice)
}

func TestCopyLog_Failure(t *testing.T) {
	m := newConsole(t, &fakeConversation{}, &fakeFeed{}, 140)
	m = update(t, m, CopyResultMsg{Err: errors.New("no clipboard utility")})
	assert.Contains(t, m.View(), CopyFailedNotice)

	m = typeText(t, m, "x")
	assert.NotContains(t, m.View(), CopyFailedNotice)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/components"
	"github.com/jeranaias/tacnet-tui/internal/ui/styles"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

// =============================================================================
// RENDERING BOUNDARY
// =============================================================================

// Conversation is the part of conversation.Store the console uses:
// snapshot reads, the in-flight flag, and the one write it is allowed.
type Conversation interface {
	Messages() []model.Message
	Sending() bool
	SubmitUserMessage(ctx context.Context, rawText string, tactical bool) (model.Message, bool)
	Subscribe(fn func(model.Message)) func()
}

// IntelSource is the part of intel.Feed the console uses.
type IntelSource interface {
	Reports() []model.IntelReport
	Subscribe(fn func(model.IntelReport)) func()
}

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// Placeholder is shown in the empty input field.
	Placeholder = "ENTER MESSAGE TO SQUAD..."

	// MaxInputLength caps a single transmission.
	MaxInputLength = 500

	// CopiedNotice and CopyFailedNotice flash in the help row after Ctrl+Y.
	CopiedNotice     = "LOG COPIED TO CLIPBOARD"
	CopyFailedNotice = "CLIPBOARD UNAVAILABLE"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// =============================================================================
// MODEL
// =============================================================================

// Config holds the console settings taken from the application config.
type Config struct {
	Callsign string         // operator callsign for the squad manifest
	Position model.Position // displayed coordinates
	Theme    string         // palette name
	Tactical bool           // initial Tactical Brevity Mode
	Uplink   string         // label for the active model, shown in the header
}

// Model is the bubbletea model for the radio console.
type Model struct {
	ctx   context.Context
	conv  Conversation
	intel IntelSource
	cfg   Config

	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	header  *components.Header
	mission *components.MissionPanel
	squad   *components.SquadPanel

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	messages []model.Message
	reports  []model.IntelReport

	tactical     bool
	transmitting bool
	notice       string

	width  int
	height int
	ready  bool
}

// New creates the console. ctx bounds transmissions started from the UI.
func New(ctx context.Context, conv Conversation, feed IntelSource, cfg Config) Model {
	theme := styles.NewTheme(cfg.Theme)

	in := textinput.New()
	in.Placeholder = Placeholder
	in.Prompt = "> "
	in.CharLimit = MaxInputLength
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(styles.UplinkSpinner))

	m := Model{
		ctx:      ctx,
		conv:     conv,
		intel:    feed,
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		header:   components.NewHeader(theme),
		mission:  components.NewMissionPanel(theme, cfg.Position),
		squad:    components.NewSquadPanel(theme, cfg.Callsign),
		viewport: viewport.New(0, 0),
		input:    in,
		spinner:  sp,
		tactical: cfg.Tactical,
	}
	m.applyTheme(theme)
	m.header.SetUplink(cfg.Uplink)
	m.messages = conv.Messages()
	m.reports = feed.Reports()
	m.mission.SetReports(m.reports)
	return m
}

// Tactical reports whether Tactical Brevity Mode is on.
func (m Model) Tactical() bool { return m.tactical }

// Transmitting reports whether a transmission started here is in flight.
func (m Model) Transmitting() bool { return m.transmitting }

// InputValue returns the current input text.
func (m Model) InputValue() string { return m.input.Value() }

// Init starts the cursor blink and the mission clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Bind forwards store and feed appends into p. Call the returned func once
// p.Run has returned.
func Bind(p *tea.Program, conv Conversation, feed IntelSource) func() {
	unsubLog := conv.Subscribe(func(msg model.Message) {
		p.Send(LogUpdatedMsg{Message: msg})
	})
	unsubIntel := feed.Subscribe(func(r model.IntelReport) {
		p.Send(IntelUpdatedMsg{Report: r})
	})
	return func() {
		unsubLog()
		unsubIntel()
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.header.SetTime(time.Time(msg))
		return m, tick()

	case LogUpdatedMsg:
		m.refreshLog()
		return m, nil

	case IntelUpdatedMsg:
		m.reports = m.intel.Reports()
		m.mission.SetReports(m.reports)
		return m, nil

	case SubmitResultMsg:
		m.transmitting = false
		if msg.Accepted {
			m.input.Reset()
		}
		m.refreshLog()
		return m, nil

	case ThemeChangedMsg:
		m.applyTheme(styles.NewTheme(msg.Name))
		m.layout()
		return m, nil

	case CopyResultMsg:
		if msg.Err != nil {
			m.notice = CopyFailedNotice
		} else {
			m.notice = CopiedNotice
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleTactical):
		m.tactical = !m.tactical
		return m, nil

	case key.Matches(msg, m.keys.Transmit):
		if !m.CanTransmit() {
			return m, nil
		}
		m.transmitting = true
		text := util.SanitizeInput(m.input.Value())
		return m, tea.Batch(m.transmit(text, m.tactical), m.spinner.Tick)

	case key.Matches(msg, m.keys.CopyLog):
		return m, copyLog(m.messages)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// CanTransmit reports whether Enter would send: nothing in flight and the
// input is not blank.
func (m Model) CanTransmit() bool {
	return !m.busy() && strings.TrimSpace(m.input.Value()) != ""
}

func (m Model) busy() bool {
	return m.transmitting || m.conv.Sending()
}

// transmit runs the submission off the event loop. The store may block on
// augmentation.
func (m Model) transmit(text string, tactical bool) tea.Cmd {
	ctx, conv := m.ctx, m.conv
	return func() tea.Msg {
		msg, ok := conv.SubmitUserMessage(ctx, text, tactical)
		return SubmitResultMsg{Message: msg, Accepted: ok}
	}
}

func copyLog(msgs []model.Message) tea.Cmd {
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		lines[i] = msg.TranscriptLine()
	}
	return func() tea.Msg {
		err := writeClipboard(strings.Join(lines, "\n"))
		return CopyResultMsg{Lines: len(lines), Err: err}
	}
}

// refreshLog re-reads the store snapshot and keeps the log pinned to the
// newest transmission.
func (m *Model) refreshLog() {
	m.messages = m.conv.Messages()
	m.renderLog()
	m.viewport.GotoBottom()
}

func (m *Model) applyTheme(theme *styles.Theme) {
	m.theme = theme
	m.header.SetTheme(theme)
	m.mission.SetTheme(theme)
	m.squad.SetTheme(theme)

	m.input.PromptStyle = theme.InputText
	m.input.TextStyle = theme.InputText
	m.input.PlaceholderStyle = theme.Placeholder
	m.spinner.Style = theme.TransmitSpinner
	m.help.Styles.ShortKey = theme.Channel
	m.help.Styles.ShortDesc = theme.Help
	m.help.Styles.FullKey = theme.Channel
	m.help.Styles.FullDesc = theme.Help
}

// layout sizes every region from the terminal dimensions. Fixed regions
// are measured by rendering them, so style changes cannot desync the math.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.theme.SetSize(m.width, m.height)
	mode := m.theme.GetLayoutMode()

	m.header.SetWidth(m.width)
	logWidth := m.width
	if mode.ShowMissionPanel() {
		logWidth -= styles.MissionPanelWidth + 1
	}
	if mode.ShowSquadPanel() {
		logWidth -= styles.SquadPanelWidth + 1
	}
	logWidth = max(logWidth, 20)

	button := lipgloss.Width(components.RenderTransmitButton(m.theme, true))
	boxInner := logWidth - m.theme.Footer.GetHorizontalFrameSize() - button - 1 - m.theme.Input.GetHorizontalFrameSize()
	m.input.Width = max(boxInner-lipgloss.Width(m.input.Prompt)-1, 5)
	m.help.Width = logWidth - m.theme.Footer.GetHorizontalFrameSize()

	bodyHeight := m.height - lipgloss.Height(m.renderHeader())
	m.mission.SetSize(styles.MissionPanelWidth, bodyHeight)
	m.squad.SetWidth(styles.SquadPanelWidth)

	// one line is reserved for the transmitting indicator
	vpHeight := bodyHeight - lipgloss.Height(m.renderFooter(logWidth)) - 1
	m.viewport.Width = logWidth
	m.viewport.Height = max(vpHeight, 1)
	m.renderLog()
	m.viewport.GotoBottom()
}

func (m *Model) renderLog() {
	if m.viewport.Width <= 0 {
		return
	}
	inner := m.viewport.Width - m.theme.Log.GetHorizontalFrameSize()
	m.viewport.SetContent(m.theme.Log.Render(components.RenderLog(m.theme, m.messages, inner)))
}

// Package console is the chat-style command console: free text and slash
// commands go in, command results and tab events scroll by.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/cli/styles"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
)

const (
	defaultMaxLines = 500
	chromeHeight    = 6
)

// Dispatcher runs named commands. *command.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, name command.Name, args json.RawMessage) (any, error)
}

// Config configures a console Model.
type Config struct {
	Theme      *styles.Theme
	Dispatcher Dispatcher
	// Events feeds the log pane; nil disables it.
	Events   <-chan event.Event
	MaxLines int
	// Now stamps log lines; defaults to time.Now.
	Now func() time.Time
}

type (
	eventMsg      struct{ ev event.Event }
	eventsDoneMsg struct{}
	resultMsg     struct {
		name  command.Name
		input string
		value any
		err   error
	}
	tabsMsg struct{ tabs []entity.TabSnapshot }
)

// Model is the bubbletea model of the console.
type Model struct {
	ctx        context.Context
	theme      *styles.Theme
	dispatcher Dispatcher
	events     <-chan event.Event
	now        func() time.Time

	input    textinput.Model
	log      viewport.Model
	tabBar   styles.TabBar
	help     help.Model
	keys     keyMap
	lines    []string
	maxLines int
	pending  int
	width    int
	ready    bool
}

// New creates a console model. ctx carries the logger and bounds every
// dispatched command.
func New(ctx context.Context, cfg Config) Model {
	theme := cfg.Theme
	if theme == nil {
		theme = styles.NewTheme(nil)
	}
	maxLines := cfg.MaxLines
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	input := styles.NewCommandInput(theme)
	input.Focus()

	return Model{
		ctx:        ctx,
		theme:      theme,
		dispatcher: cfg.Dispatcher,
		events:     cfg.Events,
		now:        now,
		input:      input,
		log:        viewport.New(0, 0),
		tabBar:     styles.NewTabBar(theme),
		help:       help.New(),
		keys:       defaultKeyMap(),
		maxLines:   maxLines,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitEvent(), m.refreshTabs())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.tabBar.Width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		m.log.Width = msg.Width
		m.log.Height = max(msg.Height-chromeHeight, 1)
		m.ready = true
		m.syncLog()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ScrollUp):
			m.log.PageUp()
			return m, nil
		case key.Matches(msg, m.keys.ScrollDn):
			m.log.PageDown()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}

	case eventMsg:
		if line, sev := describeEvent(msg.ev); line != "" {
			m.appendLine(m.styleFor(sev).Render(line))
		}
		return m, tea.Batch(m.waitEvent(), m.refreshTabs())

	case eventsDoneMsg:
		m.events = nil
		return m, nil

	case resultMsg:
		m.pending--
		if msg.err != nil {
			m.appendLine(m.theme.ErrorStyle.Render(fmt.Sprintf("%s %s: %v", styles.IconX, msg.name, msg.err)))
		} else {
			m.appendLine(m.theme.Normal.Render(describeResult(msg.name, msg.value)))
		}
		return m, m.refreshTabs()

	case tabsMsg:
		m.tabBar.Tabs = msg.tabs
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	req, err := Parse(line)
	if err == errEmptyInput {
		return m, nil
	}
	m.appendLine(m.theme.Highlight.Render("›") + " " + m.theme.Normal.Render(line))
	if err != nil {
		m.appendLine(m.theme.ErrorStyle.Render(err.Error()))
		return m, nil
	}

	switch {
	case req.Quit:
		return m, tea.Quit
	case req.Help:
		m.appendLine(m.theme.Subtle.Render(helpText))
		return m, nil
	}

	if req.TabIndex > 0 {
		if req.TabIndex > len(m.tabBar.Tabs) {
			m.appendLine(m.theme.ErrorStyle.Render(fmt.Sprintf("no tab %d", req.TabIndex)))
			return m, nil
		}
		req.Args = map[string]any{"tab_id": m.tabBar.Tabs[req.TabIndex-1].ID}
	}

	m.pending++
	return m, m.run(req, line)
}

func (m Model) run(req Request, input string) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		args, err := req.Arguments()
		if err != nil {
			return resultMsg{name: req.Name, input: input, err: err}
		}
		value, err := d.Dispatch(ctx, req.Name, args)
		return resultMsg{name: req.Name, input: input, value: value, err: err}
	}
}

func (m Model) waitEvent() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsDoneMsg{}
		}
		return eventMsg{ev: ev}
	}
}

func (m Model) refreshTabs() tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		value, err := d.Dispatch(ctx, command.ListTabs, nil)
		if err != nil {
			return nil
		}
		res, ok := value.(command.TabsResult)
		if !ok {
			return nil
		}
		return tabsMsg{tabs: res.Tabs}
	}
}

func (m *Model) appendLine(line string) {
	stamp := m.theme.Subtle.Render(m.now().Format("15:04:05"))
	for i, part := range strings.Split(line, "\n") {
		if i == 0 {
			m.lines = append(m.lines, stamp+" "+part)
			continue
		}
		m.lines = append(m.lines, strings.Repeat(" ", lipgloss.Width(stamp)+1)+part)
	}
	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = append(m.lines[:0:0], m.lines[over:]...)
	}
	m.syncLog()
}

func (m *Model) syncLog() {
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

func (m Model) styleFor(sev severity) lipgloss.Style {
	switch sev {
	case sevOK:
		return m.theme.SuccessStyle
	case sevWarn:
		return m.theme.WarningStyle
	case sevError:
		return m.theme.ErrorStyle
	default:
		return m.theme.Subtle
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting console…"
	}
	status := m.help.View(m.keys)
	if m.pending > 0 {
		status = m.theme.Highlight.Render(fmt.Sprintf("%s %d running", styles.IconSpinner, m.pending)) + "  " + status
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabBar.View(),
		m.log.View(),
		m.theme.InputBox(m.input.View(), m.input.Focused()),
		m.theme.StatusBar.Render(status),
	)
}

// Lines returns the log lines, oldest first.
func (m Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

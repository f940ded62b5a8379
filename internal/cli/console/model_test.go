package console

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
)

type call struct {
	name command.Name
	args string
}

type fakeDispatcher struct {
	calls   []call
	results map[command.Name]any
	errs    map[command.Name]error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, name command.Name, args json.RawMessage) (any, error) {
	f.calls = append(f.calls, call{name: name, args: string(args)})
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.results[name], nil
}

func (f *fakeDispatcher) called(name command.Name) []call {
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func newTestModel(t *testing.T, d *fakeDispatcher, events <-chan event.Event) Model {
	t.Helper()
	m := New(context.Background(), Config{
		Dispatcher: d,
		Events:     events,
		MaxLines:   50,
		Now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model)
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func feed(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	next, follow := m.Update(cmd())
	return next.(Model), follow
}

func joined(m Model) string {
	return strings.Join(m.Lines(), "\n")
}

func TestModel_FreeTextNavigates(t *testing.T) {
	d := &fakeDispatcher{results: map[command.Name]any{
		command.NavigateInput: command.NavigateResult{TabID: "tab-1", URL: "https://example.com", Resolution: "url"},
		command.ListTabs: command.TabsResult{Tabs: []entity.TabSnapshot{
			{ID: "tab-1", URL: "https://example.com", Title: "Example", Active: true},
		}},
	}}
	m := newTestModel(t, d, nil)

	m, cmd := typeLine(t, m, "example.com")
	assert.Equal(t, 1, m.pending)
	assert.Contains(t, joined(m), "› example.com")

	m, refresh := feed(t, m, cmd)
	assert.Equal(t, 0, m.pending)
	assert.Contains(t, joined(m), "tab-1 → https://example.com (url)")

	m, _ = feed(t, m, refresh)
	require.Len(t, m.tabBar.Tabs, 1)
	assert.Contains(t, m.View(), "Example")

	nav := d.called(command.NavigateInput)
	require.Len(t, nav, 1)
	assert.JSONEq(t, `{"input":"example.com"}`, nav[0].args)
}

func TestModel_TabNumberResolvesAgainstTabBar(t *testing.T) {
	d := &fakeDispatcher{results: map[command.Name]any{}}
	m := newTestModel(t, d, nil)
	m.tabBar.Tabs = []entity.TabSnapshot{{ID: "tab-a"}, {ID: "tab-b"}}

	m, cmd := typeLine(t, m, "/tab 2")
	_, _ = feed(t, m, cmd)

	sw := d.called(command.SwitchTab)
	require.Len(t, sw, 1)
	assert.JSONEq(t, `{"tab_id":"tab-b"}`, sw[0].args)

	m, cmd = typeLine(t, m, "/tab 5")
	assert.Nil(t, cmd)
	assert.Contains(t, joined(m), "no tab 5")
}

func TestModel_CommandErrorIsShown(t *testing.T) {
	d := &fakeDispatcher{errs: map[command.Name]error{command.CloseTab: errors.New("no active tab")}}
	m := newTestModel(t, d, nil)

	m, cmd := typeLine(t, m, "/close")
	m, _ = feed(t, m, cmd)
	assert.Contains(t, joined(m), "close_tab: no active tab")
}

func TestModel_ParseErrorAndHelp(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, nil)

	m, cmd := typeLine(t, m, "/open")
	assert.Nil(t, cmd)
	assert.Contains(t, joined(m), "/open needs an address")

	m, cmd = typeLine(t, m, "/help")
	assert.Nil(t, cmd)
	assert.Contains(t, joined(m), "/new [url]")
}

func TestModel_QuitCommand(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, nil)
	_, cmd := typeLine(t, m, "/quit")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_EventsAreLogged(t *testing.T) {
	events := make(chan event.Event, 4)
	d := &fakeDispatcher{results: map[command.Name]any{command.ListTabs: command.TabsResult{}}}
	m := newTestModel(t, d, events)

	events <- event.LoadingFailed{TabID: "tab-1", URL: "https://bad.example", Err: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	m, _ = feed(t, m, m.waitEvent())
	assert.Contains(t, joined(m), "tab-1 failed https://bad.example: net::ERR_NAME_NOT_RESOLVED")

	events <- event.BoundsApplied{TabID: "tab-1"}
	before := len(m.Lines())
	m, _ = feed(t, m, m.waitEvent())
	assert.Len(t, m.Lines(), before)

	close(events)
	m, _ = feed(t, m, m.waitEvent())
	assert.Nil(t, m.events)
	assert.Nil(t, m.waitEvent())
}

func TestModel_LogIsCapped(t *testing.T) {
	m := newTestModel(t, &fakeDispatcher{}, nil)
	for i := 0; i < 80; i++ {
		m.appendLine("line")
	}
	assert.Len(t, m.Lines(), 50)
}

func TestDescribeEvent(t *testing.T) {
	line, sev := describeEvent(event.CertificateError{TabID: "tab-1", Host: "self-signed.example", Reason: "authority invalid", Accepted: true})
	assert.Equal(t, "tab-1 certificate error on self-signed.example (authority invalid), accepted", line)
	assert.Equal(t, sevWarn, sev)

	line, sev = describeEvent(event.LoadingFinished{TabID: "tab-2", URL: "https://ok.example"})
	assert.Equal(t, "tab-2 loaded https://ok.example", line)
	assert.Equal(t, sevOK, sev)

	line, _ = describeEvent(event.Navigation{TabID: "tab-2", URL: "https://ok.example/#a", InPage: true})
	assert.Equal(t, "tab-2 in-page https://ok.example/#a", line)
}

func TestDescribeResult(t *testing.T) {
	assert.Equal(t, "reload ok", describeResult(command.Reload, command.OKResult{OK: true}))
	assert.Equal(t, "no tabs", describeResult(command.ListTabs, command.TabsResult{}))
	assert.Equal(t, "42", describeResult(command.ExecuteScript, command.ScriptResult{Result: json.RawMessage("42")}))
	assert.Equal(t, `{"tab_id":"tab-1"}`, describeResult(command.CreateTab, command.TabResult{TabID: "tab-1"}))

	list := describeResult(command.ListTabs, command.TabsResult{Tabs: []entity.TabSnapshot{
		{ID: "tab-1", URL: "https://a.example", Title: "A"},
		{ID: "tab-2", URL: "https://b.example", Title: "B", Active: true},
	}})
	assert.Equal(t, "  1 tab-1 https://a.example \"A\"\n* 2 tab-2 https://b.example \"B\"", list)
}

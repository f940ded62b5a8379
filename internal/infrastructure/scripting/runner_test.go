package scripting_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/egdesk/taehwa/internal/application/command"
	portmocks "github.com/egdesk/taehwa/internal/application/port/mocks"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/infrastructure/scripting"
	"github.com/egdesk/taehwa/internal/logging"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func newRunner(t *testing.T, opts scripting.Options) (*scripting.Runner, *portmocks.MockTabController) {
	t.Helper()
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})
	return scripting.NewRunner(d, opts), tabs
}

func TestRun_CommandsAndCompletionValue(t *testing.T) {
	runner, tabs := newRunner(t, scripting.Options{})
	tabs.EXPECT().CreateTab(mock.Anything, "https://example.com").Return(entity.TabID("tab-1"), nil)
	tabs.EXPECT().LoadURL(mock.Anything, "https://blog.example.com", entity.TabID("tab-1")).Return(entity.TabID("tab-1"), nil)

	res, err := runner.Run(testContext(), "create.js", `
		const id = tabs.createTab({url: "https://example.com"}).tab_id;
		tabs.load_url({url: "https://blog.example.com", tab_id: id});
		id;
	`)
	require.NoError(t, err)
	assert.Equal(t, "tab-1", res.Value)
	assert.Equal(t, 2, res.Commands)
}

func TestRun_ScriptResultIsPlainJS(t *testing.T) {
	runner, tabs := newRunner(t, scripting.Options{})
	tabs.EXPECT().ExecuteScript(mock.Anything, "document.title", entity.TabID("")).
		Return(json.RawMessage(`{"n":2,"title":"Home"}`), nil)

	res, err := runner.Run(testContext(), "exec.js", `
		const r = tabs.executeScript({code: "document.title"}).result;
		r.title + ":" + (r.n + 1);
	`)
	require.NoError(t, err)
	assert.Equal(t, "Home:3", res.Value)
}

func TestRun_CommandErrorsAreCatchable(t *testing.T) {
	runner, _ := newRunner(t, scripting.Options{})

	res, err := runner.Run(testContext(), "catch.js", `
		let msg = "";
		try { tabs.switchTab({}); } catch (e) { msg = e.message; }
		msg;
	`)
	require.NoError(t, err)
	assert.Contains(t, res.Value, "tab_id is required")
}

func TestRun_UncaughtCommandError(t *testing.T) {
	runner, tabs := newRunner(t, scripting.Options{})
	tabs.EXPECT().Reload(mock.Anything, entity.TabID("")).Return(command.ErrUnknownCommand)

	_, err := runner.Run(testContext(), "fail.js", `tabs.reload({});`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, command.ErrUnknownCommand))
}

func TestRun_ConsoleLog(t *testing.T) {
	var out bytes.Buffer
	runner, _ := newRunner(t, scripting.Options{Output: &out})

	_, err := runner.Run(testContext(), "log.js", `console.log("tabs:", 2, {a: [1, "x"]});`)
	require.NoError(t, err)
	assert.Equal(t, "tabs: 2 {\"a\":[1,\"x\"]}\n", out.String())
}

func TestRun_Timeout(t *testing.T) {
	runner, _ := newRunner(t, scripting.Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := runner.Run(testContext(), "spin.js", `while (true) {}`)
	require.ErrorIs(t, err, scripting.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_SleepHonoursDeadline(t *testing.T) {
	runner, _ := newRunner(t, scripting.Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := runner.Run(testContext(), "sleep.js", `sleep(60000); while (true) {}`)
	require.ErrorIs(t, err, scripting.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_SyntaxError(t *testing.T) {
	runner, _ := newRunner(t, scripting.Options{})

	_, err := runner.Run(testContext(), "bad.js", `const = ;`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, scripting.ErrTimeout)
}

func TestRunFile(t *testing.T) {
	runner, tabs := newRunner(t, scripting.Options{})
	tabs.EXPECT().ActiveTabID().Return(entity.TabID("tab-9"))
	tabs.EXPECT().Tabs(mock.Anything).Return([]entity.TabSnapshot{{ID: "tab-9"}})

	path := filepath.Join(t.TempDir(), "list.js")
	require.NoError(t, os.WriteFile(path, []byte(`tabs.listTabs().active`), 0o644))

	res, err := runner.RunFile(testContext(), path)
	require.NoError(t, err)
	assert.Equal(t, "tab-9", res.Value)

	_, err = runner.RunFile(testContext(), filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
}

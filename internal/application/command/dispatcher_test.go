package command_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/application/port"
	portmocks "github.com/egdesk/taehwa/internal/application/port/mocks"
	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/domain/entity"
	repomocks "github.com/egdesk/taehwa/internal/domain/repository/mocks"
	"github.com/egdesk/taehwa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestDispatcher_CreateAndLoad(t *testing.T) {
	ctx := testContext()
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})

	tabs.EXPECT().CreateTab(mock.Anything, "https://a.example").Return(entity.TabID("tab-1"), nil)
	res, err := d.Dispatch(ctx, command.CreateTab, json.RawMessage(`{"url":"https://a.example"}`))
	require.NoError(t, err)
	assert.Equal(t, command.TabResult{TabID: "tab-1"}, res)

	tabs.EXPECT().LoadURL(mock.Anything, "b.example", entity.TabID("")).Return(entity.TabID("tab-1"), nil)
	res, err = d.Dispatch(ctx, command.LoadURL, json.RawMessage(`{"url":"b.example"}`))
	require.NoError(t, err)
	assert.Equal(t, command.TabResult{TabID: "tab-1"}, res)
}

func TestDispatcher_EmptyArgsDecodeAsZero(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})

	tabs.EXPECT().GoBack(mock.Anything, entity.TabID("")).Return(entity.NavResult{Performed: false}, nil)
	res, err := d.Dispatch(testContext(), command.GoBack, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.NavResult{}, res)

	tabs.EXPECT().Reload(mock.Anything, entity.TabID("")).Return(nil)
	res, err = d.Dispatch(testContext(), command.Reload, json.RawMessage("null"))
	require.NoError(t, err)
	assert.Equal(t, command.OKResult{OK: true}, res)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := command.NewDispatcher(command.Deps{Tabs: portmocks.NewMockTabController(t)})
	_, err := d.Dispatch(testContext(), "fly", nil)
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
}

func TestDispatcher_BadArguments(t *testing.T) {
	d := command.NewDispatcher(command.Deps{Tabs: portmocks.NewMockTabController(t)})

	_, err := d.Dispatch(testContext(), command.LoadURL, json.RawMessage(`{"url": 3}`))
	var argErr *command.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, command.LoadURL, argErr.Command)

	_, err = d.Dispatch(testContext(), command.SwitchTab, json.RawMessage(`{}`))
	require.ErrorAs(t, err, &argErr)

	_, err = d.Dispatch(testContext(), command.ExecuteScript, json.RawMessage(`{}`))
	require.ErrorAs(t, err, &argErr)
}

func TestDispatcher_CloseTabDefaultsToActive(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})

	tabs.EXPECT().ActiveTabID().Return(entity.TabID("tab-2")).Once()
	tabs.EXPECT().CloseTab(mock.Anything, entity.TabID("tab-2")).Return(nil)
	res, err := d.Dispatch(testContext(), command.CloseTab, nil)
	require.NoError(t, err)
	assert.Equal(t, command.TabResult{TabID: "tab-2"}, res)

	tabs.EXPECT().ActiveTabID().Return(entity.TabID("")).Once()
	_, err = d.Dispatch(testContext(), command.CloseTab, nil)
	assert.ErrorIs(t, err, port.ErrNoActiveTab)
}

func TestDispatcher_ExecuteScriptPassesErrorsThrough(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})

	scriptErr := errors.New("ReferenceError: foo is not defined")
	tabs.EXPECT().ExecuteScript(mock.Anything, "foo", entity.TabID("")).Return(nil, scriptErr)
	_, err := d.Dispatch(testContext(), command.ExecuteScript, json.RawMessage(`{"code":"foo"}`))
	assert.ErrorIs(t, err, scriptErr)

	tabs.EXPECT().ExecuteScript(mock.Anything, "void 0", entity.TabID("")).Return(nil, nil)
	res, err := d.Dispatch(testContext(), command.ExecuteScript, json.RawMessage(`{"code":"void 0"}`))
	require.NoError(t, err)
	assert.Equal(t, command.ScriptResult{Result: json.RawMessage("null")}, res)
}

func TestDispatcher_ListTabsAndState(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})

	snaps := []entity.TabSnapshot{{ID: "tab-1", Active: true}}
	tabs.EXPECT().Tabs(mock.Anything).Return(snaps)
	tabs.EXPECT().ActiveTabID().Return(entity.TabID("tab-1"))
	res, err := d.Dispatch(testContext(), command.ListTabs, nil)
	require.NoError(t, err)
	assert.Equal(t, command.TabsResult{Tabs: snaps, Active: "tab-1"}, res)

	tabs.EXPECT().NavigationState(mock.Anything, entity.TabID("nope")).Return(entity.DefaultNavigationState())
	res, err = d.Dispatch(testContext(), command.GetNavigationState, json.RawMessage(`{"tab_id":"nope"}`))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultNavigationState(), res)
}

func TestDispatcher_UpdateBounds(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs})

	tabs.EXPECT().UpdateBounds(mock.Anything, &entity.Bounds{X: 1, Y: 2, Width: 300, Height: 200}).Return(nil)
	_, err := d.Dispatch(testContext(), command.UpdateBounds, json.RawMessage(`{"bounds":{"x":1,"y":2,"width":300,"height":200}}`))
	require.NoError(t, err)

	tabs.EXPECT().UpdateBounds(mock.Anything, (*entity.Bounds)(nil)).Return(nil)
	_, err = d.Dispatch(testContext(), command.UpdateBounds, nil)
	require.NoError(t, err)
}

func TestDispatcher_NavigateInputUsesSearch(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	nav := usecase.NewNavigateUseCase(tabs, map[string]string{"g": "https://g.example/?q=%s"}, "")
	d := command.NewDispatcher(command.Deps{Tabs: tabs, Navigate: nav})

	tabs.EXPECT().LoadURL(mock.Anything, "https://g.example/?q=hello", entity.TabID("")).Return(entity.TabID("tab-1"), nil)
	res, err := d.Dispatch(testContext(), command.NavigateInput, json.RawMessage(`{"input":"!g hello"}`))
	require.NoError(t, err)
	assert.Equal(t, command.NavigateResult{TabID: "tab-1", URL: "https://g.example/?q=hello", Resolution: "shortcut"}, res)
}

func TestDispatcher_SettingsOnlyWhenConfigured(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	assert.False(t, command.NewDispatcher(command.Deps{Tabs: tabs}).Has(command.GetSetting))

	repo := repomocks.NewMockSettingsRepository(t)
	d := command.NewDispatcher(command.Deps{Tabs: tabs, Settings: usecase.NewManageSettingsUseCase(repo)})
	require.True(t, d.Has(command.SetSetting))

	repo.EXPECT().Set(mock.Anything, "console.theme", "dark").Return(nil)
	_, err := d.Dispatch(testContext(), command.SetSetting, json.RawMessage(`{"key":"console.theme","value":"dark"}`))
	require.NoError(t, err)

	repo.EXPECT().Get(mock.Anything, "console.theme").Return(&entity.Setting{Key: "console.theme", Value: "dark"}, nil)
	res, err := d.Dispatch(testContext(), command.GetSetting, json.RawMessage(`{"key":"console.theme"}`))
	require.NoError(t, err)
	assert.Equal(t, command.SettingResult{Key: "console.theme", Value: "dark", Found: true}, res)
}

package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/application/port"
	portmocks "github.com/egdesk/taehwa/internal/application/port/mocks"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/infrastructure/mcp"
	"github.com/egdesk/taehwa/internal/logging"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, tabs *portmocks.MockTabController) *sdk.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	ctx = logging.WithContext(ctx, logging.NewFromConfigValues("debug", "console"))

	srv := mcp.NewServer(ctx, command.NewDispatcher(command.Deps{Tabs: tabs}), "test")
	serverT, clientT := sdk.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func text(t *testing.T, res *sdk.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestServer_ListsEveryCommand(t *testing.T) {
	cs := connect(t, portmocks.NewMockTabController(t))

	res, err := cs.ListTools(context.Background(), &sdk.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
	assert.Contains(t, names, string(command.CreateTab))
	assert.Contains(t, names, string(command.ExecuteScript))
	assert.Contains(t, names, string(command.ListTabs))
	assert.NotContains(t, names, string(command.GetSetting))
}

func TestServer_CallTool(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	cs := connect(t, tabs)

	tabs.EXPECT().CreateTab(mock.Anything, "https://a.example").Return(entity.TabID("tab-1"), nil)
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      string(command.CreateTab),
		Arguments: map[string]any{"url": "https://a.example"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"tab_id":"tab-1"}`, text(t, res))
	assert.Equal(t, map[string]any{"tab_id": "tab-1"}, res.StructuredContent)
}

func TestServer_CallToolWithoutArguments(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	cs := connect(t, tabs)

	tabs.EXPECT().Tabs(mock.Anything).Return([]entity.TabSnapshot{{ID: "tab-1", URL: "about:blank"}})
	tabs.EXPECT().ActiveTabID().Return(entity.TabID("tab-1"))

	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: string(command.ListTabs)})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var out command.TabsResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, entity.TabID("tab-1"), out.Active)
	require.Len(t, out.Tabs, 1)
	assert.Equal(t, "about:blank", out.Tabs[0].URL)
}

func TestServer_CommandErrorIsToolError(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	cs := connect(t, tabs)

	tabs.EXPECT().ActiveTabID().Return(entity.TabID(""))
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: string(command.CloseTab)})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), port.ErrNoActiveTab.Error())
}

func TestServer_RunStopsWithContext(t *testing.T) {
	srv := mcp.NewServer(context.Background(), command.NewDispatcher(command.Deps{Tabs: portmocks.NewMockTabController(t)}), "")
	serverT, _ := sdk.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, serverT) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

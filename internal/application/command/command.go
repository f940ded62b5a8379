// Package command exposes the tab manager as named commands with JSON
// arguments. The MCP server, the scripting runtime and the console all
// dispatch through it.
package command

import (
	"encoding/json"

	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/url"
)

// Name identifies a command.
type Name string

const (
	CreateTab          Name = "create_tab"
	SwitchTab          Name = "switch_tab"
	CloseTab           Name = "close_tab"
	LoadURL            Name = "load_url"
	GoBack             Name = "go_back"
	GoForward          Name = "go_forward"
	Reload             Name = "reload"
	Stop               Name = "stop"
	ExecuteScript      Name = "execute_script"
	GetNavigationState Name = "get_navigation_state"
	ListTabs           Name = "list_tabs"
	UpdateBounds       Name = "update_bounds"
	WaitForElement     Name = "wait_for_element"
	NavigateInput      Name = "navigate_input"
	GetSetting         Name = "get_setting"
	SetSetting         Name = "set_setting"
)

// CreateTabArgs are the arguments of create_tab.
type CreateTabArgs struct {
	URL string `json:"url,omitempty" jsonschema:"description=Initial address. Loaded in the background; blank opens about:blank"`
}

// TabArgs target a single tab. An empty id means the active tab.
type TabArgs struct {
	TabID entity.TabID `json:"tab_id,omitempty" jsonschema:"description=Tab id; defaults to the active tab"`
}

// SwitchTabArgs are the arguments of switch_tab.
type SwitchTabArgs struct {
	TabID entity.TabID `json:"tab_id" jsonschema:"description=Tab to attach to the window"`
}

// LoadURLArgs are the arguments of load_url.
type LoadURLArgs struct {
	URL   string       `json:"url" jsonschema:"description=Address to load; normalized before loading"`
	TabID entity.TabID `json:"tab_id,omitempty" jsonschema:"description=Tab id; defaults to the active tab and creates one if none exists"`
}

// ExecuteScriptArgs are the arguments of execute_script.
type ExecuteScriptArgs struct {
	Code  string       `json:"code" jsonschema:"description=JavaScript evaluated in the page; the completion value is returned as JSON"`
	TabID entity.TabID `json:"tab_id,omitempty" jsonschema:"description=Tab id; defaults to the active tab"`
}

// UpdateBoundsArgs are the arguments of update_bounds.
type UpdateBoundsArgs struct {
	Bounds *entity.Bounds `json:"bounds,omitempty" jsonschema:"description=Measured surface rectangle; omit to estimate from the window size"`
}

// WaitForElementArgs are the arguments of wait_for_element.
type WaitForElementArgs struct {
	Selector  string       `json:"selector" jsonschema:"description=CSS selector to wait for"`
	TimeoutMS int          `json:"timeout_ms,omitempty" jsonschema:"description=Maximum wait in milliseconds (default 10000),minimum=0"`
	TabID     entity.TabID `json:"tab_id,omitempty" jsonschema:"description=Tab id; defaults to the active tab"`
}

// NavigateInputArgs are the arguments of navigate_input.
type NavigateInputArgs struct {
	Input string       `json:"input" jsonschema:"description=Free text: an address or a search query or a !bang shortcut"`
	TabID entity.TabID `json:"tab_id,omitempty" jsonschema:"description=Tab id; defaults to the active tab"`
}

// GetSettingArgs are the arguments of get_setting.
type GetSettingArgs struct {
	Key string `json:"key" jsonschema:"description=Dotted setting key"`
}

// SetSettingArgs are the arguments of set_setting.
type SetSettingArgs struct {
	Key   string `json:"key" jsonschema:"description=Dotted setting key"`
	Value string `json:"value" jsonschema:"description=Value to store"`
}

// NoArgs is used by commands without arguments.
type NoArgs struct{}

// TabResult is returned by commands that produce a tab id.
type TabResult struct {
	TabID entity.TabID `json:"tab_id"`
}

// OKResult acknowledges commands without a payload.
type OKResult struct {
	OK bool `json:"ok"`
}

// ScriptResult wraps a script's completion value.
type ScriptResult struct {
	Result json.RawMessage `json:"result"`
}

// TabsResult lists open tabs.
type TabsResult struct {
	Tabs   []entity.TabSnapshot `json:"tabs"`
	Active entity.TabID         `json:"active,omitempty"`
}

// WaitResult reports a successful wait.
type WaitResult struct {
	Attempts  int   `json:"attempts"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

// NavigateResult reports what navigate_input loaded.
type NavigateResult struct {
	TabID      entity.TabID `json:"tab_id"`
	URL        string       `json:"url"`
	Resolution string       `json:"resolution"`
}

// SettingResult is returned by get_setting.
type SettingResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

func resolutionName(r url.Resolution) string {
	switch r {
	case url.ResolvedURL:
		return "url"
	case url.ResolvedShortcut:
		return "shortcut"
	case url.ResolvedSearch:
		return "search"
	default:
		return "empty"
	}
}

func waitResult(out *usecase.WaitOutput) WaitResult {
	return WaitResult{Attempts: out.Attempts, ElapsedMS: out.Elapsed.Milliseconds()}
}

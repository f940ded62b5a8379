package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/logging"
)

// ErrUnknownCommand is returned for names with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// ArgumentError reports arguments that could not be decoded or are missing
// a required field.
type ArgumentError struct {
	Command Name
	Err     error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid arguments: %v", e.Command, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

type handlerFunc func(ctx context.Context, raw json.RawMessage) (any, error)

// Dispatcher routes named commands to the tab manager and use cases.
type Dispatcher struct {
	tabs     port.TabController
	navigate *usecase.NavigateUseCase
	wait     *usecase.WaitForElementUseCase
	settings *usecase.ManageSettingsUseCase

	handlers map[Name]handlerFunc
}

// Deps are the collaborators of a Dispatcher. Settings may be nil, in
// which case the setting commands are not registered.
type Deps struct {
	Tabs     port.TabController
	Navigate *usecase.NavigateUseCase
	Wait     *usecase.WaitForElementUseCase
	Settings *usecase.ManageSettingsUseCase
}

// NewDispatcher creates a dispatcher. Navigate and Wait default to use cases
// built on Tabs with no search shortcuts.
func NewDispatcher(deps Deps) *Dispatcher {
	d := &Dispatcher{
		tabs:     deps.Tabs,
		navigate: deps.Navigate,
		wait:     deps.Wait,
		settings: deps.Settings,
	}
	if d.navigate == nil {
		d.navigate = usecase.NewNavigateUseCase(deps.Tabs, nil, "")
	}
	if d.wait == nil {
		d.wait = usecase.NewWaitForElementUseCase(deps.Tabs, 0)
	}
	d.register()
	return d
}

// Names returns the registered command names, sorted.
func (d *Dispatcher) Names() []Name {
	names := make([]Name, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Has reports whether name is registered.
func (d *Dispatcher) Has(name Name) bool {
	_, ok := d.handlers[name]
	return ok
}

// Dispatch decodes args and runs the command. Empty args decode as {}.
func (d *Dispatcher) Dispatch(ctx context.Context, name Name, args json.RawMessage) (any, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	result, err := h(ctx, args)
	if err != nil {
		log.Debug().Err(err).Str("command", string(name)).Dur("took", time.Since(start)).Msg("command failed")
		return nil, err
	}
	log.Debug().Str("command", string(name)).Dur("took", time.Since(start)).Msg("command done")
	return result, nil
}

func (d *Dispatcher) register() {
	d.handlers = map[Name]handlerFunc{
		CreateTab: typed(CreateTab, func(ctx context.Context, a CreateTabArgs) (any, error) {
			id, err := d.tabs.CreateTab(ctx, a.URL)
			if err != nil {
				return nil, err
			}
			return TabResult{TabID: id}, nil
		}),
		SwitchTab: typed(SwitchTab, func(ctx context.Context, a SwitchTabArgs) (any, error) {
			if a.TabID == "" {
				return nil, &ArgumentError{Command: SwitchTab, Err: errors.New("tab_id is required")}
			}
			return d.tabs.SwitchTab(ctx, a.TabID)
		}),
		CloseTab: typed(CloseTab, func(ctx context.Context, a TabArgs) (any, error) {
			id := a.TabID
			if id == "" {
				id = d.tabs.ActiveTabID()
			}
			if id == "" {
				return nil, port.ErrNoActiveTab
			}
			if err := d.tabs.CloseTab(ctx, id); err != nil {
				return nil, err
			}
			return TabResult{TabID: id}, nil
		}),
		LoadURL: typed(LoadURL, func(ctx context.Context, a LoadURLArgs) (any, error) {
			id, err := d.tabs.LoadURL(ctx, a.URL, a.TabID)
			if err != nil {
				return nil, err
			}
			return TabResult{TabID: id}, nil
		}),
		GoBack: typed(GoBack, func(ctx context.Context, a TabArgs) (any, error) {
			return d.tabs.GoBack(ctx, a.TabID)
		}),
		GoForward: typed(GoForward, func(ctx context.Context, a TabArgs) (any, error) {
			return d.tabs.GoForward(ctx, a.TabID)
		}),
		Reload: typed(Reload, func(ctx context.Context, a TabArgs) (any, error) {
			return ok(d.tabs.Reload(ctx, a.TabID))
		}),
		Stop: typed(Stop, func(ctx context.Context, a TabArgs) (any, error) {
			return ok(d.tabs.Stop(ctx, a.TabID))
		}),
		ExecuteScript: typed(ExecuteScript, func(ctx context.Context, a ExecuteScriptArgs) (any, error) {
			if a.Code == "" {
				return nil, &ArgumentError{Command: ExecuteScript, Err: errors.New("code is required")}
			}
			raw, err := d.tabs.ExecuteScript(ctx, a.Code, a.TabID)
			if err != nil {
				return nil, err
			}
			if len(raw) == 0 {
				raw = json.RawMessage("null")
			}
			return ScriptResult{Result: raw}, nil
		}),
		GetNavigationState: typed(GetNavigationState, func(ctx context.Context, a TabArgs) (any, error) {
			return d.tabs.NavigationState(ctx, a.TabID), nil
		}),
		ListTabs: typed(ListTabs, func(ctx context.Context, _ NoArgs) (any, error) {
			return TabsResult{Tabs: d.tabs.Tabs(ctx), Active: d.tabs.ActiveTabID()}, nil
		}),
		UpdateBounds: typed(UpdateBounds, func(ctx context.Context, a UpdateBoundsArgs) (any, error) {
			return ok(d.tabs.UpdateBounds(ctx, a.Bounds))
		}),
		WaitForElement: typed(WaitForElement, func(ctx context.Context, a WaitForElementArgs) (any, error) {
			out, err := d.wait.Execute(ctx, usecase.WaitInput{
				Selector: a.Selector,
				Timeout:  time.Duration(a.TimeoutMS) * time.Millisecond,
				TabID:    a.TabID,
			})
			if err != nil {
				return nil, err
			}
			return waitResult(out), nil
		}),
		NavigateInput: typed(NavigateInput, func(ctx context.Context, a NavigateInputArgs) (any, error) {
			out, err := d.navigate.Execute(ctx, usecase.NavigateInput{Input: a.Input, TabID: a.TabID})
			if err != nil {
				return nil, err
			}
			return NavigateResult{TabID: out.TabID, URL: out.URL, Resolution: resolutionName(out.Resolution)}, nil
		}),
	}

	if d.settings == nil {
		return
	}
	d.handlers[GetSetting] = typed(GetSetting, func(ctx context.Context, a GetSettingArgs) (any, error) {
		value, found, err := d.settings.Get(ctx, a.Key)
		if err != nil {
			return nil, err
		}
		return SettingResult{Key: a.Key, Value: value, Found: found}, nil
	})
	d.handlers[SetSetting] = typed(SetSetting, func(ctx context.Context, a SetSettingArgs) (any, error) {
		return ok(d.settings.Set(ctx, a.Key, a.Value))
	})
}

func typed[A any](name Name, fn func(context.Context, A) (any, error)) handlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, &ArgumentError{Command: name, Err: err}
			}
		}
		return fn(ctx, args)
	}
}

func ok(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return OKResult{OK: true}, nil
}

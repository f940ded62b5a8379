package port

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

var (
	// ErrTabNotFound is matched by errors for an explicit tab id that is not open.
	ErrTabNotFound = errors.New("tab not found")
	// ErrNoActiveTab is matched when an operation needs a tab and none resolves.
	ErrNoActiveTab = errors.New("no active tab")
	// ErrUninitialized is returned by tab operations before the manager is
	// bound to a host window.
	ErrUninitialized = errors.New("tab manager not initialized")
	// ErrDestroyed is returned by tab operations after the manager was torn down.
	ErrDestroyed = errors.New("tab manager destroyed")
)

// TabController is the command surface of the tab manager, consumed by the
// console, the automation layer and session restore. An empty TabID means
// the active tab.
type TabController interface {
	CreateTab(ctx context.Context, url string) (entity.TabID, error)
	SwitchTab(ctx context.Context, id entity.TabID) (entity.TabSnapshot, error)
	CloseTab(ctx context.Context, id entity.TabID) error
	LoadURL(ctx context.Context, url string, id entity.TabID) (entity.TabID, error)
	GoBack(ctx context.Context, id entity.TabID) (entity.NavResult, error)
	GoForward(ctx context.Context, id entity.TabID) (entity.NavResult, error)
	Reload(ctx context.Context, id entity.TabID) error
	Stop(ctx context.Context, id entity.TabID) error
	ExecuteScript(ctx context.Context, code string, id entity.TabID) (json.RawMessage, error)
	NavigationState(ctx context.Context, id entity.TabID) entity.NavigationState
	UpdateBounds(ctx context.Context, bounds *entity.Bounds) error
	Tabs(ctx context.Context) []entity.TabSnapshot
	ActiveTabID() entity.TabID
}

package coordinator

import (
	"errors"
	"fmt"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

var (
	// ErrUninitialized is returned by every operation before Initialize.
	ErrUninitialized = port.ErrUninitialized
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("tab manager already initialized")
	// ErrDestroyed is returned by operations after Destroy.
	ErrDestroyed = port.ErrDestroyed
	// ErrTabNotFound matches every *TabNotFoundError.
	ErrTabNotFound = port.ErrTabNotFound
	// ErrNoActiveTab is returned when an operation needs a tab and none resolves.
	ErrNoActiveTab = port.ErrNoActiveTab
	// ErrEmptyURL is returned by LoadURL for blank input.
	ErrEmptyURL = errors.New("empty url")
)

// TabNotFoundError reports an explicit tab id with no registry entry.
type TabNotFoundError struct {
	Op    string
	TabID entity.TabID
	// Target marks a missing navigation target. Such errors also match
	// ErrNoActiveTab.
	Target bool
}

func (e *TabNotFoundError) Error() string {
	return fmt.Sprintf("%s: tab %q not found", e.Op, e.TabID)
}

// Is matches ErrTabNotFound, and ErrNoActiveTab for navigation targets.
func (e *TabNotFoundError) Is(target error) bool {
	if target == ErrTabNotFound {
		return true
	}
	return e.Target && target == ErrNoActiveTab
}

// SurfaceCreationError wraps a factory failure. No tab was registered.
type SurfaceCreationError struct {
	Err error
}

func (e *SurfaceCreationError) Error() string {
	return fmt.Sprintf("create surface: %v", e.Err)
}

func (e *SurfaceCreationError) Unwrap() error { return e.Err }

// NavigationError reports a failed load, reload or history navigation.
type NavigationError struct {
	TabID entity.TabID
	URL   string
	Err   error
}

func (e *NavigationError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("navigate tab %s: %v", e.TabID, e.Err)
	}
	return fmt.Sprintf("navigate tab %s to %s: %v", e.TabID, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// ScriptExecutionError carries the surface's script failure unchanged in Err.
type ScriptExecutionError struct {
	TabID entity.TabID
	Err   error
}

func (e *ScriptExecutionError) Error() string {
	return fmt.Sprintf("execute script in tab %s: %v", e.TabID, e.Err)
}

func (e *ScriptExecutionError) Unwrap() error { return e.Err }

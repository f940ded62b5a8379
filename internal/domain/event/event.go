// Package event defines the typed lifecycle and navigation events published
// by the tab manager.
package event

import (
	"github.com/egdesk/taehwa/internal/domain/entity"
)

// Kind identifies an event type.
type Kind string

const (
	KindTabCreated       Kind = "tab-created"
	KindTabSwitched      Kind = "tab-switched"
	KindTabClosed        Kind = "tab-closed"
	KindNavigation       Kind = "navigation"
	KindLoadingStarted   Kind = "loading-started"
	KindLoadingFinished  Kind = "loading-finished"
	KindLoadingFailed    Kind = "loading-failed"
	KindLoadingStopped   Kind = "loading-stopped"
	KindTitleUpdated     Kind = "title-updated"
	KindTabCrashed       Kind = "tab-crashed"
	KindCertificateError Kind = "certificate-error"
	KindBoundsApplied    Kind = "bounds-applied"
)

// Kinds lists every event kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindTabCreated,
		KindTabSwitched,
		KindTabClosed,
		KindNavigation,
		KindLoadingStarted,
		KindLoadingFinished,
		KindLoadingFailed,
		KindLoadingStopped,
		KindTitleUpdated,
		KindTabCrashed,
		KindCertificateError,
		KindBoundsApplied,
	}
}

// Event is implemented by every payload type.
type Event interface {
	Kind() Kind
}

// TabCreated is published once a surface exists and its callbacks are wired.
type TabCreated struct {
	TabID entity.TabID `json:"tab_id"`
	URL   string       `json:"url"`
}

// TabSwitched is published after the target surface was attached.
type TabSwitched struct {
	TabID    entity.TabID       `json:"tab_id"`
	Previous entity.TabID       `json:"previous,omitempty"`
	Tab      entity.TabSnapshot `json:"tab"`
}

// TabClosed is published after the surface was destroyed and unregistered.
type TabClosed struct {
	TabID     entity.TabID `json:"tab_id"`
	WasActive bool         `json:"was_active"`
}

// Navigation is published when a tab committed a new URL.
type Navigation struct {
	TabID  entity.TabID `json:"tab_id"`
	URL    string       `json:"url"`
	InPage bool         `json:"in_page"`
}

// LoadingStarted is published when a tab starts loading.
type LoadingStarted struct {
	TabID entity.TabID `json:"tab_id"`
	URL   string       `json:"url,omitempty"`
}

// LoadingFinished is published when the main frame finished loading.
type LoadingFinished struct {
	TabID entity.TabID `json:"tab_id"`
	URL   string       `json:"url"`
	Title string       `json:"title"`
}

// LoadingFailed is published when a load failed.
type LoadingFailed struct {
	TabID entity.TabID `json:"tab_id"`
	URL   string       `json:"url"`
	Err   error        `json:"-"`
}

// LoadingStopped is published when loading was stopped.
type LoadingStopped struct {
	TabID entity.TabID `json:"tab_id"`
}

// TitleUpdated is published when the document title changed.
type TitleUpdated struct {
	TabID entity.TabID `json:"tab_id"`
	Title string       `json:"title"`
}

// TabCrashed is published when the content process died.
type TabCrashed struct {
	TabID  entity.TabID `json:"tab_id"`
	Reason string       `json:"reason"`
}

// CertificateError is published for every intercepted TLS error.
type CertificateError struct {
	TabID    entity.TabID `json:"tab_id"`
	URL      string       `json:"url"`
	Host     string       `json:"host"`
	Reason   string       `json:"reason"`
	Accepted bool         `json:"accepted"`
}

// BoundsApplied is published after bounds reached the host window.
type BoundsApplied struct {
	TabID  entity.TabID        `json:"tab_id"`
	Bounds entity.Bounds       `json:"bounds"`
	Source entity.BoundsSource `json:"source"`
}

func (TabCreated) Kind() Kind       { return KindTabCreated }
func (TabSwitched) Kind() Kind      { return KindTabSwitched }
func (TabClosed) Kind() Kind        { return KindTabClosed }
func (Navigation) Kind() Kind       { return KindNavigation }
func (LoadingStarted) Kind() Kind   { return KindLoadingStarted }
func (LoadingFinished) Kind() Kind  { return KindLoadingFinished }
func (LoadingFailed) Kind() Kind    { return KindLoadingFailed }
func (LoadingStopped) Kind() Kind   { return KindLoadingStopped }
func (TitleUpdated) Kind() Kind     { return KindTitleUpdated }
func (TabCrashed) Kind() Kind       { return KindTabCrashed }
func (CertificateError) Kind() Kind { return KindCertificateError }
func (BoundsApplied) Kind() Kind    { return KindBoundsApplied }

// TabIDOf returns the tab an event refers to.
func TabIDOf(ev Event) entity.TabID {
	switch e := ev.(type) {
	case TabCreated:
		return e.TabID
	case TabSwitched:
		return e.TabID
	case TabClosed:
		return e.TabID
	case Navigation:
		return e.TabID
	case LoadingStarted:
		return e.TabID
	case LoadingFinished:
		return e.TabID
	case LoadingFailed:
		return e.TabID
	case LoadingStopped:
		return e.TabID
	case TitleUpdated:
		return e.TabID
	case TabCrashed:
		return e.TabID
	case CertificateError:
		return e.TabID
	case BoundsApplied:
		return e.TabID
	default:
		return ""
	}
}

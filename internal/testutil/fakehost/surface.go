package fakehost

import (
	"context"
	"encoding/json"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

// Surface implements port.Surface with a linear history.
type Surface struct {
	host *Host
	name string

	url       string
	title     string
	history   []string
	index     int
	callbacks *port.SurfaceCallbacks
	closed    bool
	destroyed bool
	loads     []string

	// LoadErr fails LoadURL.
	LoadErr error
	// LoadGate, when set, blocks LoadURL until it is closed.
	LoadGate chan struct{}
	// LoadEntered receives a value when LoadURL starts, if set.
	LoadEntered chan string
	// ReloadErr fails Reload.
	ReloadErr error
	// HistoryErr fails History.
	HistoryErr error
	// ScriptResult is returned by ExecuteScript.
	ScriptResult json.RawMessage
	// ScriptErr fails ExecuteScript.
	ScriptErr error
	// Script, when set, computes the ExecuteScript result.
	Script func(code string) (json.RawMessage, error)
	// CloseErr fails Close. Destroy still works.
	CloseErr error
}

var _ port.Surface = (*Surface)(nil)

// Name returns the surface label used in the call log.
func (s *Surface) Name() string { return s.name }

func (s *Surface) record(format string, args ...any) {
	s.host.mu.Lock()
	s.host.record(format, args...)
	s.host.mu.Unlock()
}

// LoadURL implements port.Surface. A successful load commits url to history.
func (s *Surface) LoadURL(ctx context.Context, url string) error {
	s.host.mu.Lock()
	s.loads = append(s.loads, url)
	gate := s.LoadGate
	entered := s.LoadEntered
	loadErr := s.LoadErr
	s.host.record("load %s %s", s.name, url)
	s.host.mu.Unlock()

	if entered != nil {
		entered <- url
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if loadErr != nil {
		return loadErr
	}

	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	s.history = append(s.history[:s.index+1], url)
	s.index = len(s.history) - 1
	s.url = url
	return nil
}

// Reload implements port.Surface.
func (s *Surface) Reload(context.Context) error {
	s.record("reload %s", s.name)
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.ReloadErr
}

// Stop implements port.Surface.
func (s *Surface) Stop(context.Context) error {
	s.record("stop %s", s.name)
	return nil
}

// GoBack implements port.Surface.
func (s *Surface) GoBack(context.Context) error {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if s.index > 0 {
		s.index--
		s.url = s.history[s.index]
	}
	s.host.record("back %s", s.name)
	return nil
}

// GoForward implements port.Surface.
func (s *Surface) GoForward(context.Context) error {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if s.index < len(s.history)-1 {
		s.index++
		s.url = s.history[s.index]
	}
	s.host.record("forward %s", s.name)
	return nil
}

// History implements port.Surface.
func (s *Surface) History(context.Context) (entity.HistoryState, error) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if s.HistoryErr != nil {
		return entity.HistoryState{}, s.HistoryErr
	}
	return entity.HistoryState{
		CanGoBack:    s.index > 0,
		CanGoForward: s.index < len(s.history)-1,
	}, nil
}

// ExecuteScript implements port.Surface.
func (s *Surface) ExecuteScript(_ context.Context, code string) (json.RawMessage, error) {
	s.host.mu.Lock()
	script := s.Script
	result, err := s.ScriptResult, s.ScriptErr
	s.host.mu.Unlock()

	if script != nil {
		return script(code)
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		return json.RawMessage("null"), nil
	}
	return result, nil
}

// URL implements port.Surface.
func (s *Surface) URL() string {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.url
}

// Title implements port.Surface.
func (s *Surface) Title() string {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.title
}

// SetCallbacks implements port.Surface.
func (s *Surface) SetCallbacks(callbacks *port.SurfaceCallbacks) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	s.callbacks = callbacks
}

// Close implements port.Surface.
func (s *Surface) Close(context.Context) error {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	s.host.record("close %s", s.name)
	s.closed = true
	return s.CloseErr
}

// Destroy implements port.Surface.
func (s *Surface) Destroy() {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.host.record("destroy %s", s.name)
}

// IsDestroyed implements port.Surface.
func (s *Surface) IsDestroyed() bool {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.destroyed
}

// IsClosed reports whether Close ran.
func (s *Surface) IsClosed() bool {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.closed
}

// Loads returns every URL passed to LoadURL.
func (s *Surface) Loads() []string {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	out := make([]string, len(s.loads))
	copy(out, s.loads)
	return out
}

// HasCallbacks reports whether callbacks are wired.
func (s *Surface) HasCallbacks() bool {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.callbacks != nil
}

// Callbacks returns the wired callbacks. Tests keep a copy to simulate
// events arriving after the tab was closed.
func (s *Surface) Callbacks() *port.SurfaceCallbacks {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.callbacks
}

// SetTitle changes the document title and fires OnTitleChanged.
func (s *Surface) SetTitle(title string) {
	s.host.mu.Lock()
	s.title = title
	cb := s.callbacks
	s.host.mu.Unlock()
	if cb != nil && cb.OnTitleChanged != nil {
		cb.OnTitleChanged(title)
	}
}

// FireLoadStarted simulates the engine starting a navigation.
func (s *Surface) FireLoadStarted() {
	if cb := s.Callbacks(); cb != nil && cb.OnLoadStarted != nil {
		cb.OnLoadStarted()
	}
}

// FireLoadFinished simulates did-finish-load for url.
func (s *Surface) FireLoadFinished(url string) {
	if cb := s.Callbacks(); cb != nil && cb.OnLoadFinished != nil {
		cb.OnLoadFinished(url)
	}
}

// FireLoadFailed simulates did-fail-load.
func (s *Surface) FireLoadFailed(url string, err error) {
	if cb := s.Callbacks(); cb != nil && cb.OnLoadFailed != nil {
		cb.OnLoadFailed(url, err)
	}
}

// FireLoadStopped simulates a stopped load.
func (s *Surface) FireLoadStopped() {
	if cb := s.Callbacks(); cb != nil && cb.OnLoadStopped != nil {
		cb.OnLoadStopped()
	}
}

// FireNavigated simulates a URL commit.
func (s *Surface) FireNavigated(url string, inPage bool) {
	if cb := s.Callbacks(); cb != nil && cb.OnNavigated != nil {
		cb.OnNavigated(url, inPage)
	}
}

// FireCrashed simulates a content process crash.
func (s *Surface) FireCrashed(reason string) {
	if cb := s.Callbacks(); cb != nil && cb.OnCrashed != nil {
		cb.OnCrashed(reason)
	}
}

// FireCertificateError simulates a TLS validation failure.
func (s *Surface) FireCertificateError(certErr port.CertificateError) {
	if cb := s.Callbacks(); cb != nil && cb.OnCertificateError != nil {
		cb.OnCertificateError(certErr)
	}
}

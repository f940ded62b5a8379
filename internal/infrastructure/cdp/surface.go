package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

// ErrSurfaceDestroyed is returned by calls on a destroyed surface.
var ErrSurfaceDestroyed = errors.New("cdp: surface destroyed")

// Surface is one Chromium page target.
type Surface struct {
	host     *Host
	tabCtx   context.Context
	cancel   context.CancelFunc
	targetID target.ID
	exec     cdp.Executor

	acceptInvalidCerts bool

	mu        sync.Mutex
	url       string
	title     string
	callbacks *port.SurfaceCallbacks
	closing   bool
	destroyed bool

	// docRequests tracks main-frame document requests. Only touched from
	// the chromedp listener goroutine.
	docRequests map[string]string
	// errorPage is set while Chromium shows its own error document for a
	// failed navigation. Listener goroutine only.
	errorPage bool
}

var _ port.Surface = (*Surface)(nil)

func newSurface(host *Host, acceptInvalidCerts bool) *Surface {
	return &Surface{
		host:               host,
		acceptInvalidCerts: acceptInvalidCerts,
		url:                entity.BlankURL,
		docRequests:        make(map[string]string),
	}
}

// TargetID returns the DevTools target id of the page.
func (s *Surface) TargetID() target.ID { return s.targetID }

func (s *Surface) ctx(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil, ErrSurfaceDestroyed
	}
	return cdp.WithExecutor(ctx, s.exec), nil
}

// LoadURL implements port.Surface. It returns once Chromium committed the
// navigation or reported why it could not.
func (s *Surface) LoadURL(ctx context.Context, url string) error {
	c, err := s.ctx(ctx)
	if err != nil {
		return err
	}
	_, _, errorText, _, err := page.Navigate(url).Do(c)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if errorText != "" {
		return fmt.Errorf("navigate %s: %s", url, errorText)
	}
	return nil
}

// Reload implements port.Surface.
func (s *Surface) Reload(ctx context.Context) error {
	c, err := s.ctx(ctx)
	if err != nil {
		return err
	}
	return page.Reload().Do(c)
}

// Stop implements port.Surface.
func (s *Surface) Stop(ctx context.Context) error {
	c, err := s.ctx(ctx)
	if err != nil {
		return err
	}
	if err := page.StopLoading().Do(c); err != nil {
		return err
	}
	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnLoadStopped != nil {
			cb.OnLoadStopped()
		}
	})
	return nil
}

// GoBack implements port.Surface.
func (s *Surface) GoBack(ctx context.Context) error {
	return s.traverse(ctx, -1)
}

// GoForward implements port.Surface.
func (s *Surface) GoForward(ctx context.Context) error {
	return s.traverse(ctx, 1)
}

func (s *Surface) traverse(ctx context.Context, delta int64) error {
	c, err := s.ctx(ctx)
	if err != nil {
		return err
	}
	index, entries, err := page.GetNavigationHistory().Do(c)
	if err != nil {
		return err
	}
	next := index + delta
	if next < 0 || next >= int64(len(entries)) {
		return nil
	}
	return page.NavigateToHistoryEntry(entries[next].ID).Do(c)
}

// History implements port.Surface.
func (s *Surface) History(ctx context.Context) (entity.HistoryState, error) {
	c, err := s.ctx(ctx)
	if err != nil {
		return entity.HistoryState{}, err
	}
	index, entries, err := page.GetNavigationHistory().Do(c)
	if err != nil {
		return entity.HistoryState{}, err
	}
	return historyState(index, len(entries)), nil
}

func historyState(index int64, entries int) entity.HistoryState {
	return entity.HistoryState{
		CanGoBack:    index > 0,
		CanGoForward: index < int64(entries)-1,
	}
}

// ExecuteScript implements port.Surface. Promises are awaited and the result
// is returned by value.
func (s *Surface) ExecuteScript(ctx context.Context, code string) (json.RawMessage, error) {
	c, err := s.ctx(ctx)
	if err != nil {
		return nil, err
	}
	res, exc, err := runtime.Evaluate(code).
		WithReturnByValue(true).
		WithAwaitPromise(true).
		Do(c)
	if err != nil {
		return nil, err
	}
	if exc != nil {
		return nil, exc
	}
	return remoteValue(res)
}

// remoteValue turns an evaluation result into JSON. NaN, Infinity and
// similar values are returned as strings; undefined becomes null.
func remoteValue(res *runtime.RemoteObject) (json.RawMessage, error) {
	if res == nil {
		return json.RawMessage("null"), nil
	}
	if len(res.Value) > 0 {
		return json.RawMessage(res.Value), nil
	}
	if res.UnserializableValue != "" {
		return json.Marshal(res.UnserializableValue.String())
	}
	return json.RawMessage("null"), nil
}

// URL implements port.Surface.
func (s *Surface) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Title implements port.Surface.
func (s *Surface) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetCallbacks implements port.Surface.
func (s *Surface) SetCallbacks(callbacks *port.SurfaceCallbacks) {
	s.mu.Lock()
	s.callbacks = callbacks
	s.mu.Unlock()
}

// Close implements port.Surface. It closes the Chromium tab.
func (s *Surface) Close(_ context.Context) error {
	s.mu.Lock()
	if s.closing || s.destroyed {
		s.mu.Unlock()
		return nil
	}
	s.closing = true
	tabCtx := s.tabCtx
	s.mu.Unlock()

	if tabCtx == nil {
		return nil
	}
	if err := chromedp.Cancel(tabCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close tab %s: %w", s.targetID, err)
	}
	return nil
}

// Destroy implements port.Surface.
func (s *Surface) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.closing = true
	s.callbacks = nil
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if s.host != nil {
		s.host.forget(s)
	}
}

// IsDestroyed implements port.Surface.
func (s *Surface) IsDestroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// post schedules fn with the callbacks current at delivery time.
func (s *Surface) post(fn func(cb *port.SurfaceCallbacks)) {
	s.host.post(func() {
		s.mu.Lock()
		cb := s.callbacks
		destroyed := s.destroyed
		s.mu.Unlock()
		if cb == nil || destroyed {
			return
		}
		fn(cb)
	})
}

package playwright

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

// ErrSurfaceDestroyed is returned by calls on a destroyed surface.
var ErrSurfaceDestroyed = errors.New("playwright: surface destroyed")

// Surface is one Playwright page.
type Surface struct {
	host *Host
	page playwright.Page
	cdp  playwright.CDPSession

	acceptInvalidCerts bool

	mu        sync.Mutex
	url       string
	title     string
	callbacks *port.SurfaceCallbacks
	closing   bool
	destroyed bool
	// errorPage is set while Chromium shows its error document for a
	// failed navigation.
	errorPage bool
}

var _ port.Surface = (*Surface)(nil)

func newSurface(host *Host, acceptInvalidCerts bool) *Surface {
	return &Surface{
		host:               host,
		acceptInvalidCerts: acceptInvalidCerts,
		url:                entity.BlankURL,
	}
}

// bind wires page events. Playwright runs handlers on its dispatcher
// goroutine, so they only record state and post.
func (s *Surface) bind(bc playwright.BrowserContext, pg playwright.Page) {
	s.page = pg
	if session, err := bc.NewCDPSession(pg); err == nil {
		s.cdp = session
	}

	pg.OnRequest(func(req playwright.Request) {
		if req.IsNavigationRequest() && req.Frame() == pg.MainFrame() {
			s.loadStarted()
		}
	})
	pg.OnFrameNavigated(func(frame playwright.Frame) {
		if frame.ParentFrame() != nil {
			return
		}
		s.navigated(frame.URL())
	})
	pg.OnLoad(func(playwright.Page) {
		s.loadFinished()
	})
	pg.OnRequestFailed(func(req playwright.Request) {
		if !req.IsNavigationRequest() || req.Frame() != pg.MainFrame() {
			return
		}
		s.documentFailed(req.URL(), req.Failure())
	})
	pg.OnCrash(func(playwright.Page) {
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnCrashed != nil {
				cb.OnCrashed("renderer crashed")
			}
		})
	})
	pg.OnClose(func(playwright.Page) {
		s.mu.Lock()
		closing := s.closing
		s.mu.Unlock()
		if closing {
			return
		}
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnCrashed != nil {
				cb.OnCrashed("page closed by user")
			}
		})
	})
}

func (s *Surface) live() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	return nil
}

// LoadURL implements port.Surface. It waits for the navigation to commit.
func (s *Surface) LoadURL(_ context.Context, url string) error {
	if err := s.live(); err != nil {
		return err
	}
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Reload implements port.Surface.
func (s *Surface) Reload(_ context.Context) error {
	if err := s.live(); err != nil {
		return err
	}
	_, err := s.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	return err
}

// Stop implements port.Surface.
func (s *Surface) Stop(_ context.Context) error {
	if err := s.live(); err != nil {
		return err
	}
	if _, err := s.page.Evaluate("window.stop()"); err != nil {
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
func (s *Surface) GoBack(_ context.Context) error {
	if err := s.live(); err != nil {
		return err
	}
	_, err := s.page.GoBack(playwright.PageGoBackOptions{
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	return err
}

// GoForward implements port.Surface.
func (s *Surface) GoForward(_ context.Context) error {
	if err := s.live(); err != nil {
		return err
	}
	_, err := s.page.GoForward(playwright.PageGoForwardOptions{
		WaitUntil: playwright.WaitUntilStateCommit,
	})
	return err
}

// History implements port.Surface through Page.getNavigationHistory.
func (s *Surface) History(_ context.Context) (entity.HistoryState, error) {
	if err := s.live(); err != nil {
		return entity.HistoryState{}, err
	}
	res, err := s.cdpSend("Page.getNavigationHistory", nil)
	if err != nil {
		return entity.HistoryState{}, err
	}
	return parseHistory(res)
}

func (s *Surface) cdpSend(method string, params map[string]any) (any, error) {
	if s.cdp == nil {
		return nil, fmt.Errorf("%s: no CDP session", method)
	}
	return s.cdp.Send(method, params)
}

// ExecuteScript implements port.Surface.
func (s *Surface) ExecuteScript(_ context.Context, code string) (json.RawMessage, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	value, err := s.page.Evaluate(code)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
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

// Close implements port.Surface.
func (s *Surface) Close(_ context.Context) error {
	s.mu.Lock()
	if s.closing || s.destroyed {
		s.mu.Unlock()
		return nil
	}
	s.closing = true
	s.mu.Unlock()

	if s.cdp != nil {
		_ = s.cdp.Detach()
	}
	if s.page == nil {
		return nil
	}
	return s.page.Close()
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
	s.mu.Unlock()

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

package cdp

import (
	"errors"
	"net/url"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/security"
	"github.com/chromedp/cdproto/target"

	"github.com/egdesk/taehwa/internal/application/port"
)

const certErrorPrefix = "net::ERR_CERT_"

// isMainFrame relies on Chromium giving a page's main frame the target id.
func (s *Surface) isMainFrame(id cdp.FrameID) bool {
	return string(id) == string(s.targetID)
}

// handleTargetEvent runs on the chromedp listener goroutine and must not
// block or issue commands.
func (s *Surface) handleTargetEvent(ev any) {
	switch e := ev.(type) {
	case *page.EventFrameStartedLoading:
		if !s.isMainFrame(e.FrameID) {
			return
		}
		s.errorPage = false
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnLoadStarted != nil {
				cb.OnLoadStarted()
			}
		})

	case *page.EventFrameNavigated:
		if e.Frame == nil || e.Frame.ParentID != "" {
			return
		}
		if e.Frame.UnreachableURL != "" {
			// chrome-error://chromewebdata/ stands in for the failed URL.
			// The failure was already reported and the tab keeps its URL.
			s.errorPage = true
			return
		}
		s.errorPage = false
		committed := e.Frame.URL + e.Frame.URLFragment
		s.setURL(committed)
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnNavigated != nil {
				cb.OnNavigated(committed, false)
			}
		})

	case *page.EventNavigatedWithinDocument:
		if !s.isMainFrame(e.FrameID) {
			return
		}
		s.setURL(e.URL)
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnNavigated != nil {
				cb.OnNavigated(e.URL, true)
			}
		})

	case *page.EventLoadEventFired:
		if s.errorPage {
			return
		}
		loaded := s.URL()
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnLoadFinished != nil {
				cb.OnLoadFinished(loaded)
			}
		})

	case *network.EventRequestWillBeSent:
		if e.Type == network.ResourceTypeDocument && s.isMainFrame(e.FrameID) && e.Request != nil {
			s.docRequests[string(e.RequestID)] = e.Request.URL
		}

	case *network.EventLoadingFinished:
		delete(s.docRequests, string(e.RequestID))

	case *network.EventLoadingFailed:
		failedURL, ok := s.docRequests[string(e.RequestID)]
		if !ok {
			return
		}
		delete(s.docRequests, string(e.RequestID))
		s.documentFailed(failedURL, e.ErrorText, e.Canceled)

	case *security.EventVisibleSecurityStateChanged:
		state := e.VisibleSecurityState
		if state == nil || state.CertificateSecurityState == nil {
			return
		}
		if reason := state.CertificateSecurityState.CertificateNetworkError; reason != "" {
			s.certificateError(s.URL(), reason, s.acceptInvalidCerts)
		}
	}
}

func (s *Surface) documentFailed(failedURL, errorText string, canceled bool) {
	if canceled {
		// A newer navigation or Stop replaced this one.
		return
	}
	if strings.HasPrefix(errorText, certErrorPrefix) {
		s.certificateError(failedURL, errorText, false)
	}
	loadErr := errors.New(errorText)
	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnLoadFailed != nil {
			cb.OnLoadFailed(failedURL, loadErr)
		}
	})
}

func (s *Surface) certificateError(rawURL, reason string, accepted bool) {
	certErr := port.CertificateError{
		URL:      rawURL,
		Host:     hostOf(rawURL),
		Reason:   reason,
		Accepted: accepted,
	}
	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnCertificateError != nil {
			cb.OnCertificateError(certErr)
		}
	})
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (s *Surface) setURL(u string) {
	s.mu.Lock()
	s.url = u
	s.mu.Unlock()
}

// handleBrowserEvent routes browser-level target events to surfaces.
func (h *Host) handleBrowserEvent(ev any) {
	switch e := ev.(type) {
	case *target.EventTargetInfoChanged:
		if e.TargetInfo == nil {
			return
		}
		s := h.surface(e.TargetInfo.TargetID)
		if s == nil {
			return
		}
		s.titleChanged(e.TargetInfo.Title)

	case *target.EventTargetCrashed:
		s := h.surface(e.TargetID)
		if s == nil {
			return
		}
		reason := e.Status
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnCrashed != nil {
				cb.OnCrashed(reason)
			}
		})

	case *target.EventTargetDestroyed:
		s := h.surface(e.TargetID)
		if s == nil {
			return
		}
		s.mu.Lock()
		closing := s.closing
		s.mu.Unlock()
		if closing {
			return
		}
		// Closed from the Chromium tab strip.
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnCrashed != nil {
				cb.OnCrashed("tab closed by user")
			}
		})
	}
}

func (s *Surface) titleChanged(title string) {
	s.mu.Lock()
	if s.title == title {
		s.mu.Unlock()
		return
	}
	s.title = title
	s.mu.Unlock()

	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnTitleChanged != nil {
			cb.OnTitleChanged(title)
		}
	})
}

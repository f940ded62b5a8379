package playwright

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
)

const (
	certErrorPrefix = "net::ERR_CERT_"
	// errorPageScheme is where Chromium commits the page shown for a
	// failed navigation.
	errorPageScheme = "chrome-error://"
)

func (s *Surface) loadStarted() {
	s.mu.Lock()
	s.errorPage = false
	s.mu.Unlock()
	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnLoadStarted != nil {
			cb.OnLoadStarted()
		}
	})
}

// navigated records a main-frame commit. Playwright reports same-document
// navigations through the same event, so a change limited to the fragment
// is treated as in-page.
func (s *Surface) navigated(committed string) {
	s.mu.Lock()
	if strings.HasPrefix(committed, errorPageScheme) {
		// The failure was already reported and the tab keeps its URL.
		s.errorPage = true
		s.mu.Unlock()
		return
	}
	s.errorPage = false
	inPage := sameDocument(s.url, committed)
	s.url = committed
	s.mu.Unlock()

	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnNavigated != nil {
			cb.OnNavigated(committed, inPage)
		}
	})
}

// loadFinished reports the load and refreshes the title. The title query
// runs on the loop so it does not block Playwright's dispatcher.
func (s *Surface) loadFinished() {
	s.mu.Lock()
	errorPage := s.errorPage
	s.mu.Unlock()
	if errorPage {
		return
	}
	loaded := s.URL()
	s.host.post(func() {
		title := s.Title()
		if s.page != nil {
			if t, err := s.page.Title(); err == nil {
				title = t
			}
		}
		s.deliverLoad(loaded, title)
	})
}

func (s *Surface) deliverLoad(loaded, title string) {
	s.mu.Lock()
	cb := s.callbacks
	destroyed := s.destroyed
	changed := title != s.title
	s.title = title
	s.mu.Unlock()
	if cb == nil || destroyed {
		return
	}
	if changed && cb.OnTitleChanged != nil {
		cb.OnTitleChanged(title)
	}
	if cb.OnLoadFinished != nil {
		cb.OnLoadFinished(loaded)
	}
}

func (s *Surface) documentFailed(failedURL string, failure error) {
	text := "navigation failed"
	if failure != nil {
		text = failure.Error()
	}
	if strings.Contains(text, "net::ERR_ABORTED") {
		// Replaced by a newer navigation or stopped.
		return
	}
	if strings.Contains(text, certErrorPrefix) {
		certErr := port.CertificateError{
			URL:      failedURL,
			Host:     hostOf(failedURL),
			Reason:   certReason(text),
			Accepted: false,
		}
		s.post(func(cb *port.SurfaceCallbacks) {
			if cb.OnCertificateError != nil {
				cb.OnCertificateError(certErr)
			}
		})
	}
	loadErr := errors.New(text)
	s.post(func(cb *port.SurfaceCallbacks) {
		if cb.OnLoadFailed != nil {
			cb.OnLoadFailed(failedURL, loadErr)
		}
	})
}

func certReason(text string) string {
	i := strings.Index(text, certErrorPrefix)
	if i < 0 {
		return text
	}
	reason := text[i:]
	if end := strings.IndexAny(reason, " \t\n"); end > 0 {
		reason = reason[:end]
	}
	return reason
}

func sameDocument(before, after string) bool {
	if before == "" || before == after {
		return false
	}
	b, errB := url.Parse(before)
	a, errA := url.Parse(after)
	if errB != nil || errA != nil {
		return false
	}
	if a.Fragment == "" && b.Fragment == "" {
		return false
	}
	b.Fragment, a.Fragment = "", ""
	b.RawFragment, a.RawFragment = "", ""
	return b.String() == a.String()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// parseHistory reads a Page.getNavigationHistory result.
func parseHistory(res any) (entity.HistoryState, error) {
	m, ok := res.(map[string]any)
	if !ok {
		return entity.HistoryState{}, fmt.Errorf("unexpected navigation history %T", res)
	}
	index, ok := number(m["currentIndex"])
	if !ok {
		return entity.HistoryState{}, errors.New("navigation history without currentIndex")
	}
	entries, _ := m["entries"].([]any)
	return entity.HistoryState{
		CanGoBack:    index > 0,
		CanGoForward: index < len(entries)-1,
	}, nil
}

func number(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func pair(v any) (int, int, bool) {
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return 0, 0, false
	}
	w, okW := number(list[0])
	h, okH := number(list[1])
	if !okW || !okH || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

package coordinator

import (
	"context"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/logging"
)

// callbacksFor wires surface events to tab metadata and the event bus.
// Every handler first checks that id still maps to surface, so callbacks
// arriving after CloseTab are dropped.
func (m *TabManager) callbacksFor(id entity.TabID, surface port.Surface) *port.SurfaceCallbacks {
	ctx := logging.WithTabID(m.baseCtx, string(id))

	return &port.SurfaceCallbacks{
		OnLoadStarted: func() {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				tab.BeginLoading()
				return event.LoadingStarted{TabID: id, URL: tab.URL}
			})
		},
		OnLoadFinished: func(url string) {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				tab.FinishLoading(url)
				return event.LoadingFinished{TabID: id, URL: tab.URL, Title: tab.Title}
			})
		},
		OnLoadFailed: func(url string, err error) {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				tab.FailLoading(err)
				logging.FromContext(ctx).Warn().Err(err).Str("url", logging.TruncateURL(url, 120)).Msg("load failed")
				return event.LoadingFailed{TabID: id, URL: url, Err: &NavigationError{TabID: id, URL: url, Err: err}}
			})
		},
		OnLoadStopped: func() {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				tab.StopLoading()
				return event.LoadingStopped{TabID: id}
			})
		},
		OnNavigated: func(url string, inPage bool) {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				if url != "" {
					tab.URL = url
				}
				return event.Navigation{TabID: id, URL: tab.URL, InPage: inPage}
			})
		},
		OnTitleChanged: func(title string) {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				tab.Title = title
				return event.TitleUpdated{TabID: id, Title: title}
			})
		},
		OnCrashed: func(reason string) {
			m.updateTab(ctx, id, surface, func(tab *entity.Tab) event.Event {
				tab.MarkCrashed()
				logging.FromContext(ctx).Error().Str("reason", reason).Msg("content process crashed")
				return event.TabCrashed{TabID: id, Reason: reason}
			})
		},
		OnCertificateError: func(certErr port.CertificateError) {
			m.updateTab(ctx, id, surface, func(_ *entity.Tab) event.Event {
				logging.FromContext(ctx).Warn().
					Str("host", certErr.Host).
					Str("reason", certErr.Reason).
					Bool("accepted", certErr.Accepted).
					Msg("certificate error")
				return event.CertificateError{
					TabID:    id,
					URL:      certErr.URL,
					Host:     certErr.Host,
					Reason:   certErr.Reason,
					Accepted: certErr.Accepted,
				}
			})
		},
	}
}

// updateTab applies fn under the lock when id is still backed by surface and
// emits the returned event after unlocking.
func (m *TabManager) updateTab(ctx context.Context, id entity.TabID, surface port.Surface, fn func(tab *entity.Tab) event.Event) {
	m.mu.Lock()
	view, ok := m.registry.Lookup(id)
	if !ok || view.Surface != surface {
		m.mu.Unlock()
		logging.FromContext(ctx).Trace().Msg("event for closed tab dropped")
		return
	}
	ev := fn(view.Tab)
	m.mu.Unlock()

	if ev != nil {
		m.bus.Emit(ctx, ev)
	}
}

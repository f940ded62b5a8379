package entity

import "time"

// TabID uniquely identifies a tab.
type TabID string

// LoadState tracks where a tab is in its navigation lifecycle.
type LoadState string

const (
	LoadStateCreated LoadState = "created"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateFailed  LoadState = "failed"
	LoadStateCrashed LoadState = "crashed"
)

// BlankURL is the address of a tab that has not navigated anywhere yet.
const BlankURL = "about:blank"

// Tab is the metadata kept for one embedded content surface.
// Back/forward capability lives on the surface (see port.Surface.History).
type Tab struct {
	ID        TabID
	URL       string
	Title     string
	IsLoading bool
	LoadState LoadState
	LastError string
	CreatedAt time.Time
}

// NewTab creates tab metadata in the created state.
func NewTab(id TabID, now time.Time) *Tab {
	return &Tab{
		ID:        id,
		URL:       BlankURL,
		LoadState: LoadStateCreated,
		CreatedAt: now,
	}
}

// BeginLoading enters the loading state. Re-entrant for every navigation.
func (t *Tab) BeginLoading() {
	t.IsLoading = true
	t.LoadState = LoadStateLoading
	t.LastError = ""
}

// FinishLoading marks a successful load and records the committed URL.
func (t *Tab) FinishLoading(url string) {
	t.IsLoading = false
	t.LoadState = LoadStateLoaded
	if url != "" {
		t.URL = url
	}
}

// FailLoading marks a failed load. The URL is left untouched.
func (t *Tab) FailLoading(err error) {
	t.IsLoading = false
	t.LoadState = LoadStateFailed
	if err != nil {
		t.LastError = err.Error()
	}
}

// StopLoading ends loading without changing the load outcome.
func (t *Tab) StopLoading() {
	t.IsLoading = false
	if t.LoadState == LoadStateLoading {
		t.LoadState = LoadStateLoaded
	}
}

// MarkCrashed records a content process crash.
func (t *Tab) MarkCrashed() {
	t.IsLoading = false
	t.LoadState = LoadStateCrashed
}

// DisplayTitle returns the title, falling back to URL or "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" && t.URL != BlankURL {
		return t.URL
	}
	return "New Tab"
}

// Snapshot returns an immutable copy of the tab for consumers.
func (t *Tab) Snapshot(active bool) TabSnapshot {
	return TabSnapshot{
		ID:        t.ID,
		URL:       t.URL,
		Title:     t.Title,
		IsLoading: t.IsLoading,
		LoadState: t.LoadState,
		Active:    active,
		CreatedAt: t.CreatedAt,
	}
}

// TabSnapshot is a value copy of a tab handed out across package boundaries.
type TabSnapshot struct {
	ID        TabID     `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	IsLoading bool      `json:"is_loading"`
	LoadState LoadState `json:"load_state"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

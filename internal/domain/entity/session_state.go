package entity

import "time"

// SessionID identifies one run of the application.
type SessionID string

// SessionStateVersion is the current schema version for session state.
// Increment when making breaking changes to the serialization format.
const SessionStateVersion = 1

// SessionState is a snapshot of the open tabs, serialized to JSON for storage.
type SessionState struct {
	Version        int           `json:"version"`
	SessionID      SessionID     `json:"session_id"`
	Tabs           []TabSnapshot `json:"tabs"`
	ActiveTabIndex int           `json:"active_tab_index"`
	SavedAt        time.Time     `json:"saved_at"`
}

// NewSessionState builds a snapshot from tab snapshots in display order.
func NewSessionState(sessionID SessionID, tabs []TabSnapshot, now time.Time) *SessionState {
	state := &SessionState{
		Version:        SessionStateVersion,
		SessionID:      sessionID,
		Tabs:           make([]TabSnapshot, 0, len(tabs)),
		ActiveTabIndex: -1,
		SavedAt:        now,
	}
	for i, tab := range tabs {
		if tab.Active {
			state.ActiveTabIndex = i
		}
		state.Tabs = append(state.Tabs, tab)
	}
	return state
}

// RestorableURLs returns the URLs worth reopening, skipping blank tabs.
func (s *SessionState) RestorableURLs() []string {
	if s == nil {
		return nil
	}
	urls := make([]string, 0, len(s.Tabs))
	for _, tab := range s.Tabs {
		if tab.URL == "" || tab.URL == BlankURL {
			continue
		}
		urls = append(urls, tab.URL)
	}
	return urls
}

// SessionInfo summarizes a stored session for listings.
type SessionInfo struct {
	SessionID SessionID
	TabCount  int
	UpdatedAt time.Time
}

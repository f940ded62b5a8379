package entity

// NoTabTitle is reported when a navigation query resolves no tab.
const NoTabTitle = "No Tab"

// NavigationState is what the UI needs to render back/forward/reload controls.
type NavigationState struct {
	CanGoBack    bool   `json:"can_go_back"`
	CanGoForward bool   `json:"can_go_forward"`
	IsLoading    bool   `json:"is_loading"`
	URL          string `json:"url"`
	Title        string `json:"title"`
}

// DefaultNavigationState is returned when no tab resolves.
func DefaultNavigationState() NavigationState {
	return NavigationState{
		URL:   BlankURL,
		Title: NoTabTitle,
	}
}

// HistoryState is a live reading of a surface's back/forward capability.
type HistoryState struct {
	CanGoBack    bool
	CanGoForward bool
}

// NavResult reports whether a history navigation actually happened.
// Hitting the start or end of history is not an error.
type NavResult struct {
	Performed bool `json:"performed"`
}

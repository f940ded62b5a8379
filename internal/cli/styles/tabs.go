package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

const maxTabLabel = 24

// TabBar renders the open browser tabs as a single row.
type TabBar struct {
	theme *Theme
	Tabs  []entity.TabSnapshot
	Width int
}

// NewTabBar creates an empty tab bar.
func NewTabBar(theme *Theme) TabBar {
	return TabBar{theme: theme}
}

// View renders the bar. Labels are numbered from 1 so they match the
// console's /tab shortcut.
func (b TabBar) View() string {
	if len(b.Tabs) == 0 {
		return b.frame(b.theme.Subtle.Render("no tabs"))
	}

	labels := make([]string, 0, len(b.Tabs))
	for i, tab := range b.Tabs {
		style := b.theme.InactiveTab
		if tab.Active {
			style = b.theme.ActiveTab
		}
		labels = append(labels, style.Render(TabLabel(i+1, tab)))
	}

	gap := lipgloss.NewStyle().Foreground(b.theme.Border).Render(" ")
	return b.frame(lipgloss.JoinHorizontal(lipgloss.Top, join(labels, gap)...))
}

func (b TabBar) frame(row string) string {
	style := b.theme.TabBar
	if b.Width > 0 {
		style = style.Width(b.Width)
	}
	return style.Render(row)
}

// TabLabel is the short label of a tab: index, loading marker and title.
func TabLabel(index int, tab entity.TabSnapshot) string {
	name := tab.Title
	if name == "" {
		name = tab.URL
	}
	if name == "" {
		name = entity.BlankURL
	}
	name = truncate(name, maxTabLabel)

	marker := ""
	switch {
	case tab.IsLoading:
		marker = IconSpinner + " "
	case tab.LoadState == entity.LoadStateFailed || tab.LoadState == entity.LoadStateCrashed:
		marker = IconWarning + " "
	}
	return fmt.Sprintf("%d %s%s", index, marker, name)
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

const (
	hoursPerDay = 24
	daysPerWeek = 7
)

// SessionsCLIRenderer renders non-interactive output for the sessions
// subcommands.
type SessionsCLIRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewSessionsCLIRenderer(theme *Theme) *SessionsCLIRenderer {
	return &SessionsCLIRenderer{theme: theme, now: time.Now}
}

func (r *SessionsCLIRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved sessions found.")
}

func (r *SessionsCLIRenderer) RenderList(items []entity.SessionInfo, limit int) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconSessionStack), r.theme.Title.Render("Sessions")))
	if limit > 0 {
		b.WriteString(r.theme.Subtle.Render(fmt.Sprintf(" (showing up to %d)", limit)))
	}
	b.WriteString("\n\n")

	for _, s := range items {
		b.WriteString(r.renderOne(s))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *SessionsCLIRenderer) renderOne(info entity.SessionInfo) string {
	return fmt.Sprintf("%s  %s  %s",
		r.theme.Highlight.Render(string(info.SessionID)),
		r.theme.BadgeMuted.Render(fmt.Sprintf("%d tabs", info.TabCount)),
		r.theme.Subtle.Render(RelativeTime(r.now(), info.UpdatedAt)),
	)
}

func (r *SessionsCLIRenderer) RenderCleared(n int64) string {
	return fmt.Sprintf("%s %d session snapshot(s) deleted.", r.theme.SuccessStyle.Render(IconTrash), n)
}

func (r *SessionsCLIRenderer) RenderDeleted(sessionID entity.SessionID) string {
	return fmt.Sprintf("%s Session %s deleted.",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(string(sessionID)),
	)
}

func (r *SessionsCLIRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

// RelativeTime formats t relative to now ("just now", "5m ago", "3d ago").
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < hoursPerDay*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/hoursPerDay))
	default:
		return t.Format("Jan 2")
	}
}

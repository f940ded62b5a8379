// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/egdesk/taehwa/internal/config"
)

// Base colors of the console. Only the accent is configurable.
const (
	colorBackground = "#101114"
	colorPanel      = "#1b1d22"
	colorChip       = "#2a2d34"
	colorText       = "#e8e9ec"
	colorMuted      = "#8b8f98"
	colorBorder     = "#363a42"
	colorError      = "#ef4444"
	colorWarning    = "#f59e0b"
	colorSuccess    = "#4ade80"

	defaultAccent = "#2F80ED"
)

// Theme holds the colors and styles shared by the console and the CLI
// renderers.
type Theme struct {
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	TabBar      lipgloss.Style
	BadgeMuted  lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style
	StatusBar    lipgloss.Style
}

// NewTheme builds the dark console theme. cfg may be nil; otherwise
// console.accent_color replaces the default accent.
func NewTheme(cfg *config.Config) *Theme {
	accent := defaultAccent
	if cfg != nil && cfg.Console.AccentColor != "" {
		accent = cfg.Console.AccentColor
	}

	t := &Theme{
		Accent: lipgloss.Color(accent),
		Text:   lipgloss.Color(colorText),
		Muted:  lipgloss.Color(colorMuted),
		Border: lipgloss.Color(colorBorder),
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	panel := lipgloss.Color(colorPanel)

	t.Title = fg(t.Text).Bold(true)
	t.Normal = fg(t.Text)
	t.Subtle = fg(t.Muted)
	t.Highlight = fg(t.Accent).Bold(true)
	t.ErrorStyle = fg(lipgloss.Color(colorError))
	t.WarningStyle = fg(lipgloss.Color(colorWarning))
	t.SuccessStyle = fg(lipgloss.Color(colorSuccess))

	t.ActiveTab = fg(lipgloss.Color(colorBackground)).Background(t.Accent).Bold(true).Padding(0, 1)
	t.InactiveTab = fg(t.Muted).Background(panel).Padding(0, 1)
	t.TabBar = lipgloss.NewStyle().
		Background(panel).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)
	t.BadgeMuted = fg(t.Text).Background(lipgloss.Color(colorChip)).Padding(0, 1)

	t.Input = fg(t.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(t.Accent)
	t.StatusBar = fg(t.Muted).Background(panel).Padding(0, 1)
	return t
}

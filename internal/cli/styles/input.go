package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const commandInputLimit = 4096

// NewCommandInput creates the console prompt.
func NewCommandInput(theme *Theme) textinput.Model {
	accent := lipgloss.NewStyle().Foreground(theme.Accent)

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "address, search, !bang query or /command"
	ti.CharLimit = commandInputLimit
	ti.PromptStyle = accent
	ti.Cursor.Style = accent
	ti.TextStyle = theme.Normal
	ti.PlaceholderStyle = theme.Subtle
	return ti
}

// InputBox frames the rendered prompt, using the accent border while focused.
func (t *Theme) InputBox(input string, focused bool) string {
	if focused {
		return t.InputFocused.Render(input)
	}
	return t.Input.Render(input)
}

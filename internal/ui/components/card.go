package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/ui/theme"
)

// Card wraps content in a rounded-border card of content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Heading renders a centered title line of width w.
func Heading(text string, w int) string {
	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(text)
}

package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/ui/theme"
)

// OptionLabels are the letters shown before each option.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders a question's options with a movable cursor. While
// answering, the chosen option is marked. With Reveal set, the correct
// option is green and a wrong choice red.
type MultiChoice struct {
	Options      []string
	Cursor       int
	ChosenIndex  int
	CorrectIndex int
	Reveal       bool
}

// NewMultiChoice creates a selector with the cursor on the chosen option,
// or on the first one when nothing is chosen.
func NewMultiChoice(options []string, chosen, correct int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{
		Options:      options,
		Cursor:       cursor,
		ChosenIndex:  chosen,
		CorrectIndex: correct,
	}
}

// Update moves the cursor.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}
	return m, nil
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}

		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		marker := " "
		if i == m.ChosenIndex {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case m.Reveal && i == m.CorrectIndex:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case m.Reveal && i == m.ChosenIndex:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		case m.Reveal:
			b.WriteString(theme.Muted.Render(line))
		case i == m.ChosenIndex:
			b.WriteString(theme.Chosen.Render(line))
		case i == m.Cursor:
			b.WriteString(theme.Cursor.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// IndexForKey maps "1".."4" and "a".."d" to an option index.
func IndexForKey(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var idx int
	switch {
	case c >= '1' && c <= '9':
		idx = int(c - '1')
	case c >= 'a' && c <= 'z':
		idx = int(c - 'a')
	case c >= 'A' && c <= 'Z':
		idx = int(c - 'A')
	default:
		return 0, false
	}
	if idx >= n {
		return 0, false
	}
	return idx, true
}

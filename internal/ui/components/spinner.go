package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// SpinnerTickMsg advances a Spinner by one frame.
type SpinnerTickMsg time.Time

// Spinner is a small animated busy indicator.
type Spinner struct {
	frame int
}

// Tick schedules the next frame.
func (s Spinner) Tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Advance moves to the next frame.
func (s Spinner) Advance() Spinner {
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s
}

// View renders the current frame.
func (s Spinner) View() string {
	return theme.Cursor.Render(spinnerFrames[s.frame])
}

package screen

import (
	"context"
	"log"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/report"
	"github.com/abhisek/quizbit/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Deps is what every screen may need to drive a quiz.
type Deps struct {
	Ctx        context.Context
	Controller *quiz.Controller
	Topics     []string
	ReportDir  string
	Renderer   report.Renderer
	Logger     *log.Logger
}

// StateChangedMsg is sent when background work has finished changing the
// quiz state. Err is the work's result, if any.
type StateChangedMsg struct {
	Err error
}

// Run wraps blocking work in a command that reports a StateChangedMsg.
func Run(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return StateChangedMsg{Err: fn()}
	}
}

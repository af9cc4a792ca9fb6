// Package loading shows progress while questions are fetched.
package loading

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/layout"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

// Screen is the loading view.
type Screen struct {
	deps    screen.Deps
	spinner components.Spinner
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the loading screen.
func New(deps screen.Deps) *Screen {
	return &Screen{deps: deps}
}

func (s *Screen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *Screen) Title() string {
	return "Loading"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Cancel"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		s.spinner = s.spinner.Advance()
		return s, s.spinner.Tick()
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.deps.Controller.Reset()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	st := s.deps.Controller.State()
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Heading("Preparing your quiz", cw))
	b.WriteString("\n\n")
	b.WriteString(s.spinner.View())
	b.WriteString(" ")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Generating questions about %s...", st.Topic)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("If the AI is unavailable, trivia questions are used instead."))

	return layout.Center(components.Card(b.String(), cw), width)
}

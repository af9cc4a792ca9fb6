// Package review walks through every answered question after the quiz.
package review

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/layout"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

// Screen is the review view. Moving past the last question returns to
// results.
type Screen struct {
	deps   screen.Deps
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the review screen.
func New(deps screen.Deps) *Screen {
	return &Screen{deps: deps}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Review"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "→", Description: "Next"},
		{Key: "←", Description: "Back"},
		{Key: "Esc", Description: "Results"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	st := s.deps.Controller.State()

	switch kmsg.String() {
	case "right", "l", "n", "enter", "tab":
		if st.IsLast() {
			s.dispatch(quiz.SetView{View: quiz.ViewResults})
		} else {
			s.dispatch(quiz.Next{})
		}
	case "left", "h", "p", "shift+tab":
		s.dispatch(quiz.Prev{})
	case "home", "g":
		s.dispatch(quiz.GoTo{Index: 0})
	case "end", "G":
		s.dispatch(quiz.GoTo{Index: st.Total() - 1})
	case "esc", "q":
		s.dispatch(quiz.SetView{View: quiz.ViewResults})
	}
	return s, nil
}

func (s *Screen) dispatch(a quiz.Action) {
	s.errMsg = ""
	if err := s.deps.Controller.Dispatch(a); err != nil {
		s.errMsg = err.Error()
	}
}

func (s *Screen) View(width, height int) string {
	st := s.deps.Controller.State()
	q, ok := st.Current()
	if !ok {
		return ""
	}
	cw := layout.ContentWidth(width)

	answer, answered := st.AnswerFor(q.ID)
	chosen := -1
	if answered {
		chosen = slices.Index(q.Options, answer)
	}
	mc := components.NewMultiChoice(q.Options, chosen, q.CorrectIndex())
	mc.Reveal = true

	var b strings.Builder
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Review  ·  Question %d of %d", st.CurrentIndex+1, st.Total())))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(cw - 4).Render(q.Question))
	b.WriteString("\n\n")
	b.WriteString(mc.View())
	b.WriteString("\n")

	switch {
	case !answered:
		b.WriteString(theme.Incorrect.Render("Not answered"))
	case q.IsCorrect(answer):
		b.WriteString(theme.Correct.Render("Your answer: " + answer))
	default:
		b.WriteString(theme.Incorrect.Render("Your answer: " + answer))
	}
	b.WriteString("\n")
	b.WriteString(theme.Correct.Render("Correct answer: " + q.CorrectAnswer))
	if q.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(cw - 4).Render(q.Description))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}

	return layout.Center(components.Card(b.String(), cw), width)
}

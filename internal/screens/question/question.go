// Package question is the screen where the quiz is answered.
package question

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

// Screen shows one question at a time. Moving forward is only possible
// once the current question has an answer; moving forward from the last
// question finishes the quiz.
type Screen struct {
	deps   screen.Deps
	mc     components.MultiChoice
	index  int
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the quiz screen.
func New(deps screen.Deps) *Screen {
	s := &Screen{deps: deps, index: -1}
	s.sync(deps.Controller.State())
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Quiz"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	st := s.deps.Controller.State()
	next := "Next"
	if st.IsLast() {
		next = "Finish"
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "→", Description: next},
		{Key: "←", Description: "Back"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

// sync rebuilds the option selector when the current question changes.
func (s *Screen) sync(st quiz.State) {
	q, ok := st.Current()
	if !ok {
		return
	}
	chosen := -1
	if a, ok := st.AnswerFor(q.ID); ok {
		chosen = slices.Index(q.Options, a)
	}
	if st.CurrentIndex != s.index {
		s.index = st.CurrentIndex
		s.mc = components.NewMultiChoice(q.Options, chosen, q.CorrectIndex())
		return
	}
	s.mc.ChosenIndex = chosen
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	st := s.deps.Controller.State()
	q, ok := st.Current()
	if !ok {
		return s, nil
	}
	s.errMsg = ""

	key := kmsg.String()
	switch key {
	case "esc":
		s.deps.Controller.Reset()
		return s, nil
	case "enter":
		if s.mc.ChosenIndex == s.mc.Cursor {
			return s.next(st)
		}
		return s.answer(q, s.mc.Cursor)
	case "right", "l", "n", "tab":
		return s.next(st)
	case "left", "h", "p", "shift+tab":
		s.dispatch(quiz.Prev{})
		return s, nil
	}

	if idx, ok := components.IndexForKey(key, len(q.Options)); ok {
		s.mc.Cursor = idx
		return s.answer(q, idx)
	}

	s.mc, _ = s.mc.Update(msg)
	return s, nil
}

func (s *Screen) answer(q quiz.Question, idx int) (screen.Screen, tea.Cmd) {
	s.dispatch(quiz.Answer{QuestionID: q.ID, Option: q.Options[idx]})
	return s, nil
}

func (s *Screen) next(st quiz.State) (screen.Screen, tea.Cmd) {
	q, _ := st.Current()
	if _, answered := st.AnswerFor(q.ID); !answered {
		s.errMsg = "Pick an answer first."
		return s, nil
	}
	if !st.IsLast() {
		s.dispatch(quiz.Next{})
		return s, nil
	}

	ctrl := s.deps.Controller
	if err := ctrl.Complete(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, screen.Run(func() error {
		return ctrl.GenerateFeedback(s.deps.Ctx)
	})
}

func (s *Screen) dispatch(a quiz.Action) {
	if err := s.deps.Controller.Dispatch(a); err != nil {
		s.errMsg = err.Error()
	}
	s.sync(s.deps.Controller.State())
}

func (s *Screen) View(width, height int) string {
	st := s.deps.Controller.State()
	q, ok := st.Current()
	if !ok {
		return ""
	}
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Muted.Render(fmt.Sprintf("%s  ·  Question %d of %d", st.Topic, st.CurrentIndex+1, st.Total())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(st.CurrentIndex+1)/float64(st.Total()), false, cw-4).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(cw - 4).Render(q.Question))
	b.WriteString("\n\n")
	b.WriteString(s.mc.View())

	b.WriteString("\n")
	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	} else if _, answered := st.AnswerFor(q.ID); !answered {
		b.WriteString(theme.Hint.Render("Choose an answer to continue."))
	} else if st.IsLast() {
		b.WriteString(theme.Hint.Render("Press → to finish the quiz."))
	} else {
		b.WriteString(theme.Hint.Render("Press → for the next question."))
	}

	return layout.Center(components.Card(b.String(), cw), width)
}

// Package results shows the score, feedback and follow-up actions.
package results

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/report"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/layout"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

// exportDoneMsg reports the outcome of writing a report file.
type exportDoneMsg struct {
	Path string
	Err  error
}

// Screen is the results view.
type Screen struct {
	deps      screen.Deps
	menu      components.Menu
	spinner   components.Spinner
	exporting bool
	notice    string
	noticeErr bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the results screen.
func New(deps screen.Deps) *Screen {
	s := &Screen{deps: deps}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Review answers", Action: s.review},
		{Label: "Export report", Action: s.export},
		{Label: "New quiz", Action: s.newQuiz},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *Screen) Title() string {
	return "Results"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "r", Description: "Review"},
		{Key: "e", Description: "Export"},
		{Key: "n", Description: "New quiz"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		s.spinner = s.spinner.Advance()
		if s.deps.Controller.State().Loading || s.exporting {
			return s, s.spinner.Tick()
		}
		return s, nil

	case exportDoneMsg:
		s.exporting = false
		if msg.Err != nil {
			s.notice = "Export failed: " + msg.Err.Error()
			s.noticeErr = true
		} else {
			s.notice = "Report saved to " + msg.Path
			s.noticeErr = false
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return s, s.review()
		case "e":
			return s, s.export()
		case "n":
			return s, s.newQuiz()
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) review() tea.Cmd {
	if err := s.deps.Controller.Dispatch(quiz.SetView{View: quiz.ViewReview}); err != nil {
		s.notice, s.noticeErr = err.Error(), true
	}
	return nil
}

func (s *Screen) newQuiz() tea.Cmd {
	s.deps.Controller.Reset()
	return nil
}

func (s *Screen) export() tea.Cmd {
	if s.exporting {
		return nil
	}
	renderer := s.deps.Renderer
	if renderer == nil {
		renderer = &report.PDFRenderer{}
	}
	r := report.FromState(s.deps.Controller.State(), time.Now())
	dir := s.deps.ReportDir

	s.exporting = true
	s.notice = ""
	return tea.Batch(s.spinner.Tick(), func() tea.Msg {
		path, err := report.Export(dir, r, renderer)
		return exportDoneMsg{Path: path, Err: err}
	})
}

func (s *Screen) View(width, height int) string {
	st := s.deps.Controller.State()
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Heading("Quiz complete!", cw-4))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw - 4).Render(st.Topic))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(cw - 4).Align(lipgloss.Center).Render(
		fmt.Sprintf("You scored %d / %d", st.Score, st.Total())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", st.Percent()/100, true, cw-4).View())
	b.WriteString("\n\n")

	switch {
	case st.Loading:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render("Writing your feedback..."))
	case st.Feedback != "":
		b.WriteString(theme.Body.Width(cw - 4).Render(st.Feedback))
	}
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	switch {
	case s.exporting:
		b.WriteString("\n" + s.spinner.View() + " " + theme.Hint.Render("Exporting report..."))
	case s.notice != "" && s.noticeErr:
		b.WriteString("\n" + theme.ErrorText.Render(s.notice))
	case s.notice != "":
		b.WriteString("\n" + theme.Correct.Render(s.notice))
	}

	return layout.Center(components.Card(b.String(), cw), width)
}

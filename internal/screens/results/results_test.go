package results

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/report"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/ui/components"
)

type stubSource struct{}

func (stubSource) Questions(context.Context, string, int) ([]quiz.Question, error) {
	return []quiz.Question{
		{ID: 0, Question: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo", "Bern"}, CorrectAnswer: "Paris"},
		{ID: 1, Question: "2 + 2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
	}, nil
}

type stubFeedback struct{}

func (stubFeedback) Feedback(context.Context, int, int, string, []quiz.Question) string {
	return "Solid geography."
}

func finishedController(t *testing.T) *quiz.Controller {
	t.Helper()
	ctrl := quiz.NewController(quiz.NewStore(), stubSource{}, stubFeedback{})
	require.NoError(t, ctrl.SelectTopic(context.Background(), "Geography"))
	require.NoError(t, ctrl.Dispatch(quiz.Answer{QuestionID: 0, Option: "Paris"}))
	require.NoError(t, ctrl.Dispatch(quiz.Next{}))
	require.NoError(t, ctrl.Dispatch(quiz.Answer{QuestionID: 1, Option: "5"}))
	require.NoError(t, ctrl.Finish(context.Background()))
	return ctrl
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestResultsScreen_ShowsScoreAndFeedback(t *testing.T) {
	ctrl := finishedController(t)
	s := New(screen.Deps{Ctx: context.Background(), Controller: ctrl})

	view := s.View(80, 30)
	assert.Contains(t, view, "1 / 2")
	assert.Contains(t, view, "Solid geography.")
}

func TestResultsScreen_ReviewKey(t *testing.T) {
	ctrl := finishedController(t)
	s := New(screen.Deps{Ctx: context.Background(), Controller: ctrl})

	s.Update(keyPress('r'))

	st := ctrl.State()
	assert.Equal(t, quiz.ViewReview, st.View)
	assert.Equal(t, 0, st.CurrentIndex)
}

func TestResultsScreen_NewQuizResets(t *testing.T) {
	ctrl := finishedController(t)
	s := New(screen.Deps{Ctx: context.Background(), Controller: ctrl})

	s.Update(keyPress('n'))

	assert.Equal(t, quiz.NewState(), ctrl.State())
}

func TestResultsScreen_Export(t *testing.T) {
	ctrl := finishedController(t)
	dir := t.TempDir()
	s := New(screen.Deps{
		Ctx:        context.Background(),
		Controller: ctrl,
		ReportDir:  dir,
		Renderer:   &report.MarkdownRenderer{},
	})

	_, cmd := s.Update(keyPress('e'))
	require.NotNil(t, cmd)
	assert.True(t, s.exporting)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected a batch of commands")

	var done *exportDoneMsg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if m, ok := c().(exportDoneMsg); ok {
			done = &m
		}
	}
	require.NotNil(t, done)
	require.NoError(t, done.Err)
	assert.Equal(t, filepath.Join(dir, "quiz-report-geography.md"), done.Path)

	s.Update(*done)
	assert.False(t, s.exporting)
	assert.Contains(t, s.View(80, 30), "Report saved to")

	data, err := os.ReadFile(done.Path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Quiz Report"))
}

func TestResultsScreen_SpinnerStopsWhenIdle(t *testing.T) {
	ctrl := finishedController(t)
	s := New(screen.Deps{Ctx: context.Background(), Controller: ctrl})

	_, cmd := s.Update(components.SpinnerTickMsg{})
	assert.Nil(t, cmd)
}

package review

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
)

type stubSource struct{}

func (stubSource) Questions(context.Context, string, int) ([]quiz.Question, error) {
	return []quiz.Question{
		{ID: 0, Question: "Largest planet?", Options: []string{"Mars", "Jupiter", "Venus", "Earth"}, CorrectAnswer: "Jupiter", Description: "Jupiter is a gas giant."},
		{ID: 1, Question: "Closest star?", Options: []string{"Sirius", "Vega", "The Sun", "Rigel"}, CorrectAnswer: "The Sun"},
	}, nil
}

type stubFeedback struct{}

func (stubFeedback) Feedback(context.Context, int, int, string, []quiz.Question) string { return "ok" }

func reviewScreen(t *testing.T) (*Screen, *quiz.Controller) {
	t.Helper()
	ctrl := quiz.NewController(quiz.NewStore(), stubSource{}, stubFeedback{})
	steps := []func() error{
		func() error { return ctrl.SelectTopic(context.Background(), "Space") },
		func() error { return ctrl.Dispatch(quiz.Answer{QuestionID: 0, Option: "Mars"}) },
		func() error { return ctrl.Dispatch(quiz.Next{}) },
		func() error { return ctrl.Finish(context.Background()) },
		func() error { return ctrl.Dispatch(quiz.SetView{View: quiz.ViewReview}) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return New(screen.Deps{Ctx: context.Background(), Controller: ctrl}), ctrl
}

func TestReviewScreen_ShowsAnswersAndExplanation(t *testing.T) {
	s, _ := reviewScreen(t)

	view := s.View(80, 30)
	for _, want := range []string{"Your answer: Mars", "Correct answer: Jupiter", "Jupiter is a gas giant."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReviewScreen_Unanswered(t *testing.T) {
	s, ctrl := reviewScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if ctrl.State().CurrentIndex != 1 {
		t.Fatalf("index = %d, want 1", ctrl.State().CurrentIndex)
	}
	if !strings.Contains(s.View(80, 30), "Not answered") {
		t.Error("expected the unanswered marker")
	}
}

func TestReviewScreen_NextOnLastReturnsToResults(t *testing.T) {
	s, ctrl := reviewScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	if ctrl.State().View != quiz.ViewResults {
		t.Errorf("view = %s, want results", ctrl.State().View)
	}
}

func TestReviewScreen_EscReturnsToResults(t *testing.T) {
	s, ctrl := reviewScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if ctrl.State().View != quiz.ViewResults {
		t.Errorf("view = %s, want results", ctrl.State().View)
	}
}

package topic

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
)

type stubSource struct {
	err error
}

func (s stubSource) Questions(context.Context, string, int) ([]quiz.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []quiz.Question{{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}}, nil
}

type stubFeedback struct{}

func (stubFeedback) Feedback(context.Context, int, int, string, []quiz.Question) string { return "" }

func testScreen(src stubSource) (*Screen, *quiz.Controller) {
	ctrl := quiz.NewController(quiz.NewStore(), src, stubFeedback{})
	return New(screen.Deps{
		Ctx:        context.Background(),
		Controller: ctrl,
		Topics:     []string{"Wellness", "Tech Trends"},
	}), ctrl
}

func TestTopicScreen_Title(t *testing.T) {
	s, _ := testScreen(stubSource{})
	if s.Title() != "Choose a Topic" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestTopicScreen_SelectStartsLoading(t *testing.T) {
	s, ctrl := testScreen(stubSource{})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	if st := ctrl.State(); st.View != quiz.ViewLoading || st.Topic != "Wellness" {
		t.Fatalf("expected loading Wellness, got %s %q", st.View, st.Topic)
	}

	msg := cmd()
	if m, ok := msg.(screen.StateChangedMsg); !ok || m.Err != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	if ctrl.State().View != quiz.ViewQuiz {
		t.Errorf("expected quiz view after fetch, got %s", ctrl.State().View)
	}
}

func TestTopicScreen_CustomTopic(t *testing.T) {
	s, ctrl := testScreen(stubSource{})

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.typing {
		t.Fatal("expected custom topic input")
	}

	s.input.Model.SetValue("Volcanoes")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	if ctrl.State().Topic != "Volcanoes" {
		t.Errorf("topic = %q", ctrl.State().Topic)
	}
}

func TestTopicScreen_EmptyCustomTopicIgnored(t *testing.T) {
	s, ctrl := testScreen(stubSource{})
	s.typing = true

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for an empty topic")
	}
	if ctrl.State().View != quiz.ViewTopic {
		t.Errorf("view = %s", ctrl.State().View)
	}
}

func TestTopicScreen_FetchErrorShown(t *testing.T) {
	s, ctrl := testScreen(stubSource{err: errors.New("offline")})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	cmd()

	st := ctrl.State()
	if st.View != quiz.ViewTopic || st.Error == "" {
		t.Fatalf("expected topic view with error, got %s %q", st.View, st.Error)
	}
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty view")
	}
}

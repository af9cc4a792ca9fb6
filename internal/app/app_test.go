package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
)

type stubSource struct{}

func (stubSource) Questions(context.Context, string, int) ([]quiz.Question, error) {
	return []quiz.Question{
		{ID: 0, Question: "Q1?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{ID: 1, Question: "Q2?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"},
	}, nil
}

type stubFeedback struct{}

func (stubFeedback) Feedback(context.Context, int, int, string, []quiz.Question) string { return "ok" }

func testModel(topic string) AppModel {
	ctrl := quiz.NewController(quiz.NewStore(), stubSource{}, stubFeedback{})
	return newAppModel(context.Background(), Options{
		Controller:   ctrl,
		Topics:       []string{"Wellness"},
		InitialTopic: topic,
	})
}

func TestAppModel_StartsOnTopicScreen(t *testing.T) {
	m := testModel("")
	m.Init()

	if got := m.router.Current(); got != quiz.ViewTopic {
		t.Fatalf("view = %s, want topic", got)
	}
	if m.router.Active().Title() != "Choose a Topic" {
		t.Errorf("title = %q", m.router.Active().Title())
	}
}

func TestAppModel_FollowsControllerView(t *testing.T) {
	m := testModel("")
	m.Init()

	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = updated.(AppModel)
	if m.router.Current() != quiz.ViewLoading {
		t.Fatalf("view = %s, want loading", m.router.Current())
	}
	if cmd == nil {
		t.Fatal("expected fetch command")
	}

	if err := m.ctrl.SelectTopic(context.Background(), "x"); err != quiz.ErrFetchInFlight {
		t.Errorf("expected ErrFetchInFlight, got %v", err)
	}

	updated, _ = m.Update(screen.StateChangedMsg{})
	m = updated.(AppModel)
	// The fetch has not run yet, so the view is still loading.
	if m.router.Current() != quiz.ViewLoading {
		t.Errorf("view = %s, want loading", m.router.Current())
	}
}

func TestAppModel_InitialTopicSkipsSelection(t *testing.T) {
	m := testModel("Space")
	m.Init()

	if m.ctrl.State().View != quiz.ViewLoading {
		t.Fatalf("view = %s, want loading", m.ctrl.State().View)
	}
	if m.router.Current() != quiz.ViewLoading {
		t.Errorf("router view = %s, want loading", m.router.Current())
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel("")
	m.Init()

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestHeaderStatus(t *testing.T) {
	qs, _ := stubSource{}.Questions(context.Background(), "", 2)

	tests := []struct {
		name  string
		state quiz.State
		want  string
	}{
		{"topic", quiz.NewState(), ""},
		{"quiz", quiz.State{View: quiz.ViewQuiz, Questions: qs, CurrentIndex: 1}, "Q 2/2"},
		{"review", quiz.State{View: quiz.ViewReview, Questions: qs}, "Q 1/2"},
		{"results", quiz.State{View: quiz.ViewResults, Questions: qs, Score: 1}, "Score 1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headerStatus(tt.state); got != tt.want {
				t.Errorf("headerStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppModel_ViewTracksSize(t *testing.T) {
	m := testModel("")
	m.Init()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = updated.(AppModel)

	if m.width != 80 || m.height != 30 {
		t.Fatalf("size = %dx%d, want 80x30", m.width, m.height)
	}
	m.View()
}

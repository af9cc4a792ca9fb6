package loading

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/ui/components"
)

type blockingSource struct{}

func (blockingSource) Questions(ctx context.Context, _ string, _ int) ([]quiz.Question, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type stubFeedback struct{}

func (stubFeedback) Feedback(context.Context, int, int, string, []quiz.Question) string { return "" }

func TestLoadingScreen_EscCancels(t *testing.T) {
	ctrl := quiz.NewController(quiz.NewStore(), blockingSource{}, stubFeedback{})
	fetch, err := ctrl.BeginTopic(context.Background(), "Space")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- fetch() }()

	s := New(screen.Deps{Ctx: context.Background(), Controller: ctrl})
	if !strings.Contains(s.View(80, 24), "Space") {
		t.Error("expected the topic in the loading view")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if err := <-done; !errors.Is(err, quiz.ErrStale) {
		t.Errorf("expected ErrStale, got %v", err)
	}
	if ctrl.State().View != quiz.ViewTopic {
		t.Errorf("expected topic view, got %s", ctrl.State().View)
	}
}

func TestLoadingScreen_SpinnerKeepsTicking(t *testing.T) {
	ctrl := quiz.NewController(quiz.NewStore(), blockingSource{}, stubFeedback{})
	s := New(screen.Deps{Ctx: context.Background(), Controller: ctrl})

	if s.Init() == nil {
		t.Fatal("expected a tick command from Init")
	}
	_, cmd := s.Update(components.SpinnerTickMsg{})
	if cmd == nil {
		t.Error("expected another tick")
	}
}

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbit/internal/quiz"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("QUIZBIT_QUESTION_COUNT", "8")
	t.Setenv("QUIZBIT_REPORT_FORMAT", "html")
	t.Setenv("QUIZBIT_REPORT_DIR", "/tmp/reports")
	t.Setenv("QUIZBIT_TRIVIA_URL", "http://localhost:9999/api.php")

	s, err := settingsFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Count != 8 || s.Format != "html" || s.ReportDir != "/tmp/reports" {
		t.Errorf("unexpected settings: %+v", s)
	}
	if s.TriviaURL != "http://localhost:9999/api.php" {
		t.Errorf("TriviaURL = %q", s.TriviaURL)
	}
}

func TestSettingsFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"QUIZBIT_QUESTION_COUNT", "QUIZBIT_REPORT_FORMAT", "QUIZBIT_REPORT_DIR"} {
		t.Setenv(k, "")
	}
	s, err := settingsFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Count != quiz.DefaultQuestionCount || s.Format != "pdf" || s.ReportDir != "." {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestSettingsFromEnv_BadCount(t *testing.T) {
	for _, v := range []string{"zero", "0", "-3", "51"} {
		t.Setenv("QUIZBIT_QUESTION_COUNT", v)
		if _, err := settingsFromEnv(); err == nil {
			t.Errorf("expected error for %q", v)
		}
	}
}

func TestApplyFlags_CountBounds(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{nil, quiz.DefaultQuestionCount, false},
		{[]string{"--count=12"}, 12, false},
		{[]string{"--count=50"}, 50, false},
		{[]string{"--count=0"}, 0, true},
		{[]string{"--count=-2"}, 0, true},
		{[]string{"--count=51"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			c := &cobra.Command{Use: "test"}
			c.Flags().IntP("count", "n", 5, "")
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			s := settings{Count: quiz.DefaultQuestionCount}
			err := s.applyFlags(c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, count %d accepted", s.Count)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Count != tt.want {
				t.Errorf("Count = %d, want %d", s.Count, tt.want)
			}
		})
	}
}

type stubSource struct{}

func (stubSource) Questions(context.Context, string, int) ([]quiz.Question, error) {
	return []quiz.Question{
		{ID: 0, Question: "Q1?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", Description: "First."},
		{ID: 1, Question: "Q2?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"},
		{ID: 2, Question: "Q3?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "c"},
	}, nil
}

type stubFeedback struct{}

func (stubFeedback) Feedback(context.Context, int, int, string, []quiz.Question) string { return "ok" }

func loadedController(t *testing.T) *quiz.Controller {
	t.Helper()
	ctrl := quiz.NewController(quiz.NewStore(), stubSource{}, stubFeedback{})
	if err := ctrl.SelectTopic(context.Background(), "Test"); err != nil {
		t.Fatalf("select topic: %v", err)
	}
	return ctrl
}

func TestAnswerAll(t *testing.T) {
	ctrl := loadedController(t)

	if err := answerAll(ctrl, "A, c,"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := ctrl.State()
	if st.Answers[0] != "a" || st.Answers[1] != "c" {
		t.Errorf("answers = %v", st.Answers)
	}
	if _, ok := st.Answers[2]; ok {
		t.Error("blank entry should leave question unanswered")
	}
	if st.Score != 1 || !st.IsLast() {
		t.Errorf("score %d last %v", st.Score, st.IsLast())
	}
}

func TestAnswerAll_Errors(t *testing.T) {
	tests := []struct {
		name string
		list string
	}{
		{"too many", "a,b,c,d"},
		{"bad letter", "a,z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := answerAll(loadedController(t), tt.list); err == nil {
				t.Errorf("expected error for %q", tt.list)
			}
		})
	}
}

func TestPrintQuestions_MarksAfterFinish(t *testing.T) {
	ctrl := loadedController(t)
	if err := answerAll(ctrl, "b,b"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := ctrl.Finish(context.Background()); err != nil {
		t.Fatalf("finish: %v", err)
	}

	var buf bytes.Buffer
	printQuestions(&buf, ctrl.State())
	out := buf.String()

	for _, want := range []string{"Topic: Test", "✓ A. a", "✗ B. b", "First.", "Not answered"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

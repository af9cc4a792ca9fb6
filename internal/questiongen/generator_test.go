package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizbit/internal/llm"
	"github.com/abhisek/quizbit/internal/quiz"
)

type fakeFallback struct {
	calls  int
	topic  string
	count  int
	result []quiz.Question
	err    error
}

func (f *fakeFallback) Questions(_ context.Context, topic string, count int) ([]quiz.Question, error) {
	f.calls++
	f.topic = topic
	f.count = count
	return f.result, f.err
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.Retry.InitialWait = time.Millisecond
	return cfg
}

func questionSetJSON(n int) json.RawMessage {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{
			"question": "Question %d?",
			"options": ["alpha", "beta", "gamma", "delta"],
			"correctAnswer": "beta",
			"description": "beta is right"
		}`, i)
	}
	return json.RawMessage("[" + strings.Join(items, ",") + "]")
}

func fallbackQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: 5, Question: "Fallback?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{ID: 9, Question: "Fallback 2?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "d"},
	}
}

func TestQuestions_FirstAttempt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON(3)})
	fb := &fakeFallback{}
	gen := New(mock, fb, fastConfig())

	qs, err := gen.Questions(context.Background(), "Space", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.ID != i {
			t.Errorf("question %d has id %d", i, q.ID)
		}
		if q.CorrectAnswer != "beta" || q.Description != "beta is right" {
			t.Errorf("unexpected question: %+v", q)
		}
	}
	if fb.calls != 0 {
		t.Error("fallback should not be called on success")
	}

	req := mock.Requests()[0]
	if req.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", req.Temperature)
	}
	if req.Schema != QuestionSetSchema {
		t.Error("request should carry the question set schema")
	}
	if !strings.Contains(req.Messages[0].Content, `"Space"`) || !strings.Contains(req.Messages[0].Content, "exactly 3") {
		t.Errorf("prompt missing topic or count: %q", req.Messages[0].Content)
	}
}

func TestQuestions_SucceedsOnThirdAttempt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}},
		llm.MockResponse{Content: json.RawMessage(`not json`)},
		llm.MockResponse{Content: questionSetJSON(2)},
	)
	fb := &fakeFallback{}
	gen := New(mock, fb, fastConfig())

	qs, err := gen.Questions(context.Background(), "Space", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 calls, got %d", mock.CallCount())
	}
	if fb.calls != 0 {
		t.Error("fallback should not be called")
	}
	if qs[0].ID != 0 || qs[1].ID != 1 {
		t.Errorf("unexpected ids: %d, %d", qs[0].ID, qs[1].ID)
	}
}

func TestQuestions_FallbackAfterExhaustion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("boom")},
		llm.MockResponse{Err: errors.New("boom")},
		llm.MockResponse{Err: errors.New("boom")},
	)
	fb := &fakeFallback{result: fallbackQuestions()}
	gen := New(mock, fb, fastConfig())

	qs, err := gen.Questions(context.Background(), "Wellness", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 attempts, got %d", mock.CallCount())
	}
	if fb.calls != 1 {
		t.Fatalf("expected exactly one fallback call, got %d", fb.calls)
	}
	if fb.topic != "Wellness" || fb.count != 7 {
		t.Errorf("fallback got topic %q count %d", fb.topic, fb.count)
	}
	if qs[0].ID != 0 || qs[1].ID != 1 {
		t.Errorf("fallback ids not renumbered: %d, %d", qs[0].ID, qs[1].ID)
	}
}

func TestQuestions_InvalidContentCountsAsFailure(t *testing.T) {
	badAnswer := json.RawMessage(`[{"question":"Q?","options":["a","b","c","d"],"correctAnswer":"e","description":""}]`)
	dupOptions := json.RawMessage(`[{"question":"Q?","options":["a","A","c","d"],"correctAnswer":"a","description":""}]`)
	threeOptions := json.RawMessage(`[{"question":"Q?","options":["a","b","c"],"correctAnswer":"a","description":""}]`)

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: badAnswer},
		llm.MockResponse{Content: dupOptions},
		llm.MockResponse{Content: threeOptions},
	)
	fb := &fakeFallback{result: fallbackQuestions()}
	gen := New(mock, fb, fastConfig())

	if _, err := gen.Questions(context.Background(), "Go", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 attempts, got %d", mock.CallCount())
	}
	if fb.calls != 1 {
		t.Errorf("expected fallback, got %d calls", fb.calls)
	}
}

func TestQuestions_NoFallback(t *testing.T) {
	cfg := fastConfig()
	cfg.Retry.MaxAttempts = 1
	gen := New(llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}), nil, cfg)

	_, err := gen.Questions(context.Background(), "Go", 1)
	var re *llm.RetryError
	if !errors.As(err, &re) {
		t.Fatalf("expected RetryError, got %v", err)
	}
}

func TestQuestions_FallbackFails(t *testing.T) {
	cfg := fastConfig()
	cfg.Retry.MaxAttempts = 1
	fbErr := errors.New("opentdb down")
	gen := New(llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}), &fakeFallback{err: fbErr}, cfg)

	_, err := gen.Questions(context.Background(), "Go", 1)
	if !errors.Is(err, fbErr) {
		t.Fatalf("expected fallback error in chain, got %v", err)
	}
}

func TestQuestions_CanceledSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb := &fakeFallback{result: fallbackQuestions()}
	gen := New(llm.NewMockProvider(), fb, fastConfig())

	if _, err := gen.Questions(ctx, "Go", 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fb.calls != 0 {
		t.Error("fallback must not run after cancellation")
	}
}

func TestQuestions_TruncatesExtra(t *testing.T) {
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON(5)}), nil, fastConfig())

	qs, err := gen.Questions(context.Background(), "Go", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", cfg.Temperature)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.Backoff(0) != 2*time.Second || cfg.Retry.Backoff(1) != 4*time.Second {
		t.Errorf("unexpected backoff: %v, %v", cfg.Retry.Backoff(0), cfg.Retry.Backoff(1))
	}
	names := []string{"structural", "options", "answer", "count"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

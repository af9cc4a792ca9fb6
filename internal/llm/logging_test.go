package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizbit/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"message":"hi"}`),
		Usage:   Usage{InputTokens: 7, OutputTokens: 3},
	})
	p := WithLogging(mock, "mock", repo)

	ctx := WithAttemptID(WithPurpose(context.Background(), PurposeFeedback), "attempt-1")
	_, err := p.Generate(ctx, Request{
		System:   "be kind",
		Messages: []Message{{Role: RoleUser, Content: "score 3/5"}},
		Schema:   &Schema{Name: "s", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "feedback" || e.AttemptID != "attempt-1" || e.Provider != "mock" {
		t.Errorf("unexpected labels %+v", e)
	}
	if !e.Success || e.InputTokens != 7 || e.OutputTokens != 3 {
		t.Errorf("unexpected usage %+v", e)
	}
	for _, want := range []string{"[system]", "be kind", "[user]", "score 3/5", "[schema: s]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"message":"hi"}` {
		t.Errorf("unexpected response body %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "mock", repo)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Errorf("expected purpose 'unknown', got %q", repo.events[0].Purpose)
	}
}

func TestNewProvider_MockSkipsLoggingWithoutRepo(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("expected bare *MockProvider, got %T", p)
	}

	p, err = NewProvider(context.Background(), Config{Provider: "mock"}, &recordingRepo{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*LoggingProvider); !ok {
		t.Fatalf("expected *LoggingProvider, got %T", p)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

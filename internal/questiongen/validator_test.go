package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/quizbit/internal/quiz"
)

func validQuestion() quiz.Question {
	return quiz.Question{
		Question:      "Which planet is largest?",
		Options:       []string{"Mars", "Jupiter", "Venus", "Earth"},
		CorrectAnswer: "Jupiter",
		Description:   "Jupiter is the largest planet.",
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		mutate    func(q *quiz.Question)
		wantFail  bool
	}{
		{"structural ok", &StructuralValidator{}, func(q *quiz.Question) {}, false},
		{"structural empty text", &StructuralValidator{}, func(q *quiz.Question) { q.Question = " " }, true},
		{"structural long text", &StructuralValidator{}, func(q *quiz.Question) { q.Question = strings.Repeat("x", 501) }, true},
		{"structural long description", &StructuralValidator{}, func(q *quiz.Question) { q.Description = strings.Repeat("x", 1001) }, true},
		{"options ok", &OptionsValidator{}, func(q *quiz.Question) {}, false},
		{"options five", &OptionsValidator{}, func(q *quiz.Question) { q.Options = append(q.Options, "Pluto") }, true},
		{"options blank", &OptionsValidator{}, func(q *quiz.Question) { q.Options[2] = "  " }, true},
		{"options case duplicate", &OptionsValidator{}, func(q *quiz.Question) { q.Options[0] = "jupiter " }, true},
		{"answer ok", &AnswerValidator{}, func(q *quiz.Question) {}, false},
		{"answer missing", &AnswerValidator{}, func(q *quiz.Question) { q.CorrectAnswer = "Saturn" }, true},
		{"answer case differs", &AnswerValidator{}, func(q *quiz.Question) { q.CorrectAnswer = "jupiter" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			verr := tt.validator.Validate([]quiz.Question{q}, Input{Topic: "Space", Count: 1})
			if tt.wantFail && verr == nil {
				t.Fatal("expected failure")
			}
			if !tt.wantFail && verr != nil {
				t.Fatalf("unexpected failure: %v", verr)
			}
			if verr != nil && verr.Validator != tt.validator.Name() {
				t.Errorf("validator name %q, want %q", verr.Validator, tt.validator.Name())
			}
		})
	}
}

func TestCountValidator(t *testing.T) {
	v := &CountValidator{}
	if verr := v.Validate(nil, Input{Count: 3}); verr == nil {
		t.Error("empty set should fail")
	}
	two := []quiz.Question{validQuestion(), validQuestion()}
	if verr := v.Validate(two, Input{Count: 1}); verr == nil {
		t.Error("more than requested should fail")
	}
	if verr := v.Validate(two, Input{Count: 3}); verr != nil {
		t.Errorf("fewer than requested should pass: %v", verr)
	}
}

func TestValidationError_Error(t *testing.T) {
	whole := &ValidationError{Validator: "count", Index: -1, Message: "no questions returned"}
	if got := whole.Error(); got != `validator "count": no questions returned` {
		t.Errorf("got %q", got)
	}
	one := &ValidationError{Validator: "options", Index: 1, Message: "option is blank"}
	if got := one.Error(); got != `validator "options": question 2: option is blank` {
		t.Errorf("got %q", got)
	}
}

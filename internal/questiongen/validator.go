package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbit/internal/quiz"
)

// Input is what a question set was generated for.
type Input struct {
	Topic string
	Count int
}

// Validator checks a generated question set. Implementations should be
// stateless and safe for concurrent use.
type Validator interface {
	// Name is a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if the set passes.
	Validate(qs []quiz.Question, in Input) *ValidationError
}

// ValidationError describes why a generated set was rejected.
type ValidationError struct {
	Validator string
	Index     int // offending question, -1 for the whole set
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Index+1, e.Message)
}

// StructuralValidator requires non-empty question text and a length cap on
// text fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []quiz.Question, _ Input) *ValidationError {
	for i, q := range qs {
		if strings.TrimSpace(q.Question) == "" {
			return &ValidationError{Validator: v.Name(), Index: i, Message: "question text is empty"}
		}
		if len(q.Question) > 500 {
			return &ValidationError{Validator: v.Name(), Index: i, Message: "question text exceeds 500 characters"}
		}
		if len(q.Description) > 1000 {
			return &ValidationError{Validator: v.Name(), Index: i, Message: "description exceeds 1000 characters"}
		}
	}
	return nil
}

// OptionsValidator requires exactly four distinct, non-blank options.
// Options that differ only in case or surrounding space count as equal.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(qs []quiz.Question, _ Input) *ValidationError {
	for i, q := range qs {
		if len(q.Options) != quiz.OptionCount {
			return &ValidationError{
				Validator: v.Name(),
				Index:     i,
				Message:   fmt.Sprintf("expected %d options, got %d", quiz.OptionCount, len(q.Options)),
			}
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			norm := strings.ToLower(strings.TrimSpace(o))
			if norm == "" {
				return &ValidationError{Validator: v.Name(), Index: i, Message: "option is blank"}
			}
			if seen[norm] {
				return &ValidationError{Validator: v.Name(), Index: i, Message: fmt.Sprintf("duplicate option %q", o)}
			}
			seen[norm] = true
		}
	}
	return nil
}

// AnswerValidator requires the correct answer to be one of the options,
// matched exactly.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(qs []quiz.Question, _ Input) *ValidationError {
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return &ValidationError{Validator: v.Name(), Index: i, Message: err.Error()}
		}
	}
	return nil
}

// CountValidator requires between one and the requested number of questions.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(qs []quiz.Question, in Input) *ValidationError {
	if len(qs) == 0 {
		return &ValidationError{Validator: v.Name(), Index: -1, Message: "no questions returned"}
	}
	if in.Count > 0 && len(qs) > in.Count {
		return &ValidationError{
			Validator: v.Name(),
			Index:     -1,
			Message:   fmt.Sprintf("asked for %d questions, got %d", in.Count, len(qs)),
		}
	}
	return nil
}

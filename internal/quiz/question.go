package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// ErrInvalidQuestion is wrapped by every Question.Validate failure.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is one multiple-choice item. ID is unique within a question set.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Description   string   `json:"description,omitempty"`
}

// Validate checks the structural invariants: non-empty text, exactly
// OptionCount distinct non-blank options, and a correct answer that appears
// among them exactly once.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: want %d options, got %d", ErrInvalidQuestion, OptionCount, len(q.Options))
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("%w: option %d is blank", ErrInvalidQuestion, i+1)
		}
	}
	if dups := lo.FindDuplicates(q.Options); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate option %q", ErrInvalidQuestion, dups[0])
	}
	if lo.Count(q.Options, q.CorrectAnswer) != 1 {
		return fmt.Errorf("%w: correct answer %q is not one of the options", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.CorrectAnswer
}

// CorrectIndex returns the position of the correct answer in Options, or -1.
func (q Question) CorrectIndex() int {
	return slices.Index(q.Options, q.CorrectAnswer)
}

// Renumber returns a copy of qs with IDs reassigned to 0..len(qs)-1.
func Renumber(qs []Question) []Question {
	return lo.Map(qs, func(q Question, i int) Question {
		q.ID = i
		q.Options = slices.Clone(q.Options)
		return q
	})
}

// Score counts the questions whose recorded answer matches the correct one.
func Score(qs []Question, answers Answers) int {
	return lo.CountBy(qs, func(q Question) bool {
		a, ok := answers[q.ID]
		return ok && q.IsCorrect(a)
	})
}

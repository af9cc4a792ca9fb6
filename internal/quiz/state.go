package quiz

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// View names the screen the quiz is on.
type View string

const (
	ViewTopic   View = "topic"
	ViewLoading View = "loading"
	ViewQuiz    View = "quiz"
	ViewResults View = "results"
	ViewReview  View = "review"
)

// Answers maps a question ID to the option the user picked. A missing key
// means the question is unanswered.
type Answers map[int]string

// State is one quiz attempt. It is only ever changed through Reduce.
type State struct {
	View         View
	Topic        string
	Questions    []Question
	Answers      Answers
	CurrentIndex int

	// Score is derived from Questions and Answers on every change.
	Score int

	Feedback string

	// Loading is set while questions are being fetched and while feedback
	// is being generated.
	Loading bool

	// Error holds the last user-facing failure message.
	Error string
}

// NewState returns the initial state. RESET always returns exactly this.
func NewState() State {
	return State{
		View:    ViewTopic,
		Answers: Answers{},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Answers = maps.Clone(s.Answers)
	out.Questions = lo.Map(s.Questions, func(q Question, _ int) Question {
		q.Options = slices.Clone(q.Options)
		return q
	})
	if s.Questions == nil {
		out.Questions = nil
	}
	return out
}

// Total is the number of questions in the set.
func (s State) Total() int {
	return len(s.Questions)
}

// Current returns the question under CurrentIndex.
func (s State) Current() (Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// IsLast reports whether CurrentIndex points at the final question.
func (s State) IsLast() bool {
	return len(s.Questions) > 0 && s.CurrentIndex == len(s.Questions)-1
}

// AnswerFor returns the recorded answer for question id.
func (s State) AnswerFor(id int) (string, bool) {
	a, ok := s.Answers[id]
	return a, ok
}

// AnsweredCount is the number of questions with a recorded answer.
func (s State) AnsweredCount() int {
	return lo.CountBy(s.Questions, func(q Question) bool {
		_, ok := s.Answers[q.ID]
		return ok
	})
}

// Percent is Score over Total in [0, 100]. An empty set scores 0.
func (s State) Percent() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.Score) * 100 / float64(len(s.Questions))
}

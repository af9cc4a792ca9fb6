package quiz

import (
	"fmt"
	"maps"
	"strings"
)

// Reduce applies a to s and returns the next state. s is never modified. On
// error the returned state is s unchanged.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case StartLoading:
		if s.View != ViewTopic {
			return s, notAllowed(s, a, "")
		}
		topic := strings.TrimSpace(a.Topic)
		if topic == "" {
			return s, fmt.Errorf("%s: %w", a.Name(), ErrEmptyTopic)
		}
		next := s.Clone()
		next.View = ViewLoading
		next.Topic = topic
		next.Loading = true
		next.Error = ""
		return next, nil

	case FetchFailed:
		if s.View != ViewLoading {
			return s, notAllowed(s, a, "")
		}
		next := s.Clone()
		next.View = ViewTopic
		next.Loading = false
		next.Error = a.Message
		return next, nil

	case SetQuestions:
		if s.View != ViewLoading && s.View != ViewTopic {
			return s, notAllowed(s, a, "")
		}
		if len(a.Questions) == 0 {
			return s, fmt.Errorf("%s: %w", a.Name(), ErrNoQuestions)
		}
		seen := make(map[int]bool, len(a.Questions))
		for _, q := range a.Questions {
			if seen[q.ID] {
				return s, fmt.Errorf("%s: %w: %d", a.Name(), ErrDuplicateID, q.ID)
			}
			seen[q.ID] = true
		}
		next := s.Clone()
		next.View = ViewQuiz
		next.Questions = State{Questions: a.Questions}.Clone().Questions
		next.Answers = Answers{}
		next.CurrentIndex = 0
		next.Score = 0
		next.Feedback = ""
		next.Loading = false
		next.Error = ""
		return next, nil

	case Answer:
		if s.View != ViewQuiz {
			return s, notAllowed(s, a, "")
		}
		if !s.hasQuestion(a.QuestionID) {
			return s, fmt.Errorf("%s: %w: %d", a.Name(), ErrUnknownQuestion, a.QuestionID)
		}
		next := s.Clone()
		next.Answers = maps.Clone(s.Answers)
		if next.Answers == nil {
			next.Answers = Answers{}
		}
		next.Answers[a.QuestionID] = a.Option
		next.Score = Score(next.Questions, next.Answers)
		return next, nil

	case Next:
		if s.View != ViewQuiz && s.View != ViewReview {
			return s, notAllowed(s, a, "")
		}
		next := s.Clone()
		if next.CurrentIndex < len(next.Questions)-1 {
			next.CurrentIndex++
		}
		return next, nil

	case Prev:
		if s.View != ViewQuiz && s.View != ViewReview {
			return s, notAllowed(s, a, "")
		}
		next := s.Clone()
		if next.CurrentIndex > 0 {
			next.CurrentIndex--
		}
		return next, nil

	case GoTo:
		if s.View != ViewQuiz && s.View != ViewReview {
			return s, notAllowed(s, a, "")
		}
		if a.Index < 0 || a.Index >= len(s.Questions) {
			return s, fmt.Errorf("%s: %w: %d", a.Name(), ErrIndexOutOfRange, a.Index)
		}
		next := s.Clone()
		next.CurrentIndex = a.Index
		return next, nil

	case Finish:
		if s.View != ViewQuiz {
			return s, notAllowed(s, a, "")
		}
		if !s.IsLast() {
			return s, notAllowed(s, a, "not on the last question")
		}
		// Review starts from the first question.
		next := s.Clone()
		next.View = ViewResults
		next.CurrentIndex = 0
		next.Score = Score(next.Questions, next.Answers)
		next.Loading = true
		return next, nil

	case SetFeedback:
		if s.View != ViewResults && s.View != ViewReview {
			return s, notAllowed(s, a, "")
		}
		next := s.Clone()
		next.Feedback = a.Text
		next.Loading = false
		return next, nil

	case SetView:
		switch {
		case a.View == s.View && (s.View == ViewResults || s.View == ViewReview):
			return s.Clone(), nil
		case s.View == ViewResults && a.View == ViewReview,
			s.View == ViewReview && a.View == ViewResults:
			next := s.Clone()
			next.View = a.View
			return next, nil
		default:
			return s, notAllowed(s, a, fmt.Sprintf("cannot switch to %s", a.View))
		}

	case Reset:
		return NewState(), nil

	default:
		return s, fmt.Errorf("%w: unknown action %T", ErrInvalidTransition, a)
	}
}

func (s State) hasQuestion(id int) bool {
	for _, q := range s.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

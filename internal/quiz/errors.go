package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is wrapped by every *TransitionError.
	ErrInvalidTransition = errors.New("invalid transition")

	ErrEmptyTopic      = errors.New("topic is empty")
	ErrNoQuestions     = errors.New("question set is empty")
	ErrDuplicateID     = errors.New("duplicate question id")
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrIndexOutOfRange = errors.New("question index out of range")

	// ErrFetchInFlight rejects a second topic selection while questions
	// are still loading.
	ErrFetchInFlight = errors.New("question fetch already in progress")

	// ErrStale reports that an async result was dropped because the quiz
	// was reset while it was running.
	ErrStale = errors.New("result discarded after reset")
)

// TransitionError is returned when an action is not valid in the current view.
type TransitionError struct {
	Action string
	View   View
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s not allowed in %s view: %s", e.Action, e.View, e.Reason)
	}
	return fmt.Sprintf("%s not allowed in %s view", e.Action, e.View)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func notAllowed(s State, a Action, reason string) error {
	return &TransitionError{Action: a.Name(), View: s.View, Reason: reason}
}

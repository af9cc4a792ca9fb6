package quiz

// Action is one of the closed set of state changes Reduce understands.
type Action interface {
	// Name is the action's wire-style name, used in logs and errors.
	Name() string
}

// StartLoading begins fetching questions for Topic (SELECT_TOPIC).
type StartLoading struct{ Topic string }

// FetchFailed returns to topic selection with a user-facing message.
type FetchFailed struct{ Message string }

// SetQuestions installs a fresh question set and starts the quiz.
type SetQuestions struct{ Questions []Question }

// Answer records Option for the question with QuestionID. A later answer
// for the same question replaces the earlier one.
type Answer struct {
	QuestionID int
	Option     string
}

// Next moves to the following question.
type Next struct{}

// Prev moves to the preceding question.
type Prev struct{}

// GoTo jumps to Index.
type GoTo struct{ Index int }

// Finish ends the quiz and shows results.
type Finish struct{}

// SetFeedback stores the feedback paragraph for the results screen.
type SetFeedback struct{ Text string }

// SetView switches between results and review.
type SetView struct{ View View }

// Reset discards the attempt and returns to topic selection.
type Reset struct{}

func (StartLoading) Name() string { return "SELECT_TOPIC" }
func (FetchFailed) Name() string  { return "FETCH_FAILED" }
func (SetQuestions) Name() string { return "SET_QUESTIONS" }
func (Answer) Name() string       { return "ANSWER" }
func (Next) Name() string         { return "NEXT" }
func (Prev) Name() string         { return "PREV" }
func (GoTo) Name() string         { return "GO_TO" }
func (Finish) Name() string       { return "FINISH" }
func (SetFeedback) Name() string  { return "SET_FEEDBACK" }
func (SetView) Name() string      { return "SET_VIEW" }
func (Reset) Name() string        { return "RESET" }

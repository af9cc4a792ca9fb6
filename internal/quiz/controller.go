package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/quizbit/internal/llm"
)

// DefaultQuestionCount is how many questions a quiz asks for.
const DefaultQuestionCount = 5

// QuestionSource produces a question set for a topic.
type QuestionSource interface {
	Questions(ctx context.Context, topic string, count int) ([]Question, error)
}

// FeedbackSource writes a feedback paragraph for a finished quiz. It never
// fails; implementations fall back to a canned message.
type FeedbackSource interface {
	Feedback(ctx context.Context, score, total int, topic string, questions []Question) string
}

// Controller runs the async parts of a quiz around a Store: loading
// questions after a topic is picked and generating feedback after the quiz
// is finished. Results that arrive after a Reset are dropped.
type Controller struct {
	store     *Store
	questions QuestionSource
	feedback  FeedbackSource
	count     int
	logger    *log.Logger

	mu             sync.Mutex
	generation     uint64
	attemptID      string
	fetching       bool
	generating     bool
	cancelFetch    context.CancelFunc
	cancelFeedback context.CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithQuestionCount sets how many questions are requested per quiz.
func WithQuestionCount(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.count = n
		}
	}
}

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController wires a store to its question and feedback sources.
func NewController(store *Store, questions QuestionSource, feedback FeedbackSource, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		questions: questions,
		feedback:  feedback,
		count:     DefaultQuestionCount,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	store.Subscribe(func(a Action, s State) {
		c.logger.Printf("quiz: %s -> view=%s index=%d score=%d/%d", a.Name(), s.View, s.CurrentIndex, s.Score, s.Total())
	})
	return c
}

// Store returns the underlying store.
func (c *Controller) Store() *Store { return c.store }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.store.State() }

// Dispatch forwards a synchronous action to the store.
func (c *Controller) Dispatch(a Action) error { return c.store.Dispatch(a) }

// AttemptID identifies the current quiz attempt. It changes on every topic
// selection and is empty before the first one.
func (c *Controller) AttemptID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attemptID
}

// SelectTopic moves to the loading view and fetches questions for topic. It
// blocks until the fetch finishes. If Reset is called meanwhile the result
// is dropped and ErrStale is returned.
func (c *Controller) SelectTopic(ctx context.Context, topic string) error {
	fetch, err := c.BeginTopic(ctx, topic)
	if err != nil {
		return err
	}
	return fetch()
}

// BeginTopic moves to the loading view and returns the blocking fetch that
// completes the selection. The caller must run the returned function.
func (c *Controller) BeginTopic(ctx context.Context, topic string) (func() error, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetching {
		return nil, ErrFetchInFlight
	}
	if err := c.store.Dispatch(StartLoading{Topic: topic}); err != nil {
		return nil, err
	}
	c.fetching = true
	c.attemptID = uuid.NewString()
	gen := c.generation
	ctx = llm.WithAttemptID(ctx, c.attemptID)
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	count := c.count
	topic = c.store.State().Topic

	return func() error {
		defer cancel()
		c.logger.Printf("quiz: fetching %d questions for %q", count, topic)
		qs, err := c.questions.Questions(ctx, topic, count)
		return c.finishFetch(gen, topic, qs, err)
	}, nil
}

func (c *Controller) finishFetch(gen uint64, topic string, qs []Question, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Printf("quiz: dropping questions for %q after reset", topic)
		return ErrStale
	}
	c.fetching = false
	c.cancelFetch = nil

	if err == nil && len(qs) == 0 {
		err = ErrNoQuestions
	}
	if err == nil {
		err = c.store.Dispatch(SetQuestions{Questions: qs})
	}
	if err != nil {
		c.logger.Printf("quiz: loading questions for %q failed: %v", topic, err)
		_ = c.store.Dispatch(FetchFailed{Message: fetchFailureMessage(err)})
		return fmt.Errorf("load questions for %q: %w", topic, err)
	}
	return nil
}

// Complete finishes the quiz and shows results without generating feedback.
func (c *Controller) Complete() error {
	return c.store.Dispatch(Finish{})
}

// GenerateFeedback asks the feedback source for a paragraph about the
// finished quiz and stores it. It blocks until the source returns.
func (c *Controller) GenerateFeedback(ctx context.Context) error {
	c.mu.Lock()
	s := c.store.State()
	if s.View != ViewResults && s.View != ViewReview {
		c.mu.Unlock()
		return &TransitionError{Action: SetFeedback{}.Name(), View: s.View}
	}
	if c.generating {
		c.mu.Unlock()
		return nil
	}
	c.generating = true
	gen := c.generation
	ctx = llm.WithAttemptID(ctx, c.attemptID)
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFeedback = cancel
	c.mu.Unlock()

	text := c.feedback.Feedback(ctx, s.Score, s.Total(), s.Topic, s.Questions)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return ErrStale
	}
	c.generating = false
	c.cancelFeedback = nil
	return c.store.Dispatch(SetFeedback{Text: text})
}

// Finish ends the quiz and then generates feedback.
func (c *Controller) Finish(ctx context.Context) error {
	if err := c.Complete(); err != nil {
		return err
	}
	return c.GenerateFeedback(ctx)
}

// Reset cancels anything in flight and returns to topic selection.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	if c.cancelFeedback != nil {
		c.cancelFeedback()
		c.cancelFeedback = nil
	}
	c.fetching = false
	c.generating = false
	_ = c.store.Dispatch(Reset{})
}

func fetchFailureMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Loading was cancelled."
	case errors.Is(err, ErrNoQuestions):
		return "No questions found for this topic."
	default:
		return "Failed to load questions, please try again."
	}
}

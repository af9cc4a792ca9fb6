package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	attemptKey contextKey = "llm_attempt"
)

// Purpose labels recorded with every request event.
const (
	PurposeQuestions = "question-gen"
	PurposeFeedback  = "feedback"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithAttemptID tags the context with the quiz attempt a request belongs to.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptKey, id)
}

// AttemptIDFrom returns the quiz attempt id, or "" when none was attached.
func AttemptIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(attemptKey).(string)
	return v
}

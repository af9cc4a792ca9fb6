// Package feedback writes the encouraging paragraph shown after a quiz.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/abhisek/quizbit/internal/llm"
	"github.com/abhisek/quizbit/internal/quiz"
)

const (
	msgPerfect   = "Perfect score! Great job! You mastered the topic."
	msgExcellent = "Excellent work! You have strong knowledge in this area."
	msgGood      = "Good effort! Keep practicing to improve your understanding."
	msgNeedsWork = "Needs improvement, but don't give up! Review the topic and try again."

	// msgEmpty is used when the model answers with an empty message.
	msgEmpty = "Great effort! The AI struggled to generate custom feedback, but we are proud of your score."
)

// Schema is the response contract for feedback generation.
var Schema = &llm.Schema{
	Name:        "quiz-feedback",
	Description: "A single encouraging feedback paragraph",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "One paragraph of personalized feedback",
			},
		},
		"required":             []any{"message"},
		"propertyOrdering":     []any{"message"},
		"additionalProperties": false,
	},
}

const systemPrompt = "You are a motivational and informative quiz results analyst. " +
	"Provide an encouraging feedback message in a single paragraph. " +
	"The output MUST be a JSON object that strictly follows the provided schema."

// Config controls the Generator.
type Config struct {
	Temperature float64
	MaxTokens   int
	Retry       llm.RetryConfig
}

// DefaultConfig makes a single attempt at temperature 0.9.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.9,
		MaxTokens:   512,
		Retry:       llm.SingleAttempt(),
	}
}

// Generator produces feedback with an LLM and falls back to a banded
// message when the call fails.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *log.Logger
}

// New creates a Generator. A nil provider always uses the banded message.
func New(provider llm.Provider, cfg Config, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

type output struct {
	Message string `json:"message"`
}

// Feedback returns a paragraph about the result. It never fails.
func (g *Generator) Feedback(ctx context.Context, score, total int, topic string, questions []quiz.Question) string {
	if g.provider == nil {
		return Banded(score, total)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	msg, err := llm.GenerateValidated(ctx, g.provider, g.config.Retry, llm.Call[string]{
		Build: func(int) llm.Request {
			return llm.Request{
				System: systemPrompt,
				Messages: []llm.Message{
					{Role: llm.RoleUser, Content: buildUserMessage(score, total, topic, questions)},
				},
				Schema:      Schema,
				MaxTokens:   g.config.MaxTokens,
				Temperature: g.config.Temperature,
			}
		},
		Validate: func(content json.RawMessage) (string, error) {
			if err := llm.ValidateSchema(Schema, content); err != nil {
				return "", err
			}
			var out output
			if err := json.Unmarshal(content, &out); err != nil {
				return "", fmt.Errorf("failed to parse LLM response: %w", err)
			}
			return out.Message, nil
		},
	})
	if err != nil {
		g.logger.Printf("feedback: generation failed, using banded message: %v", err)
		return Banded(score, total)
	}
	if strings.TrimSpace(msg) == "" {
		return msgEmpty
	}
	return strings.TrimSpace(msg)
}

// Banded returns the canned message for a score. A total of zero counts
// as 0%.
func Banded(score, total int) string {
	var pct float64
	if total > 0 {
		pct = float64(score) * 100 / float64(total)
	}
	switch {
	case pct >= 100:
		return msgPerfect
	case pct >= 80:
		return msgExcellent
	case pct >= 50:
		return msgGood
	default:
		return msgNeedsWork
	}
}

func buildUserMessage(score, total int, topic string, questions []quiz.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user scored %d out of %d on a quiz about %q.\n", score, total, topic)
	if len(questions) > 0 {
		b.WriteString("\nThe questions were:\n")
		for i, q := range questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
		}
	}
	b.WriteString("\nWrite a single, encouraging, and highly personalized paragraph of feedback for the user. ")
	b.WriteString("Do not explicitly restate the score, but reflect on the performance in one or two sentences. ")
	b.WriteString("Then analyse the questions and name the areas of the topic they covered.")
	return b.String()
}

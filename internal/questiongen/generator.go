package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/quizbit/internal/llm"
	"github.com/abhisek/quizbit/internal/quiz"
)

const tracerName = "github.com/abhisek/quizbit/internal/questiongen"

// Generator produces question sets with an LLM and falls back to another
// quiz.QuestionSource once every attempt has failed.
type Generator struct {
	provider llm.Provider
	fallback quiz.QuestionSource
	config   Config
	logger   *log.Logger
	tracer   trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator. fallback may be nil, in which case exhausted
// attempts are reported as an error.
func New(provider llm.Provider, fallback quiz.QuestionSource, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		fallback: fallback,
		config:   cfg,
		logger:   log.New(io.Discard, "", 0),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// questionOutput is one element of the raw LLM response.
type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Description   string   `json:"description"`
}

// Questions returns count questions about topic with IDs 0..n-1.
func (g *Generator) Questions(ctx context.Context, topic string, count int) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestions)
	ctx, span := g.tracer.Start(ctx, "questiongen.Questions", trace.WithAttributes(
		attribute.String("quiz.topic", topic),
		attribute.Int("quiz.count", count),
		attribute.String("llm.model", g.provider.ModelID()),
	))
	defer span.End()

	in := Input{Topic: topic, Count: count}
	qs, err := llm.GenerateValidated(ctx, g.provider, g.config.Retry, llm.Call[[]quiz.Question]{
		Build: func(attempt int) llm.Request {
			if attempt > 0 {
				g.logger.Printf("questiongen: retrying %q (attempt %d)", topic, attempt+1)
			}
			return g.request(in)
		},
		Validate: func(content json.RawMessage) ([]quiz.Question, error) {
			return g.parse(content, in)
		},
	})
	if err == nil {
		span.SetAttributes(attribute.String("quiz.source", "llm"), attribute.Int("quiz.returned", len(qs)))
		return quiz.Renumber(qs), nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		span.SetStatus(codes.Error, "canceled")
		return nil, err
	}

	g.logger.Printf("questiongen: generation for %q failed: %v", topic, err)
	span.RecordError(err)

	if g.fallback == nil {
		span.SetStatus(codes.Error, "generation failed")
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	span.AddEvent("fallback")
	fq, ferr := g.fallback.Questions(ctx, topic, count)
	if ferr != nil {
		span.RecordError(ferr)
		span.SetStatus(codes.Error, "fallback failed")
		return nil, fmt.Errorf("generate questions: %w; fallback: %w", err, ferr)
	}
	span.SetAttributes(attribute.String("quiz.source", "fallback"), attribute.Int("quiz.returned", len(fq)))
	return quiz.Renumber(fq), nil
}

func (g *Generator) request(in Input) llm.Request {
	return llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in.Topic, in.Count)},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
}

// parse checks content against the schema and the validator chain.
func (g *Generator) parse(content json.RawMessage, in Input) ([]quiz.Question, error) {
	if err := llm.ValidateSchema(QuestionSetSchema, content); err != nil {
		return nil, err
	}

	var raw []questionOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if g.config.Truncate && in.Count > 0 && len(raw) > in.Count {
		raw = raw[:in.Count]
	}

	qs := make([]quiz.Question, len(raw))
	for i, r := range raw {
		qs[i] = quiz.Question{
			ID:            i,
			Question:      r.Question,
			Options:       r.Options,
			CorrectAnswer: r.CorrectAnswer,
			Description:   r.Description,
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(qs, in); verr != nil {
			return nil, verr
		}
	}
	return qs, nil
}

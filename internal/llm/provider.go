package llm

import (
	"context"
	"encoding/json"
)

// Provider is the boundary between quizbit and a generative model service.
type Provider interface {
	// Generate sends a prompt and returns the model output. When the request
	// carries a Schema the output is JSON that already passed validation
	// against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System is the system instruction.
	System string

	// Messages is the conversation. Quiz generation and feedback are both
	// single-turn, so this normally holds one user message.
	Messages []Message

	// Schema constrains the output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema. It doubles as the cache key for the
	// compiled validator, so it must be unique per definition.
	Name string

	Description string

	// Definition is a JSON Schema document. Array roots are allowed; they
	// are wrapped for providers that only accept object roots.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the validated JSON payload, or the raw text when the
	// request had no schema.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

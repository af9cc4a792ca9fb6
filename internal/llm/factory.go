package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizbit/internal/store"
)

// NewProvider creates a Provider from configuration. When eventRepo is
// non-nil every request is recorded through it.
//
// Retries are not layered in here: callers pass their own RetryConfig to
// GenerateValidated so that domain validation runs inside the same loop.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo), nil
}

// NewProviderFromEnv resolves configuration with LoadConfig and builds the
// provider. It returns ErrNotConfigured when no credentials are present.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}

package questiongen

import "github.com/abhisek/quizbit/internal/llm"

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run in order on every parsed response. The first failure
	// rejects the response and counts as a failed attempt.
	Validators []Validator

	// Retry bounds the generation attempts before the fallback is used.
	Retry llm.RetryConfig

	// MaxTokens is the token budget for one response.
	MaxTokens int

	Temperature float64

	// Truncate drops questions beyond the requested count instead of
	// rejecting the response.
	Truncate bool
}

// DefaultConfig returns the standard validator chain, three attempts with
// 2s and 4s pauses, and temperature 0.7.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&AnswerValidator{},
			&CountValidator{},
		},
		Retry:       llm.DefaultRetryConfig(),
		MaxTokens:   4096,
		Temperature: 0.7,
		Truncate:    true,
	}
}

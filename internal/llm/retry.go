package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig bounds a retried operation.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// InitialWait is the pause after the first failed attempt. Each later
	// pause is multiplied by Multiplier.
	InitialWait time.Duration

	// MaxWait caps a single pause. Zero means no cap.
	MaxWait time.Duration

	Multiplier float64

	// Jitter spreads each pause by ±Jitter of its length (0.2 = ±20%).
	Jitter float64
}

// DefaultRetryConfig waits 2s then 4s between three attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 2 * time.Second,
		Multiplier:  2.0,
	}
}

// SingleAttempt runs an operation exactly once.
func SingleAttempt() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}

// Backoff returns the pause that follows the failed attempt with the given
// zero-based index.
func (c RetryConfig) Backoff(attempt int) time.Duration {
	mult := c.Multiplier
	if mult <= 0 {
		mult = 1
	}
	wait := float64(c.InitialWait) * math.Pow(mult, float64(attempt))
	if c.MaxWait > 0 && wait > float64(c.MaxWait) {
		wait = float64(c.MaxWait)
	}
	if c.Jitter > 0 {
		wait += wait * c.Jitter * (2*rand.Float64() - 1)
	}
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// Do runs op until it succeeds or MaxAttempts is reached, sleeping between
// attempts. Attempts are strictly sequential. Context errors end the loop
// immediately; every other error counts as a failed attempt. When all
// attempts fail the last error is returned inside a *RetryError.
func Do[T any](ctx context.Context, cfg RetryConfig, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	attempts := max(cfg.MaxAttempts, 1)

	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op(ctx, attempt)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}

		if attempt == attempts-1 {
			break
		}

		wait := cfg.Backoff(attempt)
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			wait = rl.RetryAfter
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, &RetryError{Attempts: attempts, Err: lastErr}
}

// Call describes one validated generation: how to build the request for a
// given attempt and how to turn the returned JSON into a value.
type Call[T any] struct {
	Build    func(attempt int) Request
	Validate func(content json.RawMessage) (T, error)
}

// GenerateValidated sends the request built by call through p and validates
// the result, retrying per cfg. A validation failure counts as a failed
// attempt exactly like a transport error does.
func GenerateValidated[T any](ctx context.Context, p Provider, cfg RetryConfig, call Call[T]) (T, error) {
	return Do(ctx, cfg, func(ctx context.Context, attempt int) (T, error) {
		var zero T

		resp, err := p.Generate(ctx, call.Build(attempt))
		if err != nil {
			return zero, err
		}

		v, err := call.Validate(resp.Content)
		if err != nil {
			var inv *ErrInvalidResponse
			if errors.As(err, &inv) {
				return zero, err
			}
			return zero, &ErrInvalidResponse{Content: resp.Content, Err: err}
		}
		return v, nil
	})
}

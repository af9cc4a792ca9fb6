// Package trivia fetches multiple-choice questions from the Open Trivia
// Database. It is the fallback question source when generation fails.
package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/quizbit/internal/quiz"
)

const (
	// DefaultBaseURL is the public Open Trivia DB endpoint.
	DefaultBaseURL = "https://opentdb.com/api.php"

	// MaxAmount is the largest batch the API serves in one call.
	MaxAmount = 50

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client talks to Open Trivia DB. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	shuffle    func(n int, swap func(i, j int))
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithShuffle replaces the option shuffler. The default is rand.Shuffle.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(c *Client) {
		if fn != nil {
			c.shuffle = fn
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
			),
		},
		shuffle: rand.Shuffle,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []apiQuestion `json:"results"`
}

type apiQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Questions fetches count questions for topic. Topics without a known
// category get general questions.
func (c *Client) Questions(ctx context.Context, topic string, count int) ([]quiz.Question, error) {
	if count < 1 || count > MaxAmount {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, count)
	}

	q := url.Values{}
	q.Set("amount", strconv.Itoa(count))
	q.Set("type", "multiple")
	if id, ok := CategoryFor(topic); ok {
		q.Set("category", strconv.Itoa(id))
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse trivia URL: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build trivia request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Printf("trivia: GET %s", u.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trivia questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode trivia response: %w", err)
	}
	if body.ResponseCode != 0 {
		return nil, &ResponseCodeError{Code: body.ResponseCode}
	}

	out := make([]quiz.Question, 0, len(body.Results))
	for i, r := range body.Results {
		qq := c.convert(i, r)
		if err := qq.Validate(); err != nil {
			return nil, fmt.Errorf("trivia question %d: %w", i+1, err)
		}
		out = append(out, qq)
	}
	return out, nil
}

func (c *Client) convert(id int, r apiQuestion) quiz.Question {
	options := make([]string, 0, len(r.IncorrectAnswers)+1)
	options = append(options, html.UnescapeString(r.CorrectAnswer))
	for _, o := range r.IncorrectAnswers {
		options = append(options, html.UnescapeString(o))
	}
	c.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return quiz.Question{
		ID:            id,
		Question:      html.UnescapeString(r.Question),
		Options:       options,
		CorrectAnswer: html.UnescapeString(r.CorrectAnswer),
	}
}

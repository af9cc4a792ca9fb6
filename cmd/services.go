package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbit/internal/feedback"
	"github.com/abhisek/quizbit/internal/llm"
	"github.com/abhisek/quizbit/internal/questiongen"
	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/report"
	"github.com/abhisek/quizbit/internal/store"
	"github.com/abhisek/quizbit/internal/trivia"
)

// settings are the quiz options resolved from flags and QUIZBIT_* variables.
type settings struct {
	Count     int
	Format    string
	ReportDir string
	TriviaURL string
	LogFile   string
}

func settingsFromEnv() (settings, error) {
	s := settings{
		Count:     quiz.DefaultQuestionCount,
		Format:    "pdf",
		ReportDir: ".",
		TriviaURL: os.Getenv("QUIZBIT_TRIVIA_URL"),
		LogFile:   os.Getenv("QUIZBIT_LOG_FILE"),
	}
	if v := os.Getenv("QUIZBIT_QUESTION_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("QUIZBIT_QUESTION_COUNT must be an integer, got %q", v)
		}
		s.Count = n
	}
	if v := os.Getenv("QUIZBIT_REPORT_FORMAT"); v != "" {
		s.Format = v
	}
	if v := os.Getenv("QUIZBIT_REPORT_DIR"); v != "" {
		s.ReportDir = v
	}
	return s, s.validate()
}

// validate bounds the question count by what the trivia fallback can serve,
// since it is the only source when no provider is configured.
func (s settings) validate() error {
	if s.Count < 1 || s.Count > trivia.MaxAmount {
		return fmt.Errorf("question count must be between 1 and %d, got %d", trivia.MaxAmount, s.Count)
	}
	return nil
}

// applyFlags overrides s with any of --count, --format and --report-dir
// that cmd defines and the user set, then validates the result.
func (s *settings) applyFlags(cmd *cobra.Command) error {
	if f := cmd.Flags().Lookup("count"); f != nil && f.Changed {
		s.Count, _ = cmd.Flags().GetInt("count")
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		s.Format, _ = cmd.Flags().GetString("format")
	}
	if f := cmd.Flags().Lookup("report-dir"); f != nil && f.Changed {
		s.ReportDir, _ = cmd.Flags().GetString("report-dir")
	}
	return s.validate()
}

// services bundles everything a quiz needs. Close releases the store.
type services struct {
	store      *store.Store
	provider   llm.Provider
	controller *quiz.Controller
	renderer   report.Renderer
	settings   settings
	logger     *log.Logger
}

// buildServices opens the event store and wires the question pipeline.
// Without a configured LLM provider questions come straight from the trivia
// service and feedback uses the banded messages.
func buildServices(ctx context.Context, cmd *cobra.Command, cfg settings, logger *log.Logger, warn io.Writer) (*services, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	renderer, err := report.ForFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	triviaOpts := []trivia.Option{trivia.WithLogger(logger)}
	if cfg.TriviaURL != "" {
		triviaOpts = append(triviaOpts, trivia.WithBaseURL(cfg.TriviaURL))
	}
	fallback := trivia.New(triviaOpts...)

	var source quiz.QuestionSource = fallback
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case err == nil:
		source = questiongen.New(provider, fallback, questiongen.DefaultConfig(), questiongen.WithLogger(logger))
	case errors.Is(err, llm.ErrNotConfigured):
		fmt.Fprintln(warn, "No LLM provider configured; using Open Trivia questions and standard feedback.")
		provider = nil
	default:
		fmt.Fprintln(warn, "LLM provider not available:", err)
		fmt.Fprintln(warn, "Using Open Trivia questions and standard feedback.")
		provider = nil
	}

	fb := feedback.New(provider, feedback.DefaultConfig(), logger)
	ctrl := quiz.NewController(quiz.NewStore(), source, fb,
		quiz.WithQuestionCount(cfg.Count),
		quiz.WithLogger(logger),
	)

	return &services{
		store:      st,
		provider:   provider,
		controller: ctrl,
		renderer:   renderer,
		settings:   cfg,
		logger:     logger,
	}, nil
}

func (s *services) Close() error {
	return s.store.Close()
}

// openLog routes the standard logger to path for the lifetime of the TUI.
// An empty path discards log output.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(path, "quizbit")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil
}

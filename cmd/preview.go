package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizbit/internal/quiz"
	"github.com/abhisek/quizbit/internal/report"
	"github.com/abhisek/quizbit/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview <topic>",
	Short: "Generate a quiz and print it without the TUI",
	Long: "Generate questions for a topic and print them. With --answers the quiz is\n" +
		"answered from the given letters, scored and given feedback.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		cfg, err := settingsFromEnv()
		if err != nil {
			return err
		}
		if err := cfg.applyFlags(cmd); err != nil {
		return err
	}

		svc, err := buildServices(ctx, cmd, cfg, nil, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer svc.Close()

		ctrl := svc.controller
		if err := ctrl.SelectTopic(ctx, args[0]); err != nil {
			if msg := ctrl.State().Error; msg != "" {
				return fmt.Errorf("%s: %w", msg, err)
			}
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ctrl.State().Questions)
		}

		answers, _ := cmd.Flags().GetString("answers")
		if answers == "" {
			printQuestions(out, ctrl.State())
			return nil
		}

		if err := answerAll(ctrl, answers); err != nil {
			return err
		}
		if err := ctrl.Finish(ctx); err != nil {
			return fmt.Errorf("finish quiz: %w", err)
		}

		st := ctrl.State()
		printQuestions(out, st)
		fmt.Fprintf(out, "Score: %d / %d (%.0f%%)\n\n%s\n", st.Score, st.Total(), st.Percent(), st.Feedback)

		if export, _ := cmd.Flags().GetBool("export"); export {
			path, err := report.Export(cfg.ReportDir, report.FromState(st, time.Now()), svc.renderer)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nReport saved to %s\n", path)
		}
		return nil
	},
}

// answerAll answers the loaded questions in order from a comma-separated
// list of option letters. Blank entries leave a question unanswered.
func answerAll(ctrl *quiz.Controller, list string) error {
	letters := lo.Map(strings.Split(list, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	st := ctrl.State()
	if len(letters) > st.Total() {
		return fmt.Errorf("got %d answers for %d questions", len(letters), st.Total())
	}

	for i, letter := range letters {
		if i > 0 {
			if err := ctrl.Dispatch(quiz.Next{}); err != nil {
				return err
			}
		}
		if letter == "" {
			continue
		}
		q := st.Questions[i]
		idx, ok := components.IndexForKey(letter, len(q.Options))
		if !ok {
			return fmt.Errorf("answer %d: %q is not one of A-%c", i+1, letter, 'A'+len(q.Options)-1)
		}
		if err := ctrl.Dispatch(quiz.Answer{QuestionID: q.ID, Option: q.Options[idx]}); err != nil {
			return err
		}
	}
	return ctrl.Dispatch(quiz.GoTo{Index: st.Total() - 1})
}

func printQuestions(w io.Writer, st quiz.State) {
	finished := st.View == quiz.ViewResults || st.View == quiz.ViewReview
	fmt.Fprintf(w, "Topic: %s\n\n", st.Topic)
	for i, q := range st.Questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
		answer, answered := st.AnswerFor(q.ID)
		for j, opt := range q.Options {
			marker := " "
			switch {
			case finished && opt == q.CorrectAnswer:
				marker = "✓"
			case finished && answered && opt == answer:
				marker = "✗"
			}
			fmt.Fprintf(w, "   %s %s. %s\n", marker, components.OptionLabels[j], opt)
		}
		if finished {
			if !answered {
				fmt.Fprintln(w, "   Not answered")
			}
			if q.Description != "" {
				fmt.Fprintf(w, "   %s\n", q.Description)
			}
		}
		fmt.Fprintln(w)
	}
}

func init() {
	previewCmd.Flags().IntP("count", "n", 5, "Number of questions, 1-50 (overrides QUIZBIT_QUESTION_COUNT)")
	previewCmd.Flags().String("answers", "", "Comma-separated answer letters, e.g. A,C,,B")
	previewCmd.Flags().Bool("json", false, "Print the questions as JSON")
	previewCmd.Flags().Bool("export", false, "Write a report after answering (requires --answers)")
	previewCmd.Flags().StringP("format", "f", "pdf", "Report format: pdf, markdown or html")
	previewCmd.Flags().String("report-dir", ".", "Directory for exported reports")
}

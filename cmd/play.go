package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbit/internal/app"
	"github.com/abhisek/quizbit/internal/trivia"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		return runApp(cmd, topic)
	},
}

// runApp resolves settings, builds the services and launches the TUI.
func runApp(cmd *cobra.Command, topic string) error {
	ctx := cmd.Context()

	cfg, err := settingsFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.applyFlags(cmd); err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := buildServices(ctx, cmd, cfg, logger, os.Stderr)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := app.Run(ctx, app.Options{
		Controller:   svc.controller,
		Topics:       trivia.Topics(),
		ReportDir:    cfg.ReportDir,
		Renderer:     svc.renderer,
		Logger:       logger,
		InitialTopic: topic,
	}); err != nil {
		return fmt.Errorf("run quiz: %w", err)
	}
	return nil
}

func init() {
	playCmd.Flags().StringP("topic", "t", "", "Start straight away with this topic")
	playCmd.Flags().IntP("count", "n", 5, "Number of questions, 1-50 (overrides QUIZBIT_QUESTION_COUNT)")
	playCmd.Flags().StringP("format", "f", "pdf", "Report format: pdf, markdown or html")
	playCmd.Flags().String("report-dir", ".", "Directory for exported reports")
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"distress/internal/history"
	"distress/internal/pipeline"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Download a consultation video and triage its audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
			}

			analyzer, err := pipeline.New(cfg, store, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			outcome, err := analyzer.Run(runCtx, args[0])
			if err != nil {
				return err
			}

			printOutcome(cmd, outcome)
			return nil
		},
	}
}

func printOutcome(cmd *cobra.Command, outcome *pipeline.Outcome) {
	stdout := cmd.OutOrStdout()
	colorize := shouldColorize(stdout)

	for _, line := range renderSectionHeader("Triage Result", colorize) {
		fmt.Fprintln(stdout, line)
	}

	color := triageColor(outcome.Triage.Color)
	fmt.Fprintf(stdout, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Session:", outcome.SessionID)
	fmt.Fprintf(stdout, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Clinical state:",
		colorizeText(outcome.Triage.Label, color, colorize))
	fmt.Fprintf(stdout, "%s%-*s %.2f%%\n", statusIndent, statusLabelWidth, "Confidence:", outcome.Confidence)
	fmt.Fprintf(stdout, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Priority:",
		colorizeText(outcome.Triage.Priority, color, colorize))
	fmt.Fprintf(stdout, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Clip:", outcome.ClipPath)
}

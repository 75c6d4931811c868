package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"distress/internal/workspace"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAgeDays int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove archived clips older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
			result := workspace.CleanStale(cmd.Context(), cfg.Paths.ArchiveDir, maxAge, logger)

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d clips\n", len(result.Removed))
			for _, cleanupErr := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to remove %s: %v\n", cleanupErr.Path, cleanupErr.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d clips could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 30, "Remove clips older than this many days")
	return cmd
}

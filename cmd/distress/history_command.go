package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"distress/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analysis sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if limit <= 0 {
				limit = cfg.History.Limit
			}
			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet")
				return nil
			}

			headers := []string{"When", "Session", "Outcome", "State", "Confidence", "Priority"}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format(time.DateTime),
					rec.SessionToken,
					outcomeCell(rec),
					rec.DisplayLabel,
					confidenceCell(rec),
					rec.Priority,
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum sessions to list (default from config)")
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}
}

func outcomeCell(rec history.Record) string {
	if rec.Succeeded() {
		return "completed"
	}
	outcome := strings.ReplaceAll(string(rec.Outcome), "_", " ")
	if rec.ErrorMessage != "" {
		return outcome + ": " + truncate(rec.ErrorMessage, 40)
	}
	return outcome
}

func confidenceCell(rec history.Record) string {
	if !rec.Succeeded() {
		return "-"
	}
	return strconv.FormatFloat(rec.Confidence, 'f', 2, 64) + "%"
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}

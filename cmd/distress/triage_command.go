package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"distress/internal/triage"
)

func newTriageCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "triage",
		Short:       "Show the emotion-to-triage mapping",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"Token", "Clinical State", "Priority"}
			rows := make([][]string, 0, len(triage.Tokens()))
			for _, token := range triage.Tokens() {
				entry := triage.Lookup(token)
				rows = append(rows, []string{token, entry.Label, entry.Priority})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}
}

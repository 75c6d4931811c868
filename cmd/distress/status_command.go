package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"distress/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, disk space, and external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(stdout, line)
			}
			for _, check := range preflight.RunAll(cmd.Context(), cfg) {
				fmt.Fprintln(stdout, renderStatusLine(check.Name, checkKind(check.Passed), check.Detail, colorize))
			}
			space := preflight.CheckWorkspaceFreeSpace(cfg)
			fmt.Fprintln(stdout, renderStatusLine(space.Name, checkKind(space.Passed), space.Detail, colorize))

			fmt.Fprintln(stdout)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(stdout, line)
			}
			missing := 0
			for _, dep := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				kind := statusOK
				message := dep.Command
				if !dep.Available {
					kind = statusError
					if dep.Optional {
						kind = statusWarn
					} else {
						missing++
					}
					message = dep.Detail
				}
				fmt.Fprintln(stdout, renderStatusLine(dep.Name, kind, message, colorize))
			}

			fmt.Fprintln(stdout)
			for _, line := range renderSectionHeader("History", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Enabled", statusInfo, yesNo(cfg.History.Enabled), colorize))

			if missing > 0 {
				return fmt.Errorf("%d required dependencies missing", missing)
			}
			return nil
		},
	}
}

func checkKind(passed bool) statusKind {
	if passed {
		return statusOK
	}
	return statusError
}

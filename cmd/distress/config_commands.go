package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"distress/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set classifier.runner (or export DISTRESS_MODEL_RUNNER) before analyzing.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s %s\n", "workspace_dir:", cfg.Paths.WorkspaceDir)
			fmt.Fprintf(out, "%-24s %s\n", "archive_dir:", cfg.Paths.ArchiveDir)
			fmt.Fprintf(out, "%-24s %s\n", "log_dir:", cfg.Paths.LogDir)
			fmt.Fprintf(out, "%-24s %s\n", "downloader.binary:", cfg.Downloader.Binary)
			fmt.Fprintf(out, "%-24s %d\n", "downloader.timeout:", cfg.Downloader.TimeoutSeconds)
			fmt.Fprintf(out, "%-24s %s\n", "transcoder.binary:", cfg.Transcoder.Binary)
			fmt.Fprintf(out, "%-24s %d\n", "transcoder.timeout:", cfg.Transcoder.TimeoutSeconds)
			fmt.Fprintf(out, "%-24s %d\n", "analysis.max_clip_sec:", cfg.Analysis.MaxClipSeconds)
			fmt.Fprintf(out, "%-24s %d\n", "analysis.sample_rate:", cfg.Analysis.SampleRate)
			fmt.Fprintf(out, "%-24s %s\n", "classifier.runner:", cfg.Classifier.Runner)
			fmt.Fprintf(out, "%-24s %s\n", "history.enabled:", yesNo(cfg.History.Enabled))
			fmt.Fprintf(out, "%-24s %s\n", "logging.format:", cfg.Logging.Format)
			fmt.Fprintf(out, "%-24s %s\n", "logging.level:", cfg.Logging.Level)
			return nil
		},
	}
}

package main

import (
	"log/slog"

	"distress/internal/config"
	"distress/internal/logging"
)

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.NewForDir(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
}

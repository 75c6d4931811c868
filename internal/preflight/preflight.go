package preflight

import (
	"context"
	"path/filepath"

	"distress/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the blocking preflight checks for the given config. Free
// space and binary availability are advisory and surface through the
// status command instead.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("Workspace parent", filepath.Dir(cfg.Paths.WorkspaceDir)),
		CheckDirectoryAccess("Archive directory", cfg.Paths.ArchiveDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
}

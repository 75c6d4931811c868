package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"distress/internal/config"
	"distress/internal/deps"
)

// minFreeBytes is the floor below which a download is refused. A remuxed
// bestaudio stream rarely exceeds a few hundred megabytes.
const minFreeBytes = 512 << 20

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckWorkspaceFreeSpace reports whether the filesystem backing the
// workspace can hold a typical download.
func CheckWorkspaceFreeSpace(cfg *config.Config) Result {
	return CheckFreeSpace("Workspace free space", filepath.Dir(cfg.Paths.WorkspaceDir), minFreeBytes)
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// required bytes available.
func CheckFreeSpace(name, path string, required uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < required {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%s (%d MiB free, need %d MiB)", path, free>>20, required>>20),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}

// CheckSystemDeps evaluates all external binaries the analyzer shells out
// to. Both the pipeline and the CLI status command use this to avoid
// duplicating the requirements list.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Downloader.Binary,
			Description: "Required for remote video acquisition",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Transcoder.Binary,
			Description: "Required for audio extraction",
		},
		{
			Name:        "FFprobe",
			Command:     deps.ResolveProbePath(cfg.Transcoder.ProbeBinary, cfg.Transcoder.Binary),
			Description: "Used for media inspection",
			Optional:    true,
		},
		{
			Name:        "Model runner",
			Command:     cfg.Classifier.Runner,
			Description: "Required for acoustic emotion classification",
		},
	}
	return deps.CheckBinaries(requirements)
}

package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"distress/internal/fileutil"
	"distress/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a yt-dlp client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("downloader binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Download fetches the media at url into destPath as an mp4 container. The
// best audio-only stream is preferred; full video is the fallback when the
// source offers no separate audio rendition. The downloader's own exit code
// is advisory only: the presence of the destination file decides success.
func (c *Client) Download(ctx context.Context, url, destPath string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return services.Wrap(services.ErrValidation, "acquire", "download", "source url required", nil)
	}
	if strings.TrimSpace(destPath) == "" {
		return services.Wrap(services.ErrValidation, "acquire", "download", "destination path required", nil)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-f", "bestaudio/best",
		"--remux-video", "mp4",
		"--force-overwrites",
		"-o", destPath,
		url,
	}

	output, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "acquire", "download",
				fmt.Sprintf("download exceeded %s", c.timeout), err)
		}
		// Some sources emit post-processing warnings with a nonzero exit
		// while still writing the file. Only fail when nothing landed.
		if !fileutil.Exists(destPath) {
			return services.Wrap(services.ErrAcquisition, "acquire", "download",
				summarizeOutput(output), err)
		}
	}

	if !fileutil.Exists(destPath) {
		return services.Wrap(services.ErrAcquisition, "acquire", "download",
			"downloader exited cleanly but produced no file", nil)
	}
	return nil
}

// summarizeOutput returns the last non-empty output line, which is where
// yt-dlp puts its error summary.
func summarizeOutput(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "downloader failed"
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

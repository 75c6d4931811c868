// Package ffmpeg shells out to ffmpeg to extract a bounded analysis clip
// from an acquired container.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
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

// Client wraps ffmpeg CLI interactions for clip extraction.
type Client struct {
	binary         string
	timeout        time.Duration
	sampleRate     int
	minOutputBytes int64
	exec           Executor
}

// New constructs an ffmpeg extraction client. sampleRate is the target
// output rate in Hz; minOutputBytes is the floor below which an output file
// counts as failed regardless of ffmpeg's exit code.
func New(binary string, timeoutSeconds, sampleRate int, minOutputBytes int64, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("transcoder binary required")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	client := &Client{
		binary:         binary,
		timeout:        time.Duration(timeoutSeconds) * time.Second,
		sampleRate:     sampleRate,
		minOutputBytes: minOutputBytes,
		exec:           commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Extract strips the audio from videoPath into a mono 16-bit PCM WAV at
// audioPath, truncated to maxSeconds. The transcoder's exit code is
// advisory: a present output file above the size floor decides success, a
// missing or undersized one decides failure.
func (c *Client) Extract(ctx context.Context, videoPath, audioPath string, maxSeconds int) error {
	if strings.TrimSpace(videoPath) == "" {
		return services.Wrap(services.ErrValidation, "extract", "clip", "source path required", nil)
	}
	if strings.TrimSpace(audioPath) == "" {
		return services.Wrap(services.ErrValidation, "extract", "clip", "destination path required", nil)
	}
	if maxSeconds <= 0 {
		return services.Wrap(services.ErrValidation, "extract", "clip",
			fmt.Sprintf("invalid clip duration %d", maxSeconds), nil)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(c.sampleRate),
		"-ac", "1",
		"-y",
		"-t", strconv.Itoa(maxSeconds),
		audioPath,
	}

	output, runErr := c.exec.Run(runCtx, c.binary, args)
	if runErr != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "extract", "clip",
			fmt.Sprintf("extraction exceeded %s", c.timeout), runErr)
	}

	if !fileutil.NonEmptyFile(audioPath, c.minOutputBytes) {
		message := fmt.Sprintf("no usable audio produced (floor %d bytes)", c.minOutputBytes)
		if runErr != nil {
			message = strings.TrimSpace(string(output))
			if message == "" {
				message = "transcoder failed"
			}
		}
		return services.Wrap(services.ErrExtraction, "extract", "clip", message, runErr)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

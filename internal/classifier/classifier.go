package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"distress/internal/services"
)

// Result carries the raw model verdict for a clip.
type Result struct {
	Probabilities []float64
	Labels        []string
	MaxScore      float64
	MaxIndex      int
}

// Emotion returns the label with the highest probability.
func (r Result) Emotion() string {
	if r.MaxIndex < 0 || r.MaxIndex >= len(r.Labels) {
		return ""
	}
	return r.Labels[r.MaxIndex]
}

// Classifier produces an emotion verdict for an audio file on disk.
type Classifier interface {
	ClassifyFile(ctx context.Context, path string) (Result, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// CommandOption configures the command classifier.
type CommandOption func(*CommandClassifier)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) CommandOption {
	return func(c *CommandClassifier) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// CommandClassifier invokes an external model runner. The runner receives
// any configured extra args followed by the clip path and must print a JSON
// object with "probabilities" and "labels" arrays of equal length.
type CommandClassifier struct {
	runner  string
	args    []string
	timeout time.Duration
	exec    Executor
}

// NewCommand constructs a classifier around a model runner command.
func NewCommand(runner string, args []string, timeoutSeconds int, opts ...CommandOption) (*CommandClassifier, error) {
	runner = strings.TrimSpace(runner)
	if runner == "" {
		return nil, errors.New("model runner required")
	}
	c := &CommandClassifier{
		runner:  runner,
		args:    append([]string(nil), args...),
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type runnerVerdict struct {
	Probabilities []float64 `json:"probabilities"`
	Labels        []string  `json:"labels"`
}

// ClassifyFile runs the model against the clip at path.
func (c *CommandClassifier) ClassifyFile(ctx context.Context, path string) (Result, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), c.args...), path)
	output, err := c.exec.Run(runCtx, c.runner, args)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return Result{}, services.Wrap(services.ErrTimeout, "classify", "model",
				fmt.Sprintf("inference exceeded %s", c.timeout), err)
		}
		return Result{}, services.Wrap(services.ErrClassification, "classify", "model",
			strings.TrimSpace(string(output)), err)
	}

	verdict, err := parseVerdict(output)
	if err != nil {
		return Result{}, services.Wrap(services.ErrClassification, "classify", "model", "", err)
	}
	return verdict, nil
}

// parseVerdict decodes the runner's JSON from its output. The verdict is
// expected on the final line so runner frameworks may log freely above it.
func parseVerdict(output []byte) (Result, error) {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	var lastErr error
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var verdict runnerVerdict
		if err := json.Unmarshal([]byte(line), &verdict); err != nil {
			lastErr = err
			continue
		}
		return toResult(verdict)
	}
	if lastErr != nil {
		return Result{}, fmt.Errorf("parse verdict: %w", lastErr)
	}
	return Result{}, errors.New("runner produced no verdict")
}

func toResult(verdict runnerVerdict) (Result, error) {
	if len(verdict.Probabilities) == 0 {
		return Result{}, errors.New("verdict has no probabilities")
	}
	if len(verdict.Probabilities) != len(verdict.Labels) {
		return Result{}, fmt.Errorf("verdict shape mismatch: %d probabilities, %d labels",
			len(verdict.Probabilities), len(verdict.Labels))
	}
	result := Result{
		Probabilities: verdict.Probabilities,
		Labels:        verdict.Labels,
	}
	for i, p := range verdict.Probabilities {
		if p > result.MaxScore || i == 0 {
			result.MaxScore = p
			result.MaxIndex = i
		}
	}
	return result, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"distress/internal/services"
)

type fakeExecutor struct {
	run func(ctx context.Context, binary string, args []string) ([]byte, error)

	binary string
	args   []string
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	f.binary = binary
	f.args = args
	if f.run != nil {
		return f.run(ctx, binary, args)
	}
	return nil, nil
}

func TestClassifyFileParsesVerdict(t *testing.T) {
	exec := &fakeExecutor{
		run: func(context.Context, string, []string) ([]byte, error) {
			return []byte("loading checkpoint\n" +
				`{"probabilities":[0.1,0.7,0.15,0.05],"labels":["ang","sad","hap","neu"]}` + "\n"), nil
		},
	}
	c, err := NewCommand("run-model", []string{"--device", "cpu"}, 120, WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}

	result, err := c.ClassifyFile(context.Background(), "/clips/audio.wav")
	if err != nil {
		t.Fatalf("ClassifyFile: %v", err)
	}
	if result.Emotion() != "sad" {
		t.Fatalf("expected dominant label sad, got %q", result.Emotion())
	}
	if result.MaxScore != 0.7 || result.MaxIndex != 1 {
		t.Fatalf("unexpected max: score=%v index=%d", result.MaxScore, result.MaxIndex)
	}

	wantArgs := []string{"--device", "cpu", "/clips/audio.wav"}
	if len(exec.args) != len(wantArgs) {
		t.Fatalf("unexpected args %v", exec.args)
	}
	for i, arg := range wantArgs {
		if exec.args[i] != arg {
			t.Fatalf("arg %d: got %q, want %q", i, exec.args[i], arg)
		}
	}
}

func TestClassifyFileFirstProbabilityWins(t *testing.T) {
	exec := &fakeExecutor{
		run: func(context.Context, string, []string) ([]byte, error) {
			return []byte(`{"probabilities":[0.9,0.1],"labels":["ang","neu"]}`), nil
		},
	}
	c, err := NewCommand("run-model", nil, 120, WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}
	result, err := c.ClassifyFile(context.Background(), "clip.wav")
	if err != nil {
		t.Fatalf("ClassifyFile: %v", err)
	}
	if result.MaxIndex != 0 || result.Emotion() != "ang" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestClassifyFileRunnerFailure(t *testing.T) {
	exec := &fakeExecutor{
		run: func(context.Context, string, []string) ([]byte, error) {
			return []byte("Traceback (most recent call last): ..."), errors.New("exit status 1")
		},
	}
	c, err := NewCommand("run-model", nil, 120, WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}
	_, err = c.ClassifyFile(context.Background(), "clip.wav")
	if !errors.Is(err, services.ErrClassification) {
		t.Fatalf("expected classification error, got %v", err)
	}
}

func TestClassifyFileTimeout(t *testing.T) {
	exec := &fakeExecutor{
		run: func(ctx context.Context, _ string, _ []string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	c, err := NewCommand("run-model", nil, 0, WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}
	c.timeout = 1

	_, err = c.ClassifyFile(context.Background(), "clip.wav")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
}

func TestParseVerdictErrors(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string
	}{
		{"no json", "just logs\nno verdict here", "no verdict"},
		{"empty probabilities", `{"probabilities":[],"labels":[]}`, "no probabilities"},
		{"shape mismatch", `{"probabilities":[0.5,0.5],"labels":["ang"]}`, "shape mismatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseVerdict([]byte(tc.output))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestNewCommandRequiresRunner(t *testing.T) {
	if _, err := NewCommand("  ", nil, 120); err == nil {
		t.Fatal("expected error for missing runner")
	}
}

package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
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

func TestDownloadArgs(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "video_abc.mp4")
	exec := &fakeExecutor{
		run: func(context.Context, string, []string) ([]byte, error) {
			if err := os.WriteFile(dest, []byte("container"), 0o644); err != nil {
				t.Fatalf("write dest: %v", err)
			}
			return []byte("[download] done"), nil
		},
	}
	client, err := New("yt-dlp", 120, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Download(context.Background(), "https://example.com/watch?v=x", dest); err != nil {
		t.Fatalf("Download: %v", err)
	}

	want := []string{
		"-f", "bestaudio/best",
		"--remux-video", "mp4",
		"--force-overwrites",
		"-o", dest,
		"https://example.com/watch?v=x",
	}
	if exec.binary != "yt-dlp" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	if !reflect.DeepEqual(exec.args, want) {
		t.Fatalf("unexpected args\n got: %v\nwant: %v", exec.args, want)
	}
}

func TestDownloadFailureWithoutFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "video_abc.mp4")
	exec := &fakeExecutor{
		run: func(context.Context, string, []string) ([]byte, error) {
			return []byte("WARNING: something\nERROR: unsupported url"), errors.New("exit status 1")
		},
	}
	client, err := New("yt-dlp", 120, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = client.Download(context.Background(), "https://example.com/bad", dest)
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition failure, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "unsupported url") {
		t.Fatalf("expected error summary line in %q", got)
	}
}

func TestDownloadNonzeroExitWithFileSucceeds(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "video_abc.mp4")
	exec := &fakeExecutor{
		run: func(context.Context, string, []string) ([]byte, error) {
			if err := os.WriteFile(dest, []byte("container"), 0o644); err != nil {
				t.Fatalf("write dest: %v", err)
			}
			return []byte("WARNING: postprocessing hiccup"), errors.New("exit status 1")
		},
	}
	client, err := New("yt-dlp", 120, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Download(context.Background(), "https://example.com/ok", dest); err != nil {
		t.Fatalf("expected success when file landed, got %v", err)
	}
}

func TestDownloadCleanExitWithoutFileFails(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "video_abc.mp4")
	client, err := New("yt-dlp", 120, WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = client.Download(context.Background(), "https://example.com/ok", dest)
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition failure for missing file, got %v", err)
	}
}

func TestDownloadTimeout(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "video_abc.mp4")
	exec := &fakeExecutor{
		run: func(ctx context.Context, _ string, _ []string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	client, err := New("yt-dlp", 0, WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.timeout = 1 // nanosecond

	err = client.Download(context.Background(), "https://example.com/slow", dest)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
}

func TestDownloadValidation(t *testing.T) {
	client, err := New("yt-dlp", 120, WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Download(context.Background(), "", "/tmp/x.mp4"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty url, got %v", err)
	}
	if err := client.Download(context.Background(), "https://example.com", "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty destination, got %v", err)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("   ", 120); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DISTRESS_MODEL_RUNNER", "stub-model")

	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing file, got exists=true for %s", path)
	}
	if cfg.Downloader.Binary != "yt-dlp" {
		t.Fatalf("unexpected downloader binary: %q", cfg.Downloader.Binary)
	}
	if cfg.Downloader.TimeoutSeconds != 120 {
		t.Fatalf("unexpected downloader timeout: %d", cfg.Downloader.TimeoutSeconds)
	}
	if cfg.Analysis.MaxClipSeconds != 30 {
		t.Fatalf("unexpected clip cap: %d", cfg.Analysis.MaxClipSeconds)
	}
	if cfg.Analysis.SampleRate != 16000 {
		t.Fatalf("unexpected sample rate: %d", cfg.Analysis.SampleRate)
	}
	if cfg.Classifier.Runner != "stub-model" {
		t.Fatalf("env fallback not applied: %q", cfg.Classifier.Runner)
	}
	if !filepath.IsAbs(cfg.Paths.WorkspaceDir) {
		t.Fatalf("workspace dir not absolute: %q", cfg.Paths.WorkspaceDir)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := `
[paths]
workspace_dir = "` + filepath.Join(dir, "ws") + `"

[classifier]
runner = "model.sh"
timeout_seconds = 9

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if cfg.Paths.WorkspaceDir != filepath.Join(dir, "ws") {
		t.Fatalf("workspace dir not honored: %q", cfg.Paths.WorkspaceDir)
	}
	if cfg.Classifier.TimeoutSeconds != 9 {
		t.Fatalf("classifier timeout not honored: %d", cfg.Classifier.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestValidateRequiresRunner(t *testing.T) {
	t.Setenv("DISTRESS_MODEL_RUNNER", "")

	_, _, _, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil {
		t.Fatal("expected validation failure without classifier runner")
	}
	if !strings.Contains(err.Error(), "classifier.runner") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	cfg := Default()
	cfg.Classifier.Runner = "model"
	cfg.Downloader.TimeoutSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/clips")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "clips") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("DISTRESS_MODEL_RUNNER", "stub-model")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := Load(path); err != nil || !exists {
		t.Fatalf("sample config should load: exists=%v err=%v", exists, err)
	}
}

package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	payload := []byte("sixteen khz mono")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(copied) != string(payload) {
		t.Fatalf("copy mismatch: %q", copied)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	if NonEmptyFile(path, 100) {
		t.Fatal("missing file reported non-empty")
	}
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if NonEmptyFile(path, 100) {
		t.Fatal("file at threshold should not pass")
	}
	if err := os.WriteFile(path, make([]byte, 101), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !NonEmptyFile(path, 100) {
		t.Fatal("file above threshold should pass")
	}
	if NonEmptyFile(dir, 0) {
		t.Fatal("directory reported as file")
	}
}

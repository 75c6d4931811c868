package pathclean

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes the validation failures Sanitize can report.
type Kind string

const (
	// KindMissing means no file exists at the repaired path.
	KindMissing Kind = "missing"
	// KindEmpty means the file exists but holds zero bytes.
	KindEmpty Kind = "empty"
)

// PathError reports a path that failed validation after repair.
type PathError struct {
	Path string
	Kind Kind
}

func (e *PathError) Error() string {
	switch e.Kind {
	case KindEmpty:
		return fmt.Sprintf("audio file is empty: %s", e.Path)
	default:
		return fmt.Sprintf("audio file missing at sanitized path: %s", e.Path)
	}
}

// Sanitize trims, repairs, and resolves a raw path, then validates that the
// result names an existing, non-empty file. The returned error is always a
// *PathError when validation fails.
func Sanitize(raw string) (string, error) {
	candidate := trimDuplicatePrefix(strings.TrimSpace(raw))

	// An existing path wins over resolution against the working directory.
	final := candidate
	if _, err := os.Stat(candidate); err != nil {
		if abs, absErr := filepath.Abs(candidate); absErr == nil {
			final = abs
		}
	}

	info, err := os.Stat(final)
	if err != nil {
		return "", &PathError{Path: final, Kind: KindMissing}
	}
	if info.Size() == 0 {
		return "", &PathError{Path: final, Kind: KindEmpty}
	}
	return final, nil
}

// trimDuplicatePrefix repairs the doubled-volume-root artifact. A volume
// separator at index 0 or 1 is a legitimate drive root ("C:\...") and is left
// alone; any later occurrence is assumed to start the real path, so the
// prefix before the volume letter is discarded.
func trimDuplicatePrefix(path string) string {
	idx := strings.LastIndex(path, ":")
	if idx <= 1 {
		return path
	}
	return path[idx-1:]
}

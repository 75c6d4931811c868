package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveProbePath picks the ffprobe binary the inspector will execute.
//
// An explicitly configured probe binary always wins. Otherwise ffmpeg
// installs usually ship ffprobe alongside ffmpeg, so a sibling of the
// resolved transcoder binary is preferred before falling back to PATH
// lookup of "ffprobe".
func ResolveProbePath(probeBinary, transcoderBinary string) string {
	if probe := strings.TrimSpace(probeBinary); probe != "" && probe != "ffprobe" {
		return probe
	}

	if transcoder := strings.TrimSpace(transcoderBinary); transcoder != "" {
		if resolved, err := exec.LookPath(transcoder); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), executableName("ffprobe"))
			if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
				return candidate
			}
		}
	}

	return "ffprobe"
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

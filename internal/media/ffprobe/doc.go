// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The pipeline uses it to confirm a downloaded container actually carries
// an audio stream before handing it to the extractor, and to log the clip
// duration being bounded.
package ffprobe

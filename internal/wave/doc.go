// Package wave reads PCM WAV files into an in-memory waveform. Decoding
// prefers a directly opened file handle and falls back to a shared read of
// the whole file, which recovers clips still held open by the transcoder.
package wave

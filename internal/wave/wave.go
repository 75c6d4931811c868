package wave

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// Waveform holds decoded samples as frames x channels, normalized to
// [-1, 1]. The channel dimension is always >= 1; mono sources occupy a
// single column.
type Waveform struct {
	data     []float64 // interleaved
	channels int
}

// Frames returns the number of sample frames.
func (w Waveform) Frames() int {
	if w.channels == 0 {
		return 0
	}
	return len(w.data) / w.channels
}

// Channels returns the channel count (>= 1 for any decoded waveform).
func (w Waveform) Channels() int {
	return w.channels
}

// Sample returns the normalized sample at the given frame and channel.
func (w Waveform) Sample(frame, channel int) float64 {
	return w.data[frame*w.channels+channel]
}

// DecodeError reports that both the primary and fallback decode attempts
// failed for a file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode audio %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Load decodes the WAV file at path and returns the waveform and its sample
// rate. If decoding through a normally opened handle fails, the file is
// re-read through a shared read-only pass and decoded from memory once more
// before giving up.
func Load(path string) (Waveform, int, error) {
	var primaryErr error

	if f, err := os.Open(path); err == nil {
		wf, rate, derr := decode(f)
		f.Close()
		if derr == nil {
			return wf, rate, nil
		}
		primaryErr = derr
	} else {
		primaryErr = err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Waveform{}, 0, &DecodeError{Path: path, Err: errors.Join(primaryErr, err)}
	}
	wf, rate, derr := decode(bytes.NewReader(data))
	if derr != nil {
		return Waveform{}, 0, &DecodeError{Path: path, Err: errors.Join(primaryErr, derr)}
	}
	return wf, rate, nil
}

func decode(r io.ReadSeeker) (Waveform, int, error) {
	decoder := wav.NewDecoder(r)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Waveform{}, 0, err
	}
	if buf == nil || len(buf.Data) == 0 {
		return Waveform{}, 0, errors.New("wav contains no samples")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	data := make([]float64, len(buf.Data))
	for i, sample := range buf.Data {
		data[i] = float64(sample) / scale
	}

	return Waveform{data: data, channels: channels}, buf.Format.SampleRate, nil
}

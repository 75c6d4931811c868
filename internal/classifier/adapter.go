package classifier

import (
	"context"
	"log/slog"
	"math"

	"distress/internal/logging"
	"distress/internal/pathclean"
	"distress/internal/services"
	"distress/internal/wave"
)

// Verdict is the adapter's final answer for a clip.
type Verdict struct {
	Emotion    string
	Confidence float64
}

// Adapter wraps a Classifier with the defensive path handling the pipeline
// requires: the raw path is sanitized and the clip decoded in process
// before the model ever sees it.
type Adapter struct {
	model  Classifier
	logger *slog.Logger
}

// NewAdapter builds an adapter around a model classifier.
func NewAdapter(model Classifier, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Adapter{model: model, logger: logger}
}

// Classify sanitizes rawPath, verifies the clip decodes, and returns the
// dominant emotion with its confidence as a percentage rounded to two
// decimal places.
func (a *Adapter) Classify(ctx context.Context, rawPath string) (Verdict, error) {
	path, err := pathclean.Sanitize(rawPath)
	if err != nil {
		return Verdict{}, services.Wrap(services.ErrClassification, "classify", "sanitize", "", err)
	}

	waveform, sampleRate, err := wave.Load(path)
	if err != nil {
		return Verdict{}, services.Wrap(services.ErrClassification, "classify", "decode", "", err)
	}
	a.logger.Debug("clip verified",
		logging.String("path", path),
		logging.Int("frames", waveform.Frames()),
		logging.Int("channels", waveform.Channels()),
		logging.Int("sample_rate", sampleRate))

	result, err := a.model.ClassifyFile(ctx, path)
	if err != nil {
		return Verdict{}, err
	}

	return Verdict{
		Emotion:    result.Emotion(),
		Confidence: roundConfidence(result.MaxScore),
	}, nil
}

// roundConfidence converts a probability to a percentage with two decimal
// places.
func roundConfidence(probability float64) float64 {
	return math.Round(probability*100*100) / 100
}

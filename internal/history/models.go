package history

import "time"

// Outcome describes how far a session got before finishing.
type Outcome string

const (
	OutcomeCompleted            Outcome = "completed"
	OutcomeAcquisitionFailed    Outcome = "acquisition_failed"
	OutcomeExtractionFailed     Outcome = "extraction_failed"
	OutcomeClassificationFailed Outcome = "classification_failed"
)

// Record is one analysis session as stored.
type Record struct {
	ID           int64
	SessionToken string
	SourceURL    string
	Outcome      Outcome
	Emotion      string
	Confidence   float64
	DisplayLabel string
	Priority     string
	ClipPath     string
	ErrorMessage string
	CreatedAt    time.Time
}

// Succeeded reports whether the session produced a verdict.
func (r Record) Succeeded() bool {
	return r.Outcome == OutcomeCompleted
}

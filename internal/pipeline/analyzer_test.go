package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"distress/internal/classifier"
	"distress/internal/config"
	"distress/internal/history"
	"distress/internal/media/ffprobe"
	"distress/internal/services"
	"distress/internal/testsupport"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return testsupport.NewConfig(t)
}

type stubDownloader struct {
	err    error
	called bool
	dest   string
}

func (s *stubDownloader) Download(_ context.Context, _ string, destPath string) error {
	s.called = true
	s.dest = destPath
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(destPath, []byte("container"), 0o644)
}

type stubExtractor struct {
	t      *testing.T
	err    error
	called bool
}

func (s *stubExtractor) Extract(_ context.Context, _, audioPath string, _ int) error {
	s.called = true
	if s.err != nil {
		return s.err
	}
	testsupport.WriteWAV(s.t, audioPath, nil)
	return nil
}

type stubModel struct {
	result classifier.Result
	err    error
	called bool
}

func (s *stubModel) ClassifyFile(context.Context, string) (classifier.Result, error) {
	s.called = true
	return s.result, s.err
}

func newTestAnalyzer(t *testing.T, cfg *config.Config, store *history.Store, dl *stubDownloader, ex *stubExtractor, model *stubModel) *Analyzer {
	t.Helper()
	analyzer, err := New(cfg, store, nil,
		WithDownloader(dl),
		WithExtractor(ex),
		WithModel(model),
		WithProbe(func(context.Context, string, string) (ffprobe.Result, error) {
			return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}, nil
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return analyzer
}

func openStore(t *testing.T, cfg *config.Config) *history.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, cfg)
}

func TestRunHappyPath(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	dl := &stubDownloader{}
	ex := &stubExtractor{t: t}
	model := &stubModel{
		result: classifier.Result{
			Probabilities: []float64{0.8, 0.2},
			Labels:        []string{"ang", "neu"},
			MaxScore:      0.8,
			MaxIndex:      0,
		},
	}

	outcome, err := newTestAnalyzer(t, cfg, store, dl, ex, model).Run(context.Background(), "https://example.com/visit")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if outcome.Emotion != "ang" || outcome.Confidence != 80 {
		t.Fatalf("unexpected verdict: %+v", outcome)
	}
	if outcome.Triage.Priority != "Urgent" {
		t.Fatalf("expected Urgent triage, got %+v", outcome.Triage)
	}
	if filepath.Dir(outcome.ClipPath) != cfg.Paths.ArchiveDir {
		t.Fatalf("expected archived clip, got %q", outcome.ClipPath)
	}
	if _, err := os.Stat(outcome.ClipPath); err != nil {
		t.Fatalf("archived clip missing: %v", err)
	}

	records, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	rec := records[0]
	if rec.Outcome != history.OutcomeCompleted || rec.Emotion != "ang" || rec.Priority != "Urgent" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.SessionToken != outcome.SessionID {
		t.Fatalf("session token mismatch: %q vs %q", rec.SessionToken, outcome.SessionID)
	}
}

func TestRunDownloadFailureHaltsRun(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	dl := &stubDownloader{err: services.Wrap(services.ErrAcquisition, "acquire", "download", "no such video", nil)}
	ex := &stubExtractor{t: t}
	model := &stubModel{}

	_, err := newTestAnalyzer(t, cfg, store, dl, ex, model).Run(context.Background(), "https://example.com/gone")
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition failure, got %v", err)
	}
	if ex.called {
		t.Fatal("extractor must not run after failed download")
	}
	if model.called {
		t.Fatal("model must not run after failed download")
	}

	records, _ := store.List(context.Background(), 0)
	if len(records) != 1 || records[0].Outcome != history.OutcomeAcquisitionFailed {
		t.Fatalf("expected acquisition_failed record, got %+v", records)
	}
}

func TestRunExtractionFailureHaltsRun(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	dl := &stubDownloader{}
	ex := &stubExtractor{t: t, err: services.Wrap(services.ErrExtraction, "extract", "clip", "no audio", nil)}
	model := &stubModel{}

	_, err := newTestAnalyzer(t, cfg, store, dl, ex, model).Run(context.Background(), "https://example.com/silent")
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	if model.called {
		t.Fatal("model must not run after failed extraction")
	}

	records, _ := store.List(context.Background(), 0)
	if len(records) != 1 || records[0].Outcome != history.OutcomeExtractionFailed {
		t.Fatalf("expected extraction_failed record, got %+v", records)
	}
}

func TestRunClassificationFailureRecorded(t *testing.T) {
	cfg := testConfig(t)
	store := openStore(t, cfg)
	dl := &stubDownloader{}
	ex := &stubExtractor{t: t}
	model := &stubModel{err: services.Wrap(services.ErrClassification, "classify", "model", "inference crashed", nil)}

	_, err := newTestAnalyzer(t, cfg, store, dl, ex, model).Run(context.Background(), "https://example.com/visit")
	if !errors.Is(err, services.ErrClassification) {
		t.Fatalf("expected classification error, got %v", err)
	}

	records, _ := store.List(context.Background(), 0)
	if len(records) != 1 || records[0].Outcome != history.OutcomeClassificationFailed {
		t.Fatalf("expected classification_failed record, got %+v", records)
	}
}

func TestRunResetsWorkspaceBetweenRuns(t *testing.T) {
	cfg := testConfig(t)
	dl := &stubDownloader{}
	ex := &stubExtractor{t: t}
	model := &stubModel{
		result: classifier.Result{
			Probabilities: []float64{1},
			Labels:        []string{"neu"},
			MaxScore:      1,
			MaxIndex:      0,
		},
	}
	analyzer := newTestAnalyzer(t, cfg, nil, dl, ex, model)

	first, err := analyzer.Run(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	firstVideo := dl.dest

	if _, err := analyzer.Run(context.Background(), "https://example.com/b"); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if _, err := os.Stat(firstVideo); !os.IsNotExist(err) {
		t.Fatalf("first session's video should be gone after reset: %v", err)
	}
	// The archived clip survives the reset.
	if _, err := os.Stat(first.ClipPath); err != nil {
		t.Fatalf("archived clip should survive reset: %v", err)
	}
}

func TestRunFailsPreflightOnMissingArchiveDir(t *testing.T) {
	cfg := testConfig(t)
	if err := os.RemoveAll(cfg.Paths.ArchiveDir); err != nil {
		t.Fatalf("remove archive dir: %v", err)
	}
	dl := &stubDownloader{}
	analyzer := newTestAnalyzer(t, cfg, nil, dl, &stubExtractor{t: t}, &stubModel{})

	_, err := analyzer.Run(context.Background(), "https://example.com/visit")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if dl.called {
		t.Fatal("downloader must not run when preflight fails")
	}
}

func TestRunRejectsEmptyURL(t *testing.T) {
	cfg := testConfig(t)
	analyzer := newTestAnalyzer(t, cfg, nil, &stubDownloader{}, &stubExtractor{t: t}, &stubModel{})

	_, err := analyzer.Run(context.Background(), "   ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

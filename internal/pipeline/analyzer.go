package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"distress/internal/classifier"
	"distress/internal/config"
	"distress/internal/fileutil"
	"distress/internal/history"
	"distress/internal/logging"
	"distress/internal/media/ffprobe"
	"distress/internal/preflight"
	"distress/internal/services"
	"distress/internal/services/ffmpeg"
	"distress/internal/services/ytdlp"
	"distress/internal/triage"
	"distress/internal/workspace"
)

// Downloader acquires a remote source into the workspace.
type Downloader interface {
	Download(ctx context.Context, url, destPath string) error
}

// Extractor produces the bounded analysis clip from an acquired container.
type Extractor interface {
	Extract(ctx context.Context, videoPath, audioPath string, maxSeconds int) error
}

// ProbeFunc inspects an acquired container. Probing is advisory: its
// failure never fails a run.
type ProbeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Outcome is the result of a completed run.
type Outcome struct {
	SessionID  string
	SourceURL  string
	Emotion    string
	Confidence float64
	Triage     triage.Entry
	ClipPath   string
}

// Analyzer drives the full acquisition-to-triage sequence.
type Analyzer struct {
	cfg        *config.Config
	downloader Downloader
	extractor  Extractor
	adapter    *classifier.Adapter
	workspace  *workspace.Manager
	store      *history.Store
	probe      ProbeFunc
	logger     *slog.Logger
}

// Option overrides a collaborator, primarily for tests.
type Option func(*Analyzer)

func WithDownloader(d Downloader) Option {
	return func(a *Analyzer) {
		if d != nil {
			a.downloader = d
		}
	}
}

func WithExtractor(e Extractor) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.extractor = e
		}
	}
}

func WithModel(model classifier.Classifier) Option {
	return func(a *Analyzer) {
		if model != nil {
			a.adapter = classifier.NewAdapter(model, a.logger)
		}
	}
}

func WithStore(store *history.Store) Option {
	return func(a *Analyzer) { a.store = store }
}

func WithProbe(probe ProbeFunc) Option {
	return func(a *Analyzer) { a.probe = probe }
}

// New builds an analyzer from configuration. The history store is optional;
// pass nil to skip persistence.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	downloader, err := ytdlp.New(cfg.Downloader.Binary, cfg.Downloader.TimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("build downloader: %w", err)
	}
	extractor, err := ffmpeg.New(
		cfg.Transcoder.Binary,
		cfg.Transcoder.TimeoutSeconds,
		cfg.Analysis.SampleRate,
		cfg.Transcoder.MinOutputBytes,
	)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	model, err := classifier.NewCommand(cfg.Classifier.Runner, cfg.Classifier.Args, cfg.Classifier.TimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	analyzer := &Analyzer{
		cfg:        cfg,
		downloader: downloader,
		extractor:  extractor,
		adapter:    classifier.NewAdapter(model, logger),
		workspace:  workspace.NewManager(cfg.Paths.WorkspaceDir),
		store:      store,
		probe:      ffprobe.Inspect,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
	}
	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer, nil
}

// Run executes one full analysis of the given source URL.
func (a *Analyzer) Run(ctx context.Context, sourceURL string) (*Outcome, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, services.Wrap(services.ErrValidation, "run", "", "source url required", nil)
	}

	for _, check := range preflight.RunAll(ctx, a.cfg) {
		if !check.Passed {
			return nil, services.Wrap(services.ErrConfiguration, "run", "preflight",
				fmt.Sprintf("%s: %s", check.Name, check.Detail), nil)
		}
	}

	if err := a.workspace.Acquire(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "lock", "", err)
	}
	defer func() { _ = a.workspace.Release() }()

	if err := a.workspace.Reset(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "run", "workspace", "", err)
	}

	session := a.workspace.NewSession()
	logger := a.logger.With(
		logging.String(logging.FieldSessionID, session.ID),
		logging.String("source_url", sourceURL),
	)
	ctx = services.WithSessionID(ctx, session.ID)
	logger.Info("analysis started")

	if err := a.downloader.Download(ctx, sourceURL, session.VideoPath); err != nil {
		logger.Error("acquisition failed", logging.Error(err))
		a.record(ctx, logger, session, sourceURL, history.Record{
			Outcome:      history.OutcomeAcquisitionFailed,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}
	logger.Info("source acquired", logging.String("path", session.VideoPath))

	a.inspect(ctx, logger, session.VideoPath)

	if err := a.extractor.Extract(ctx, session.VideoPath, session.AudioPath, a.cfg.Analysis.MaxClipSeconds); err != nil {
		logger.Error("extraction failed", logging.Error(err))
		a.record(ctx, logger, session, sourceURL, history.Record{
			Outcome:      history.OutcomeExtractionFailed,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}
	logger.Info("clip extracted",
		logging.String("path", session.AudioPath),
		logging.Int("max_seconds", a.cfg.Analysis.MaxClipSeconds))

	verdict, err := a.adapter.Classify(ctx, session.AudioPath)
	if err != nil {
		logger.Error("classification failed", logging.Error(err))
		a.record(ctx, logger, session, sourceURL, history.Record{
			Outcome:      history.OutcomeClassificationFailed,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	entry := triage.Lookup(verdict.Emotion)
	clipPath := a.archiveClip(logger, session)

	a.record(ctx, logger, session, sourceURL, history.Record{
		Outcome:      history.OutcomeCompleted,
		Emotion:      verdict.Emotion,
		Confidence:   verdict.Confidence,
		DisplayLabel: entry.Label,
		Priority:     entry.Priority,
		ClipPath:     clipPath,
	})

	logger.Info("analysis complete",
		logging.String("emotion", verdict.Emotion),
		logging.Float64("confidence", verdict.Confidence),
		logging.String("priority", entry.Priority))

	return &Outcome{
		SessionID:  session.ID,
		SourceURL:  sourceURL,
		Emotion:    verdict.Emotion,
		Confidence: verdict.Confidence,
		Triage:     entry,
		ClipPath:   clipPath,
	}, nil
}

// inspect logs advisory container metadata. A container without an audio
// stream is still handed to the extractor, which produces the definitive
// failure.
func (a *Analyzer) inspect(ctx context.Context, logger *slog.Logger, videoPath string) {
	if a.probe == nil {
		return
	}
	binary := a.cfg.Transcoder.ProbeBinary
	result, err := a.probe(ctx, binary, videoPath)
	if err != nil {
		logger.Warn("container inspection failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "clip duration unknown before extraction"))
		return
	}
	logger.Info("container inspected",
		logging.Float64("duration_seconds", result.DurationSeconds()),
		logging.Int("audio_streams", result.AudioStreamCount()),
		logging.Int64("size_bytes", result.SizeBytes()))
	if !result.HasAudio() {
		logger.Warn("container has no audio stream",
			logging.String(logging.FieldImpact, "extraction will fail"))
	}
}

// archiveClip copies the analysis clip out of the workspace so it survives
// the next reset. Archive failures are logged and swallowed.
func (a *Analyzer) archiveClip(logger *slog.Logger, session workspace.Session) string {
	dest := filepath.Join(a.cfg.Paths.ArchiveDir, filepath.Base(session.AudioPath))
	if err := fileutil.CopyFile(session.AudioPath, dest); err != nil {
		logger.Warn("clip archive failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "clip lost on next workspace reset"))
		return session.AudioPath
	}
	return dest
}

func (a *Analyzer) record(ctx context.Context, logger *slog.Logger, session workspace.Session, sourceURL string, record history.Record) {
	if a.store == nil {
		return
	}
	record.SessionToken = session.ID
	record.SourceURL = sourceURL
	if _, err := a.store.Add(ctx, record); err != nil {
		logger.Warn("history write failed", logging.Error(err))
	}
}

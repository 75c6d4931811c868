package config

const (
	defaultWorkspaceDir       = "~/.local/share/distress/workspace"
	defaultArchiveDir         = "~/.local/share/distress/archive"
	defaultLogDir             = "~/.local/share/distress/logs"
	defaultDownloaderBinary   = "yt-dlp"
	defaultDownloaderTimeout  = 120
	defaultTranscoderBinary   = "ffmpeg"
	defaultProbeBinary        = "ffprobe"
	defaultTranscoderTimeout  = 300
	defaultMinOutputBytes     = 100
	defaultMaxClipSeconds     = 30
	defaultSampleRate         = 16000
	defaultClassifierTimeout  = 120
	defaultHistoryLimit       = 50
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			ArchiveDir:   defaultArchiveDir,
			LogDir:       defaultLogDir,
		},
		Downloader: Downloader{
			Binary:         defaultDownloaderBinary,
			TimeoutSeconds: defaultDownloaderTimeout,
		},
		Transcoder: Transcoder{
			Binary:         defaultTranscoderBinary,
			ProbeBinary:    defaultProbeBinary,
			TimeoutSeconds: defaultTranscoderTimeout,
			MinOutputBytes: defaultMinOutputBytes,
		},
		Analysis: Analysis{
			MaxClipSeconds: defaultMaxClipSeconds,
			SampleRate:     defaultSampleRate,
		},
		Classifier: Classifier{
			TimeoutSeconds: defaultClassifierTimeout,
		},
		History: History{
			Enabled: true,
			Limit:   defaultHistoryLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if strings.TrimSpace(c.Classifier.Runner) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/distress/config.toml"
		}
		return fmt.Errorf("classifier.runner is required. Set DISTRESS_MODEL_RUNNER env var or edit %s (create with 'distress config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"downloader.timeout_seconds": c.Downloader.TimeoutSeconds,
		"transcoder.timeout_seconds": c.Transcoder.TimeoutSeconds,
		"classifier.timeout_seconds": c.Classifier.TimeoutSeconds,
	})
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.MaxClipSeconds <= 0 {
		return errors.New("analysis.max_clip_seconds must be positive")
	}
	if c.Analysis.SampleRate <= 0 {
		return errors.New("analysis.sample_rate must be positive")
	}
	if c.Transcoder.MinOutputBytes <= 0 {
		return errors.New("transcoder.min_output_bytes must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

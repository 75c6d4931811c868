// Package config loads, normalizes, and validates the TOML configuration for
// the distress pipeline. Paths are expanded to absolute form during load so
// downstream components never see "~" or relative directories.
package config

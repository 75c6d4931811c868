// Package logging constructs the application slog.Logger and provides the
// attribute helpers used across the pipeline. Two output formats exist:
// a human-oriented console handler and a machine-oriented JSON handler.
package logging

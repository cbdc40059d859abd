// Package logging builds the slog loggers used across lyricsbox: a compact
// human-readable console handler and a JSON handler for machine consumption.
package logging

// Package logger builds the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Writer resolves the configured output. "file" appends to review-api.log and
// falls back to stdout when the file cannot be opened.
func (c Config) Writer() io.Writer {
	switch c.Output {
	case "stderr":
		return os.Stderr
	case "file":
		file, err := os.OpenFile("review-api.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}

// NewLogger initializes a slog logger. A nil output uses cfg.Writer().
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = cfg.Writer()
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		*level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

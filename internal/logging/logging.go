// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/msomdec/notebook/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger that writes human-readable text to stdout and JSON to
// either a rotating log file (when cfg.LogFile is set) or stderr. The
// returned closer releases the file; it is a no-op without one.
func New(cfg *config.Config) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var jsonOut io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}
		jsonOut = rotating
		closer = rotating
	}

	return newLogger(os.Stdout, jsonOut, opts), closer
}

func newLogger(text, json io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	return slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(text, opts),
		slog.NewJSONHandler(json, opts),
	))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

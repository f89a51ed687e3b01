// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Options controls where and how log records are written.
type Options struct {
	Level  slog.Level
	Format string // "text" or "json"
	// File, when set, sends logs to a rotating file instead of Stdout.
	File   string
	Stdout io.Writer
}

// Setup builds a logger from opts and installs it as the slog default.
// When the log file directory cannot be created the logger discards output
// and the error is returned so the caller can decide whether to abort.
func Setup(opts Options) (*slog.Logger, error) {
	handlerOptions := &slog.HandlerOptions{Level: opts.Level}

	writer, err := openWriter(opts)
	if err != nil {
		logger := slog.New(newHandler(opts.Format, io.Discard, handlerOptions))
		slog.SetDefault(logger)
		return logger, err
	}

	logger := slog.New(newHandler(opts.Format, writer, handlerOptions))
	slog.SetDefault(logger)
	return logger, nil
}

func openWriter(opts Options) (io.Writer, error) {
	logPath := strings.TrimSpace(opts.File)
	if logPath == "" {
		if opts.Stdout != nil {
			return opts.Stdout, nil
		}
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}, nil
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return slog.NewJSONHandler(out, opts)
	default:
		return slog.NewTextHandler(out, opts)
	}
}

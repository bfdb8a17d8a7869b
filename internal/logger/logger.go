package logger

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

// Options selects where and how structured logs are written.
type Options struct {
	Level  string
	Format string
	// File switches output to a rotating log file; empty means Fallback.
	File     string
	Fallback io.Writer
}

// Init builds the process logger and installs it as the slog default.
func Init(opts Options) (*slog.Logger, error) {
	handlerOptions := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	out := opts.Fallback
	if out == nil {
		out = os.Stdout
	}

	var initErr error
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			initErr = err
			out = io.Discard
		} else {
			out = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    maxLogSizeMB,
				MaxBackups: maxLogBackups,
				MaxAge:     maxLogAgeDays,
				Compress:   true,
			}
		}
	}

	logger := slog.New(newHandler(opts.Format, out, handlerOptions))
	slog.SetDefault(logger)
	return logger, initErr
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}

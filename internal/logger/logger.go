package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvLevel names the environment variable overriding the configured level.
const EnvLevel = "PRMPT_LOG"

// LevelFromString parses debug/info/warn/error and their short forms
// dbg/inf/wrn/err.
func LevelFromString(s string) (l slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return slog.LevelDebug, true
	case "info", "inf":
		return slog.LevelInfo, true
	case "warn", "wrn":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// ResolveLevel picks the effective level: debug wins, then $PRMPT_LOG, then
// the configured level.
func ResolveLevel(configured string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	if l, ok := LevelFromString(os.Getenv(EnvLevel)); ok {
		return l
	}
	l, _ := LevelFromString(configured)
	return l
}

// InitLogger installs a text handler writing to the file at path as the
// default slog logger. Stdout carries the prompt, so logs never go there.
// The returned closer closes the log file.
func InitLogger(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	// https://cs.opensource.google/go/go/+/refs/tags/go1.24.1:src/log/slog/handler.go;l=265-315;drc=3d61de41a28b310fedc345d76320829bd08146b3
	// slog defaults to logging in the order of time, level, msg, and other attributes.
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})

	slog.SetDefault(slog.New(handler))
	return logFile, nil
}

// Discard routes the default logger nowhere, for when the log file cannot
// be opened.
func Discard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

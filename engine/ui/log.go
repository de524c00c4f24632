package ui

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).With("pkg", "ui")

// SetLogger replaces the package logger. Nil is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

package main

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Every component receives it
// by injection; nothing logs through the slog default.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

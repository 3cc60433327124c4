// Package logging holds skillsmith's global structured logger plus the
// user-facing output helpers the CLI commands print with.
//
// Structured records go to stderr (or whatever writer Setup receives)
// so stdout stays reserved for command output: a script capturing the
// emitted skill path is never polluted by --verbose traces.
package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the process-wide structured logger. Commands call the
	// package-level functions below rather than touching it directly.
	Logger *slog.Logger

	// Verbose mirrors the --verbose flag; Setup keeps it in sync.
	Verbose bool
)

func init() {
	// Usable before the root command runs Setup (config loading logs).
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Setup configures the logger from the root command's persistent flags.
// Verbose lowers the level to debug; jsonOutput swaps the text handler
// for JSON records.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if w == nil {
		w = os.Stderr
	}

	if jsonOutput {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// Debug logs a debug record; visible only with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info record.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning record.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error record.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger carrying additional attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// ForSkill returns a logger scoped to one skill, so every record of a
// generation run carries the skill name.
func ForSkill(name string) *slog.Logger {
	return Logger.With("skill", name)
}

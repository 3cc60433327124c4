package logging

import (
	"fmt"
	"os"
)

// User-facing CLI output, separate from the structured logger: fixed
// one-line status messages for a human running skillsmith
// interactively. Progress goes to stdout, problems to stderr, each
// line tagged with a short status mark.

// UserInfo prints a neutral status line to stdout.
func UserInfo(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a completed-action line to stdout, e.g. after a
// skill has been emitted.
func UserSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a non-fatal problem to stderr.
func UserWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints a fatal problem to stderr; the caller decides the
// exit code.
func UserError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

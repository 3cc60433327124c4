// Package logging provides logging utilities for skillsmith.
//
// Two output channels are provided:
//   - Debug logging: structured logs for debugging (via slog)
//   - User output: formatted messages for the CLI user
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("scanning library", "dir", dir, "skills", count)
//	logging.Warn("skeleton read failed", "path", path, "error", err)
//
// User-facing output goes to stdout/stderr with emoji prefixes:
//
//	logging.UserInfo("Scanning skill library %s...", dir)
//	logging.UserSuccess("Skill %s written to %s", name, path)
//	logging.UserWarning("No similar skills found, using default layout")
//	logging.UserError("Failed to write skill: %v", err)
//
// The structured logger defaults to a text handler on stderr at info
// level. Setup reconfigures it from the CLI flags.
package logging

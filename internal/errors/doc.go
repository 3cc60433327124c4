// Package errors provides typed errors with exit codes for skillsmith.
//
// Commands return a *SmithError (directly or wrapped) and main maps it
// to a process exit code via GetExitCode. Constructors exist for the
// common failure categories:
//
//	errors.LibraryNotFound(dir)
//	errors.SkillExists(name)
//	errors.ConfigError("invalid library dir", err)
//	errors.EmitFailed("SKILL.md", err)
//
// The synthesis and workflow cores never produce these errors: malformed
// answers and missing enrichment inputs degrade silently there. Errors
// surface only at the edges (config load, library IO, file emission).
package errors

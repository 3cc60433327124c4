package errors

import (
	"errors"
	"fmt"
)

// Exit codes for skillsmith
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitLibraryNotFound = 2
	ExitSkillNotFound   = 3
	ExitSkillExists     = 4
	ExitConfigError     = 5
	ExitEmitError       = 6
)

// SmithError is the base error type for skillsmith
type SmithError struct {
	Code    int
	Message string
	Cause   error
}

func (e *SmithError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SmithError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SmithError) ExitCode() int {
	return e.Code
}

// New creates a new SmithError
func New(code int, message string) *SmithError {
	return &SmithError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SmithError
func Wrap(code int, message string, cause error) *SmithError {
	return &SmithError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// LibraryNotFound returns an error for a missing skill library directory
func LibraryNotFound(dir string) *SmithError {
	return New(ExitLibraryNotFound, fmt.Sprintf("skill library not found: %s", dir))
}

// SkillNotFound returns an error for a missing skill
func SkillNotFound(name string) *SmithError {
	return New(ExitSkillNotFound, fmt.Sprintf("skill not found: %s", name))
}

// SkillExists returns an error when a skill directory already exists
func SkillExists(name string) *SmithError {
	return New(ExitSkillExists, fmt.Sprintf("skill already exists: %s", name))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *SmithError {
	return Wrap(ExitConfigError, message, cause)
}

// EmitFailed returns an error for file emission failures
func EmitFailed(path string, cause error) *SmithError {
	return Wrap(ExitEmitError, fmt.Sprintf("failed to write %s", path), cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *SmithError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var smithErr *SmithError
	if errors.As(err, &smithErr) {
		return smithErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

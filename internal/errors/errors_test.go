package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSmithError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *SmithError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestSmithError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestSmithError_ExitCode(t *testing.T) {
	tests := []struct {
		code int
		name string
	}{
		{ExitSuccess, "success"},
		{ExitGeneralError, "general"},
		{ExitLibraryNotFound, "library not found"},
		{ExitSkillNotFound, "skill not found"},
		{ExitSkillExists, "skill exists"},
		{ExitConfigError, "config error"},
		{ExitEmitError, "emit error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "test")
			if got := err.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	if err := LibraryNotFound("/tmp/lib"); err.Code != ExitLibraryNotFound {
		t.Errorf("LibraryNotFound code = %d, want %d", err.Code, ExitLibraryNotFound)
	}
	if err := SkillNotFound("my-skill"); err.Code != ExitSkillNotFound {
		t.Errorf("SkillNotFound code = %d, want %d", err.Code, ExitSkillNotFound)
	}
	if err := SkillExists("my-skill"); err.Code != ExitSkillExists {
		t.Errorf("SkillExists code = %d, want %d", err.Code, ExitSkillExists)
	}
	if err := EmitFailed("SKILL.md", fmt.Errorf("disk full")); err.Code != ExitEmitError {
		t.Errorf("EmitFailed code = %d, want %d", err.Code, ExitEmitError)
	}
}

func TestGetExitCode(t *testing.T) {
	smithErr := SkillExists("dup")
	wrapped := fmt.Errorf("outer: %w", smithErr)

	if got := GetExitCode(wrapped); got != ExitSkillExists {
		t.Errorf("GetExitCode(wrapped) = %d, want %d", got, ExitSkillExists)
	}

	plain := errors.New("plain error")
	if got := GetExitCode(plain); got != ExitGeneralError {
		t.Errorf("GetExitCode(plain) = %d, want %d", got, ExitGeneralError)
	}
}

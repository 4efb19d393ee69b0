// SPDX-License-Identifier: MPL-2.0

package guard

import (
	"errors"
	"fmt"

	"github.com/tidyup/tidyup/internal/runner"
)

const (
	// ExitPrecondition is the status for platform, privilege and first-category
	// path failures.
	ExitPrecondition runner.ExitCode = 1
	// ExitDeviceMissing is the status for the second, device-specific path category.
	ExitDeviceMissing runner.ExitCode = 2
)

var (
	// ErrPlatformMismatch is the sentinel error wrapped by PlatformMismatchError.
	ErrPlatformMismatch = errors.New("platform mismatch")
	// ErrInsufficientPrivilege is the sentinel error wrapped by InsufficientPrivilegeError.
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
	// ErrMissingPath is the sentinel error wrapped by MissingPathError.
	ErrMissingPath = errors.New("missing required path")
	// ErrExternalToolFailure is the sentinel error wrapped by ExternalToolFailureError.
	ErrExternalToolFailure = errors.New("external tool failed")
	// ErrUserDeclined is returned when the user does not confirm an action.
	// It is a normal early exit, not a failure: ExitCode maps it to 0.
	ErrUserDeclined = errors.New("declined by user")
)

type (
	// PlatformMismatchError is returned when the host is not the expected platform.
	PlatformMismatchError struct {
		Expected string
		Actual   string
	}

	// InsufficientPrivilegeError is returned when elevated rights are required
	// but the process does not have them.
	InsufficientPrivilegeError struct {
		Platform string
	}

	// MissingPathError is returned for the first required path that does not exist.
	MissingPathError struct {
		Path  string
		Label string
		Code  runner.ExitCode
	}

	// ExternalToolFailureError is returned when a wrapped tool exits non-zero
	// or cannot be started.
	ExternalToolFailureError struct {
		Program  string
		Command  string
		ExitCode runner.ExitCode
		Err      error
	}
)

// Error implements the error interface.
func (e *PlatformMismatchError) Error() string {
	return fmt.Sprintf("this chore requires %s, but the host is %s", e.Expected, e.Actual)
}

// Unwrap returns ErrPlatformMismatch for errors.Is() compatibility.
func (e *PlatformMismatchError) Unwrap() error { return ErrPlatformMismatch }

// Error implements the error interface.
func (e *InsufficientPrivilegeError) Error() string {
	if e.Platform == "Windows" {
		return "this chore must be run from an elevated (administrator) console"
	}
	return "this chore must be run as root (try sudo)"
}

// Unwrap returns ErrInsufficientPrivilege for errors.Is() compatibility.
func (e *InsufficientPrivilegeError) Unwrap() error { return ErrInsufficientPrivilege }

// Error implements the error interface.
func (e *MissingPathError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s not found: %s", e.Label, e.Path)
	}
	return "path not found: " + e.Path
}

// Unwrap returns ErrMissingPath for errors.Is() compatibility.
func (e *MissingPathError) Unwrap() error { return ErrMissingPath }

// Error implements the error interface.
func (e *ExternalToolFailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Program, e.Err)
	}
	return fmt.Sprintf("%s exited with status %d", e.Program, e.ExitCode)
}

// Unwrap returns both the sentinel and the underlying cause so errors.Is
// matches ErrExternalToolFailure as well as e.g. context.Canceled.
func (e *ExternalToolFailureError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrExternalToolFailure, e.Err}
	}
	return []error{ErrExternalToolFailure}
}

// ExitCode maps an error returned by a Guard to a process exit status.
// nil and ErrUserDeclined map to 0. External tool failures map to the tool's
// own status; everything else maps to ExitPrecondition.
func ExitCode(err error) runner.ExitCode {
	if err == nil || errors.Is(err, ErrUserDeclined) {
		return 0
	}

	var missing *MissingPathError
	if errors.As(err, &missing) {
		if missing.Code == 0 {
			return ExitPrecondition
		}
		return missing.Code
	}

	var tool *ExternalToolFailureError
	if errors.As(err, &tool) {
		if tool.ExitCode == 0 {
			return ExitPrecondition
		}
		return tool.ExitCode
	}

	return ExitPrecondition
}

// IsPrecondition reports whether err is a platform, privilege or path failure.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPlatformMismatch) ||
		errors.Is(err, ErrInsufficientPrivilege) ||
		errors.Is(err, ErrMissingPath)
}

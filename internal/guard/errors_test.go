// SPDX-License-Identifier: MPL-2.0

package guard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tidyup/tidyup/internal/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want runner.ExitCode
	}{
		{"nil", nil, 0},
		{"declined", ErrUserDeclined, 0},
		{"wrapped declined", fmt.Errorf("sync: %w", ErrUserDeclined), 0},
		{"platform", &PlatformMismatchError{Expected: "Darwin", Actual: "Linux"}, 1},
		{"privilege", &InsufficientPrivilegeError{}, 1},
		{"first path category", &MissingPathError{Path: "/books", Code: 1}, 1},
		{"device path category", &MissingPathError{Path: "/Volumes/KOBOeReader", Code: 2}, 2},
		{"path without code", &MissingPathError{Path: "/x"}, 1},
		{"tool", &ExternalToolFailureError{Program: "rsync", ExitCode: 23}, 23},
		{"wrapped tool", fmt.Errorf("sync: %w", &ExternalToolFailureError{Program: "port", ExitCode: 3}), 3},
		{"tool without code", &ExternalToolFailureError{Program: "port", Err: errors.New("boom")}, 1},
		{"unknown", errors.New("config broken"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorSentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		sentinel error
	}{
		{&PlatformMismatchError{}, ErrPlatformMismatch},
		{&InsufficientPrivilegeError{}, ErrInsufficientPrivilege},
		{&MissingPathError{}, ErrMissingPath},
		{&ExternalToolFailureError{}, ErrExternalToolFailure},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.sentinel) {
			t.Errorf("%T does not wrap %v", tt.err, tt.sentinel)
		}
	}
}

func TestExternalToolFailureError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	err := &ExternalToolFailureError{Program: "rsync", ExitCode: 130, Err: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected cause to be reachable with errors.Is")
	}
	if !errors.Is(err, ErrExternalToolFailure) {
		t.Error("expected sentinel to be reachable with errors.Is")
	}
}

func TestIsPrecondition(t *testing.T) {
	t.Parallel()

	if !IsPrecondition(&MissingPathError{}) {
		t.Error("missing path is a precondition failure")
	}
	if IsPrecondition(&ExternalToolFailureError{}) {
		t.Error("tool failure is not a precondition failure")
	}
	if IsPrecondition(ErrUserDeclined) {
		t.Error("decline is not a precondition failure")
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&PlatformMismatchError{Expected: "Darwin", Actual: "Linux"}, "this chore requires Darwin, but the host is Linux"},
		{&InsufficientPrivilegeError{Platform: "Darwin"}, "this chore must be run as root (try sudo)"},
		{&MissingPathError{Path: "/Volumes/KOBOeReader", Label: "e-reader"}, "e-reader not found: /Volumes/KOBOeReader"},
		{&ExternalToolFailureError{Program: "port", ExitCode: 1}, "port exited with status 1"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

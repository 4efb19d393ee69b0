// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tidyup/tidyup/internal/config"
	"github.com/tidyup/tidyup/internal/guard"
	"github.com/tidyup/tidyup/internal/issue"
	"github.com/tidyup/tidyup/internal/runner"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.MissingPathId, "")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	t.Run("nil is a no-op", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, nil, "notty", nil)
		if buf.Len() != 0 {
			t.Errorf("output = %q, want empty", buf.String())
		}
	})

	t.Run("styled message without issue", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, newServiceError(errors.New("x"), 0, "styled\n"), "notty", nil)
		if buf.String() != "styled\n" {
			t.Errorf("output = %q, want %q", buf.String(), "styled\n")
		}
	})

	t.Run("issue card follows message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, newServiceError(errors.New("x"), issue.DeviceNotMountedId, "styled\n"), "notty", nil)
		out := buf.String()
		if !strings.HasPrefix(out, "styled\n") {
			t.Errorf("output should start with the styled message: %q", out)
		}
		if len(out) <= len("styled\n") {
			t.Error("expected the issue card to be rendered")
		}
	})
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"platform", &guard.PlatformMismatchError{Expected: "Darwin", Actual: "Linux"}, issue.PlatformMismatchId},
		{"privilege", &guard.InsufficientPrivilegeError{Platform: "Darwin"}, issue.InsufficientPrivilegeId},
		{"library", &guard.MissingPathError{Path: "/b", Label: "library", Code: guard.ExitPrecondition}, issue.MissingPathId},
		{"device", &guard.MissingPathError{Path: "/v", Label: "e-reader", Code: guard.ExitDeviceMissing}, issue.DeviceNotMountedId},
		{"not found", &guard.ExternalToolFailureError{Program: "rsync", ExitCode: runner.ExitNotFound}, issue.ToolNotFoundId},
		{"tool", &guard.ExternalToolFailureError{Program: "port", ExitCode: 1}, issue.ExternalToolFailedId},
		{"wrapped", fmt.Errorf("chore: %w", &guard.PlatformMismatchError{}), issue.PlatformMismatchId},
		{"actionable", issue.NewErrorContext().WithOperation("load").WithIssue(issue.ConfigLoadFailedId).Wrap(errors.New("x")).BuildError(), issue.ConfigLoadFailedId},
		{"plain", errors.New("boom"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChoreFailure_LogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"precondition stays at debug", &guard.MissingPathError{Path: "/v", Label: "e-reader", Code: guard.ExitDeviceMissing}, false},
		{"tool failure is logged", &guard.ExternalToolFailureError{Program: "rsync", ExitCode: 23}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs, stderr bytes.Buffer
			s := &session{
				logger:     log.NewWithOptions(&logs, log.Options{Level: log.InfoLevel}),
				stderr:     &stderr,
				issueStyle: "notty",
			}
			err := s.choreFailure(tt.err)

			var exitErr *ExitError
			if !errors.As(err, &exitErr) || !exitErr.Reported {
				t.Fatalf("choreFailure() = %v, want a reported *ExitError", err)
			}
			if got := strings.Contains(logs.String(), "chore failed"); got != tt.wantLog {
				t.Errorf("logged = %v, want %v; log %q", got, tt.wantLog, logs.String())
			}
		})
	}
}

func TestConfigFailure_IssueFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"attached", issue.NewErrorContext().WithOperation("load configuration").WithIssue(issue.ConfigLoadFailedId).Wrap(errors.New("x")).BuildError(), issue.ConfigLoadFailedId},
		{"missing library", &guard.MissingPathError{Path: "/b", Label: "library", Code: guard.ExitPrecondition}, issue.MissingPathId},
		{"plain", errors.New("bad config"), issue.ConfigLoadFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := configFailure(&bytes.Buffer{}, tt.err, false)
			var svcErr *ServiceError
			if !errors.As(err, &svcErr) {
				t.Fatalf("configFailure() = %v, want a *ServiceError", err)
			}
			if svcErr.IssueID != tt.want {
				t.Errorf("IssueID = %d, want %d", svcErr.IssueID, tt.want)
			}
			if guard.ExitCode(err) != guard.ExitPrecondition {
				t.Errorf("ExitCode = %d, want %d", guard.ExitCode(err), guard.ExitPrecondition)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"declined", guard.ErrUserDeclined, 0},
		{"exit error", &ExitError{Code: 23}, 23},
		{"wrapped exit error", fmt.Errorf("x: %w", &ExitError{Code: 2}), 2},
		{"usage error", errors.New(`unknown command "nope"`), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIssueStyleFor_NonTerminalIsNotty(t *testing.T) {
	t.Parallel()

	for _, scheme := range []config.ColorScheme{config.ColorSchemeAuto, config.ColorSchemeDark, config.ColorSchemeLight} {
		if got := issueStyleFor(scheme, &bytes.Buffer{}); got != "notty" {
			t.Errorf("issueStyleFor(%q, buffer) = %q, want notty", scheme, got)
		}
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 4}).Error(); got != "exit status 4" {
		t.Errorf("Error() = %q", got)
	}
	inner := errors.New("inner")
	e := &ExitError{Code: 1, Err: inner}
	if e.Error() != "inner" || !errors.Is(e, inner) {
		t.Errorf("ExitError should expose and unwrap its cause")
	}
}

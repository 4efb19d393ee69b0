// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tidyup/tidyup/internal/config"
	"github.com/tidyup/tidyup/internal/guard"
	"github.com/tidyup/tidyup/internal/issue"
	"github.com/tidyup/tidyup/internal/runner"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before the issue help card.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
// All construction sites must use this instead of struct literals.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section
// using the given glamour style.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string, logger *log.Logger) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			if logger != nil {
				logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
			}
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}

// classifyError picks the issue catalog entry that explains err.
func classifyError(err error) issue.Id {
	var missing *guard.MissingPathError
	var tool *guard.ExternalToolFailureError

	switch {
	case errors.Is(err, guard.ErrPlatformMismatch):
		return issue.PlatformMismatchId
	case errors.Is(err, guard.ErrInsufficientPrivilege):
		return issue.InsufficientPrivilegeId
	case errors.As(err, &missing):
		if missing.Code == guard.ExitDeviceMissing {
			return issue.DeviceNotMountedId
		}
		return issue.MissingPathId
	case errors.As(err, &tool):
		if tool.ExitCode == runner.ExitNotFound {
			return issue.ToolNotFoundId
		}
		return issue.ExternalToolFailedId
	}

	if is := issue.IssueOf(err); is != nil {
		return is.Id()
	}
	return 0
}

// choreFailure converts a guard error into an ExitError, rendering the error
// and its help card on the way. nil and a declined confirmation yield nil.
func (s *session) choreFailure(err error) error {
	code := guard.ExitCode(err)
	if code == 0 {
		return nil
	}
	if guard.IsPrecondition(err) {
		s.logger.Debug("precondition not met", "exit", code, "error", err)
	} else {
		s.logger.Info("chore failed", "exit", code, "error", err)
	}

	svcErr := newServiceError(err, classifyError(err), styledErrorLine(err, s.verbose))
	renderServiceError(s.stderr, svcErr, s.issueStyle, s.logger)
	return &ExitError{Code: code, Err: svcErr, Reported: true}
}

// configFailure reports a configuration error. Configuration errors always
// exit with the precondition status.
func configFailure(stderr io.Writer, err error, verbose bool) error {
	id := classifyError(err)
	if id == 0 {
		id = issue.ConfigLoadFailedId
	}
	svcErr := newServiceError(err, id, styledErrorLine(err, verbose))
	renderServiceError(stderr, svcErr, issueStyleFor(config.ColorSchemeAuto, stderr), nil)
	return &ExitError{Code: guard.ExitPrecondition, Err: svcErr, Reported: true}
}

func styledErrorLine(err error, verbose bool) string {
	return ErrorStyle.Render("Error:") + " " + formatErrorForDisplay(err, verbose) + "\n"
}

// issueStyleFor maps the configured color scheme to a glamour style. Output
// that is not a terminal gets the plain "notty" style.
func issueStyleFor(scheme config.ColorScheme, w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	if scheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// SPDX-License-Identifier: MPL-2.0

package guard

import (
	"github.com/tidyup/tidyup/internal/action"
	"github.com/tidyup/tidyup/internal/runner"
)

type (
	// RequiredPath is a filesystem path that must exist before a chore runs.
	RequiredPath struct {
		// Path is checked for existence as given.
		Path string
		// Label names the path in diagnostics ("library", "e-reader").
		Label string
		// ExitCode is the process status used when the path is missing.
		// Zero means ExitPrecondition.
		ExitCode runner.ExitCode
	}

	// RunContext is the process-local record of one guarded run. It is filled
	// in by the checks in order and consumed once by the execute-or-abort step.
	RunContext struct {
		// ID correlates the log lines of one run.
		ID string
		// Platform is the host identifier detected when the guard was created.
		Platform string
		// IsPrivileged reports whether the process had elevated rights at start.
		IsPrivileged bool
		// RequiredPaths are the paths passed to the last CheckPathsExist call.
		RequiredPaths []RequiredPath
		// PendingAction is the action last previewed or executed.
		PendingAction *action.Action
		// PreviewOutput is the captured output of the last preview command.
		PreviewOutput string
		// Confirmed is the answer to the last confirmation prompt.
		Confirmed bool
	}
)

// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/tidyup/tidyup/internal/action"
)

type (
	// Runner starts external programs.
	Runner interface {
		// Run executes the action with its output streamed to the user.
		Run(ctx context.Context, act action.Action) *Result
		// Capture executes the action and collects stdout and stderr.
		Capture(ctx context.Context, act action.Action) *Result
	}

	// Result contains the outcome of running an action.
	Result struct {
		// ExitCode is the exit status of the program.
		ExitCode ExitCode
		// Error is set when the program could not be run to completion.
		Error error
		// Output contains captured stdout (Capture only).
		Output string
		// ErrOutput contains captured stderr (Capture only).
		ErrOutput string
	}
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the program ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// resultFromWait converts the error returned by exec.Cmd.Run or Wait into a
// Result.
func resultFromWait(ctx context.Context, program string, err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return NewErrorResult(ExitInterrupted, fmt.Errorf("%s interrupted: %w", program, ctxErr))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal; ExitCode() does not report which one.
			return NewErrorResult(1, fmt.Errorf("%s terminated: %w", program, err))
		}
		return NewExitCodeResult(ExitCode(code))
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return NewErrorResult(ExitNotFound, fmt.Errorf("%s: command not found: %w", program, err))
	}

	return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", program, err))
}

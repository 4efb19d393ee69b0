// SPDX-License-Identifier: MPL-2.0

// Package runner executes external commands described by action.Action.
//
// Runners never interpret arguments through a shell: the program is started
// directly with the argument set recorded in the action. Exit statuses are
// reported in Result.ExitCode; Result.Error is reserved for failures to run
// the program at all (missing binary, cancelled context, PTY errors).
package runner

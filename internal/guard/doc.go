// SPDX-License-Identifier: MPL-2.0

// Package guard implements the confirm-then-execute pattern shared by all
// tidyup chores.
//
// A Guard validates preconditions (host platform, privilege, required paths),
// previews the pending external command, asks the user for explicit consent,
// and only then executes the command. Every failed precondition is fatal: the
// guard returns a typed error before any external tool is started, and
// ExitCode maps that error to the process exit status.
//
// Host facts, user input and process execution are injected through
// probe.Probe, prompt.Prompter and runner.Runner so that every combination of
// platform, privilege, mount state and answer can be exercised in tests.
package guard

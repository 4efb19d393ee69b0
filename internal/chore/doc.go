// SPDX-License-Identifier: MPL-2.0

// Package chore implements tidyup's maintenance flows on top of the guard:
// upgrading packages, cleaning up after the package manager and mirroring an
// e-book library onto a mounted e-reader.
//
// Every flow runs its precondition checks before any external tool is
// started and returns the guard's errors unchanged so callers can map them
// to exit statuses with guard.ExitCode.
package chore

// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test doubles and helpers shared by tidyup's
// package tests: a recording runner, a scripted prompter, and environment
// helpers that restore state on cleanup.
package testutil

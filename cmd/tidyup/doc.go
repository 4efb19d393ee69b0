// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for tidyup.
//
// It builds the Cobra command tree (upgrade, cleanup, ereader-sync and the
// config subcommands), loads configuration, and wires the guard with the
// production probe, prompter and runner. Process exit codes are derived from
// guard errors in one place, Main.
package cmd

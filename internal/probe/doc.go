// SPDX-License-Identifier: MPL-2.0

// Package probe reads the host facts a maintenance run depends on: the
// platform identifier, whether the process is privileged, and whether given
// filesystem paths exist.
//
// All reads go through the Probe interface so callers can substitute a
// Static probe and simulate any platform, privilege and mount combination
// without touching the real host.
package probe

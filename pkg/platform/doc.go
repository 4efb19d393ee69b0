// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It maps Go's runtime.GOOS values to the uname-style host identifiers
// ("Darwin", "Linux", ...) that tidyup uses in configuration, diagnostics
// and platform checks, and detects application sandboxes (Flatpak, Snap)
// whose host tools must be reached through a spawn helper.
package platform

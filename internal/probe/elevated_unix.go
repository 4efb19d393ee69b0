// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package probe

import "os"

// isElevated reports whether the effective user is root.
func isElevated() bool {
	return os.Geteuid() == 0
}

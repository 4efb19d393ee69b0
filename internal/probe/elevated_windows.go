// SPDX-License-Identifier: MPL-2.0

//go:build windows

package probe

import "golang.org/x/sys/windows"

// isElevated reports whether the process token carries the elevated flag,
// which is the case when running from an administrator console.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

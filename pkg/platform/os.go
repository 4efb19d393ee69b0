// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Host identifiers as reported by `uname -s`. These are the values users
// write in configuration and the values shown in diagnostics.
const (
	HostDarwin  = "Darwin"
	HostLinux   = "Linux"
	HostWindows = "Windows"
	HostFreeBSD = "FreeBSD"
	HostOpenBSD = "OpenBSD"
	HostNetBSD  = "NetBSD"
)

var hostNames = map[string]string{
	Darwin:    HostDarwin,
	Linux:     HostLinux,
	Windows:   HostWindows,
	"freebsd": HostFreeBSD,
	"openbsd": HostOpenBSD,
	"netbsd":  HostNetBSD,
}

// HostName maps a GOOS value to its uname-style host identifier.
// Unknown values are returned with the first letter upper-cased.
func HostName(goos string) string {
	if name, ok := hostNames[goos]; ok {
		return name
	}
	if goos == "" {
		return ""
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}

// Current returns the host identifier of the running process.
func Current() string {
	return HostName(runtime.GOOS)
}

// SameHost reports whether two host identifiers name the same platform.
// The comparison ignores case so "darwin" in a config file matches "Darwin".
func SameHost(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

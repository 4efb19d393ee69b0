// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone Sandbox = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak Sandbox = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap Sandbox = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
// detectSandboxFrom must not panic: sync.OnceValue re-panics on every call.
var detectOnce = sync.OnceValue(func() Sandbox {
	return detectSandboxFrom(os.Getenv, statFile)
})

// Sandbox identifies the application sandbox the process runs in, if any.
type Sandbox string

// DetectSandbox returns the sandbox the current process is running in.
// The result is cached after the first call.
//
// Detection methods:
//   - Flatpak: /.flatpak-info exists
//   - Snap: SNAP_NAME is set
func DetectSandbox() Sandbox {
	return detectOnce()
}

// HostPrefix returns the command that must precede a host program so it runs
// outside the sandbox. Package managers and rsync live on the host, not in
// the sandbox runtime.
//
// Flatpak returns ["flatpak-spawn", "--host"]. Snap confinement has no
// equivalent escape and, like no sandbox, returns nil.
func (s Sandbox) HostPrefix() []string {
	switch s {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	case SandboxNone, SandboxSnap:
		return nil
	default:
		return nil
	}
}

// String returns the sandbox name, or "none".
func (s Sandbox) String() string {
	if s == SandboxNone {
		return "none"
	}
	return string(s)
}

// detectSandboxFrom performs sandbox detection using the provided lookup functions.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) Sandbox {
	// Flatpak takes precedence.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}

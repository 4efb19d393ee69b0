// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/tidyup/tidyup/pkg/platform"
)

type (
	// Probe answers read-only questions about the host environment.
	Probe interface {
		// Platform returns the uname-style host identifier (e.g. "Darwin").
		Platform() string
		// IsPrivileged reports whether the process runs with elevated rights.
		IsPrivileged() bool
		// Exists reports whether path exists on the filesystem.
		Exists(path string) bool
	}

	// Host probes the machine the process runs on.
	Host struct {
		stat       func(name string) (fs.FileInfo, error)
		privileged func() bool
		platform   string
	}

	// Static is a Probe with fixed answers.
	Static struct {
		// Host is returned by Platform.
		Host string
		// Privileged is returned by IsPrivileged.
		Privileged bool
		// Paths lists the paths that Exists reports as present.
		Paths []string
	}
)

// NewHost creates a probe backed by the operating system.
func NewHost() *Host {
	return &Host{
		stat:       os.Stat,
		privileged: isElevated,
		platform:   platform.Current(),
	}
}

// Platform implements Probe.
func (h *Host) Platform() string {
	return h.platform
}

// IsPrivileged implements Probe.
func (h *Host) IsPrivileged() bool {
	return h.privileged()
}

// Exists implements Probe. Paths that cannot be stat'ed for reasons other
// than absence (permissions, I/O errors) are reported as missing too.
func (h *Host) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := h.stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil
}

// Platform implements Probe.
func (s *Static) Platform() string { return s.Host }

// IsPrivileged implements Probe.
func (s *Static) IsPrivileged() bool { return s.Privileged }

// Exists implements Probe.
func (s *Static) Exists(path string) bool {
	return path != "" && slices.Contains(s.Paths, path)
}

// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"io/fs"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	flatpakInfo := func(path string) error {
		if path == "/.flatpak-info" {
			return nil
		}
		return fs.ErrNotExist
	}
	noFiles := func(string) error { return fs.ErrNotExist }
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	tests := []struct {
		name string
		env  map[string]string
		stat func(string) error
		want Sandbox
	}{
		{"none", nil, noFiles, SandboxNone},
		{"flatpak", nil, flatpakInfo, SandboxFlatpak},
		{"snap", map[string]string{"SNAP_NAME": "tidyup"}, noFiles, SandboxSnap},
		{"flatpak wins over snap", map[string]string{"SNAP_NAME": "tidyup"}, flatpakInfo, SandboxFlatpak},
		{"stat error is not a sandbox", nil, func(string) error { return errors.New("permission denied") }, SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := detectSandboxFrom(env(tt.env), tt.stat); got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSandboxHostPrefix(t *testing.T) {
	t.Parallel()

	if got := SandboxFlatpak.HostPrefix(); !slices.Equal(got, []string{"flatpak-spawn", "--host"}) {
		t.Errorf("Flatpak HostPrefix() = %v", got)
	}
	for _, s := range []Sandbox{SandboxNone, SandboxSnap, "unknown"} {
		if got := s.HostPrefix(); got != nil {
			t.Errorf("%q HostPrefix() = %v, want nil", s, got)
		}
	}
}

func TestDetectSandboxIsStable(t *testing.T) {
	t.Parallel()

	if DetectSandbox() != DetectSandbox() {
		t.Error("DetectSandbox() should return the cached result")
	}
	if SandboxNone.String() != "none" || SandboxFlatpak.String() != "flatpak" {
		t.Error("unexpected Sandbox.String()")
	}
}

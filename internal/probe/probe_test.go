// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidyup/tidyup/pkg/platform"
)

func TestHost_Platform(t *testing.T) {
	t.Parallel()

	if got, want := NewHost().Platform(), platform.Current(); got != want {
		t.Errorf("Platform() = %q, want %q", got, want)
	}
}

func TestHost_Exists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h := NewHost()
	if !h.Exists(dir) {
		t.Errorf("Exists(%q) = false, want true", dir)
	}
	if !h.Exists(file) {
		t.Errorf("Exists(%q) = false, want true", file)
	}
	if h.Exists(filepath.Join(dir, "absent")) {
		t.Error("Exists(absent) = true, want false")
	}
	if h.Exists("") {
		t.Error("Exists(\"\") = true, want false")
	}
}

func TestHost_ExistsStatError(t *testing.T) {
	t.Parallel()

	h := &Host{
		stat: func(string) (fs.FileInfo, error) {
			return nil, errors.New("input/output error")
		},
	}
	if h.Exists("/Volumes/KOBOeReader") {
		t.Error("Exists should report false when stat fails")
	}
}

func TestHost_IsPrivileged(t *testing.T) {
	t.Parallel()

	h := &Host{privileged: func() bool { return true }}
	if !h.IsPrivileged() {
		t.Error("IsPrivileged() = false, want true")
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	var p Probe = &Static{
		Host:       platform.HostLinux,
		Privileged: false,
		Paths:      []string{"/books"},
	}

	if got := p.Platform(); got != platform.HostLinux {
		t.Errorf("Platform() = %q, want %q", got, platform.HostLinux)
	}
	if p.IsPrivileged() {
		t.Error("IsPrivileged() = true, want false")
	}
	if !p.Exists("/books") {
		t.Error("Exists(/books) = false, want true")
	}
	if p.Exists("/Volumes/KOBOeReader") {
		t.Error("Exists(/Volumes/KOBOeReader) = true, want false")
	}
}

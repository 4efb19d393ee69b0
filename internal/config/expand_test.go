// SPDX-License-Identifier: MPL-2.0

package config

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Parallel()

	env := func(name string) string {
		switch name {
		case "HOME":
			return "/home/reader"
		case "LIBRARY":
			return "/srv/library"
		default:
			return ""
		}
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"~", "/home/reader", false},
		{"~/Books", filepath.Join("/home/reader", "Books"), false},
		{"$LIBRARY/epub", "/srv/library/epub", false},
		{"${LIBRARY}", "/srv/library", false},
		{"/Volumes/KOBOeReader", "/Volumes/KOBOeReader", false},
		{"/media/with space", "/media/with space", false},
		{"$(rm -rf /)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ExpandPath(tt.in, env)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExpandPath(%q) = %q, expected error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfig_Expanded(t *testing.T) {
	t.Parallel()

	env := func(name string) string {
		if name == "HOME" {
			return "/home/reader"
		}
		return ""
	}

	cfg := DefaultConfig()
	cfg.EReader.Rsync = "~/bin/rsync"
	out, err := cfg.Expanded(env)
	if err != nil {
		t.Fatal(err)
	}
	if out.EReader.Source != filepath.Join("/home/reader", "Books") {
		t.Errorf("Source = %q", out.EReader.Source)
	}
	if out.EReader.Rsync != BinaryFilePath(filepath.Join("/home/reader", "bin", "rsync")) {
		t.Errorf("Rsync = %q", out.EReader.Rsync)
	}
	if cfg.EReader.Source != "~/Books" {
		t.Error("Expanded must not modify the receiver")
	}
}

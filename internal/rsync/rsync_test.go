// SPDX-License-Identifier: MPL-2.0

package rsync

import (
	"errors"
	"slices"
	"testing"
)

func TestMirrorArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    Mirror
		want []string
	}{
		{
			name: "target dir and excludes",
			m: Mirror{
				Source:    "/Users/reader/Books",
				Mount:     "/Volumes/KOBOeReader",
				TargetDir: "books",
				Excludes:  []string{".DS_Store", "*.sdr"},
			},
			want: []string{
				"-rtv", "--delete", "--modify-window=2",
				"--exclude=.DS_Store", "--exclude=*.sdr",
				"/Users/reader/Books/", "/Volumes/KOBOeReader/books",
			},
		},
		{
			name: "source already has slash",
			m:    Mirror{Source: "/lib/", Mount: "/mnt", TargetDir: "/ebooks/"},
			want: []string{"-rtv", "--delete", "--modify-window=2", "/lib/", "/mnt/ebooks"},
		},
		{
			name: "mount root",
			m:    Mirror{Source: "/lib", Mount: "/mnt"},
			want: []string{"-rtv", "--delete", "--modify-window=2", "/lib/", "/mnt/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.m.Args(); !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMirrorAction(t *testing.T) {
	t.Parallel()

	m := Mirror{Source: "/lib", Mount: "/mnt", TargetDir: "books", Excludes: []string{".kobo"}}
	act, err := m.Action()
	if err != nil {
		t.Fatal(err)
	}
	if act.Program != DefaultProgram {
		t.Errorf("Program = %q, want %q", act.Program, DefaultProgram)
	}
	if !act.HasPreview() {
		t.Fatal("expected a dry-run preview")
	}
	if act.Preview.Args[0] != DryRunFlag {
		t.Errorf("preview must start with %s, got %v", DryRunFlag, act.Preview.Args)
	}
	if !slices.Equal(act.Preview.Args[1:], act.Args) {
		t.Errorf("preview args %v differ from live args %v beyond the dry-run flag", act.Preview.Args, act.Args)
	}
	if slices.Contains(act.Args, DryRunFlag) {
		t.Error("live args must not contain the dry-run flag")
	}

	m.Program = "/usr/local/bin/rsync"
	act, _ = m.Action()
	if act.Program != "/usr/local/bin/rsync" || act.Preview.Program != "/usr/local/bin/rsync" {
		t.Errorf("program override not applied: %q / %q", act.Program, act.Preview.Program)
	}
}

func TestMirrorIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    Mirror
		ok   bool
	}{
		{"complete", Mirror{Source: "/a", Mount: "/b"}, true},
		{"no source", Mirror{Mount: "/b"}, false},
		{"no mount", Mirror{Source: "/a"}, false},
		{"escaping target", Mirror{Source: "/a", Mount: "/b", TargetDir: "../etc"}, false},
		{"blank exclude", Mirror{Source: "/a", Mount: "/b", Excludes: []string{" "}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, errs := tt.m.IsValid()
			if ok != tt.ok {
				t.Fatalf("IsValid() = %v, want %v (%v)", ok, tt.ok, errs)
			}
			if !ok {
				if !errors.Is(errs[0], ErrInvalidMirror) {
					t.Errorf("expected ErrInvalidMirror, got %v", errs[0])
				}
				if _, err := tt.m.Action(); err == nil {
					t.Error("Action() should fail for an invalid mirror")
				}
			}
		})
	}
}

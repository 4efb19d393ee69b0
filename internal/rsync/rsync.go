// SPDX-License-Identifier: MPL-2.0

// Package rsync builds the rsync invocation that mirrors a local library
// onto a mounted e-reader.
package rsync

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/tidyup/tidyup/internal/action"
)

const (
	// DefaultProgram is the rsync executable looked up on PATH.
	DefaultProgram = "rsync"
	// DryRunFlag turns a sync into a non-mutating preview.
	DryRunFlag = "--dry-run"
	// ModifyWindow tolerates the 2-second timestamp resolution of FAT
	// filesystems used by most e-readers.
	ModifyWindow = 2
)

// ErrInvalidMirror is the sentinel error wrapped by InvalidMirrorError.
var ErrInvalidMirror = errors.New("invalid mirror")

type (
	// Mirror describes a one-way sync from Source into TargetDir on Mount.
	Mirror struct {
		// Program overrides the rsync executable. Empty means DefaultProgram.
		Program string
		// Source is the local library directory.
		Source string
		// Mount is the e-reader mount point.
		Mount string
		// TargetDir is the directory under Mount that receives the files.
		// Empty syncs into the mount root.
		TargetDir string
		// Excludes are rsync exclude patterns, one --exclude flag each.
		Excludes []string
	}

	// InvalidMirrorError is returned when a Mirror has invalid fields.
	// It wraps ErrInvalidMirror for errors.Is() compatibility.
	InvalidMirrorError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidMirrorError) Error() string {
	return fmt.Sprintf("invalid mirror: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidMirror for errors.Is() compatibility.
func (e *InvalidMirrorError) Unwrap() error { return ErrInvalidMirror }

// IsValid returns whether the Mirror has the fields needed to build a
// command, and a list of validation errors if it does not.
func (m Mirror) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(m.Source) == "" {
		errs = append(errs, errors.New("source must not be empty"))
	}
	if strings.TrimSpace(m.Mount) == "" {
		errs = append(errs, errors.New("mount must not be empty"))
	}
	if strings.Contains(m.TargetDir, "..") {
		errs = append(errs, fmt.Errorf("target dir %q must stay inside the mount", m.TargetDir))
	}
	for _, ex := range m.Excludes {
		if strings.TrimSpace(ex) == "" {
			errs = append(errs, errors.New("exclude patterns must not be empty"))
			break
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidMirrorError{FieldErrors: errs}}
	}
	return true, nil
}

// Args returns the live rsync arguments: archive-style flags, one --exclude
// per pattern, the source with a trailing slash so its contents (not the
// directory itself) are copied, and the destination.
func (m Mirror) Args() []string {
	args := []string{"-rtv", "--delete", fmt.Sprintf("--modify-window=%d", ModifyWindow)}
	for _, ex := range m.Excludes {
		args = append(args, "--exclude="+ex)
	}
	return append(args, withTrailingSlash(m.Source), m.Destination())
}

// Destination returns the directory on the device that receives the files.
func (m Mirror) Destination() string {
	target := strings.Trim(m.TargetDir, "/")
	if target == "" {
		return withTrailingSlash(m.Mount)
	}
	return path.Join(m.Mount, target)
}

// Action returns the live sync whose preview is the same invocation with
// DryRunFlag prepended.
func (m Mirror) Action() (action.Action, error) {
	if isValid, errs := m.IsValid(); !isValid {
		return action.Action{}, errs[0]
	}
	program := m.Program
	if strings.TrimSpace(program) == "" {
		program = DefaultProgram
	}
	return action.New("mirror library to e-reader", program, m.Args()...).WithDryRunFlag(DryRunFlag), nil
}

func withTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

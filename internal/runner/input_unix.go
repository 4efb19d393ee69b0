// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runner

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// interruptible returns a non-blocking duplicate of f. The duplicate is
// pollable, so closing it through release wakes a pending Read. release also
// puts f back into blocking mode since both descriptors share that flag.
func interruptible(f *os.File) (io.Reader, func(), error) {
	orig := int(f.Fd())
	fd, err := unix.Dup(orig)
	if err != nil {
		return nil, nil, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return nil, nil, err
	}
	dup := os.NewFile(uintptr(fd), f.Name())
	release := func() {
		_ = dup.Close()
		_ = unix.SetNonblock(orig, false)
	}
	return dup, release, nil
}

// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/tidyup/tidyup/internal/action"
)

// PTY runs programs attached to a pseudo-terminal so tools that only print
// progress and colors on a TTY (rsync --progress, port) behave as they would
// in an interactive shell. Capture is delegated to the fallback runner.
type PTY struct {
	// Stdout receives everything the program writes to the terminal.
	Stdout io.Writer
	// Stdin is forwarded to the terminal so the program can ask questions.
	// When it is a terminal it is switched to raw mode while the program
	// runs. Nil falls back to Fallback.Stdin.
	Stdin io.Reader
	// Fallback handles Capture, and Run on platforms without PTY support.
	Fallback *Exec
}

// Run implements Runner.
func (r *PTY) Run(ctx context.Context, act action.Action) *Result {
	if err := act.Validate(); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := r.fallback().command(ctx, act)

	ptmx, err := pty.Start(cmd)
	if errors.Is(err, pty.ErrUnsupported) {
		return r.fallback().Run(ctx, act)
	}
	if err != nil {
		return resultFromWait(ctx, act.Program, err)
	}
	defer ptmx.Close()

	stdin := r.input()
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_ = pty.InheritSize(f, ptmx)
		if state, err := term.MakeRaw(int(f.Fd())); err == nil {
			defer func() { _ = term.Restore(int(f.Fd()), state) }()
		}
	}
	stop := forwardInput(ptmx, stdin)

	// Reading the master side fails with EIO once the child exits and closes
	// the slave side; that is the normal end of output.
	_, _ = io.Copy(r.Stdout, ptmx)

	waitErr := cmd.Wait()
	stop()
	return resultFromWait(ctx, act.Program, waitErr)
}

// Capture implements Runner.
func (r *PTY) Capture(ctx context.Context, act action.Action) *Result {
	return r.fallback().Capture(ctx, act)
}

func (r *PTY) input() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return r.fallback().Stdin
}

// forwardInput copies src into the terminal until stop is called. A file is
// read through an interruptible duplicate so a read still pending when the
// program exits does not swallow input meant for the next prompt.
func forwardInput(ptmx io.Writer, src io.Reader) (stop func()) {
	if src == nil {
		return func() {}
	}
	if f, ok := src.(*os.File); ok {
		if in, release, err := interruptible(f); err == nil {
			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = io.Copy(ptmx, in)
			}()
			return func() {
				release()
				<-done
			}
		}
	}
	go func() { _, _ = io.Copy(ptmx, src) }()
	return func() {}
}

func (r *PTY) fallback() *Exec {
	if r.Fallback == nil {
		return NewExec()
	}
	return r.Fallback
}

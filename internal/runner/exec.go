// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"slices"

	"github.com/tidyup/tidyup/internal/action"
)

// Exec runs programs as plain child processes.
type Exec struct {
	// Stdout receives the program's standard output in Run.
	Stdout io.Writer
	// Stderr receives the program's standard error in Run.
	Stderr io.Writer
	// Stdin is connected to the program in Run. Capture never forwards input.
	Stdin io.Reader
	// Env, when non-nil, replaces the inherited environment.
	Env []string
	// HostPrefix is prepended to every command line, e.g. flatpak-spawn --host
	// when running inside a sandbox.
	HostPrefix []string
}

// NewExec creates an Exec runner wired to the process's standard streams.
func NewExec() *Exec {
	return &Exec{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Run implements Runner.
func (r *Exec) Run(ctx context.Context, act action.Action) *Result {
	if err := act.Validate(); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := r.command(ctx, act)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Stdin = r.Stdin

	return resultFromWait(ctx, act.Program, cmd.Run())
}

// Capture implements Runner.
func (r *Exec) Capture(ctx context.Context, act action.Action) *Result {
	if err := act.Validate(); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := r.command(ctx, act)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := resultFromWait(ctx, act.Program, cmd.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *Exec) command(ctx context.Context, act action.Action) *exec.Cmd {
	argv := append(slices.Clone(r.HostPrefix), act.Argv()...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if r.Env != nil {
		cmd.Env = r.Env
	}
	return cmd
}

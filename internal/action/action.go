// SPDX-License-Identifier: MPL-2.0

// Package action describes external commands that a maintenance run may
// execute, together with the non-mutating companion command used to preview
// them.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidAction is the sentinel error wrapped by InvalidActionError.
var ErrInvalidAction = errors.New("invalid action")

type (
	// Action is a single external command invocation with a fixed argument set.
	Action struct {
		// Description is a short human summary ("upgrade outdated ports").
		Description string
		// Program is the executable name or path.
		Program string
		// Args are passed to Program verbatim, without shell interpretation.
		Args []string
		// Preview, when set, is a non-mutating command whose output shows what
		// this action would change (a dry run or a listing).
		Preview *Action
	}

	// InvalidActionError is returned when an Action cannot be executed.
	InvalidActionError struct {
		Reason string
	}
)

// New creates an Action without a preview.
func New(description, program string, args ...string) Action {
	return Action{
		Description: description,
		Program:     program,
		Args:        args,
	}
}

// WithPreview returns a copy of a that uses p as its preview.
func (a Action) WithPreview(p Action) Action {
	a.Preview = &p
	return a
}

// WithDryRunFlag returns a copy of a whose preview is the same command with
// flag prepended to the arguments. The live arguments are left untouched so
// the previewed and executed argument sets differ only by that flag.
func (a Action) WithDryRunFlag(flag string) Action {
	args := make([]string, 0, len(a.Args)+1)
	args = append(args, flag)
	args = append(args, a.Args...)

	return a.WithPreview(Action{
		Description: "preview: " + a.Description,
		Program:     a.Program,
		Args:        args,
	})
}

// HasPreview reports whether a has a preview command.
func (a Action) HasPreview() bool {
	return a.Preview != nil
}

// Argv returns the program followed by its arguments.
func (a Action) Argv() []string {
	argv := make([]string, 0, len(a.Args)+1)
	argv = append(argv, a.Program)
	return append(argv, a.Args...)
}

// String returns the command line quoted for a POSIX shell, suitable for
// showing to the user or pasting into a terminal.
func (a Action) String() string {
	argv := a.Argv()
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quote(arg)
	}
	return strings.Join(quoted, " ")
}

// Validate returns an *InvalidActionError when the action has no program.
func (a Action) Validate() error {
	if strings.TrimSpace(a.Program) == "" {
		return &InvalidActionError{Reason: "program is empty"}
	}
	if a.Preview != nil {
		if err := a.Preview.Validate(); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidActionError) Error() string {
	return "invalid action: " + e.Reason
}

// Unwrap returns ErrInvalidAction for errors.Is() compatibility.
func (e *InvalidActionError) Unwrap() error { return ErrInvalidAction }

func quote(s string) string {
	if s == "" {
		return "''"
	}
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}

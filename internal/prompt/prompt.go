// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	// DefaultDecline answers "no" unless the input matches the affirmative pattern.
	DefaultDecline Polarity = iota
	// DefaultAccept answers "yes" unless the input matches the negative pattern.
	DefaultAccept
)

type (
	// Polarity selects how non-matching input is interpreted.
	Polarity int

	// Question is a single yes/no prompt.
	Question struct {
		// Text is the question shown to the user.
		Text string
		// Description adds optional context below the question.
		Description string
		// Polarity decides the answer for empty or unrecognized input.
		Polarity Polarity
	}

	// Prompter obtains a yes/no answer from the user.
	Prompter interface {
		Confirm(q Question) (bool, error)
	}
)

// IsAffirmative reports whether answer matches "y" or "yes", ignoring case
// and surrounding whitespace.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// IsNegative reports whether answer matches "n" or "no", ignoring case and
// surrounding whitespace.
func IsNegative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return true
	default:
		return false
	}
}

// Interpret converts a raw answer into a decision using the given polarity.
func Interpret(answer string, p Polarity) bool {
	if p == DefaultAccept {
		return !IsNegative(answer)
	}
	return IsAffirmative(answer)
}

// Hint returns the conventional answer hint for a polarity, with the default
// answer capitalized.
func (p Polarity) Hint() string {
	if p == DefaultAccept {
		return "[Y/n]"
	}
	return "[y/N]"
}

// String returns a readable name for the polarity.
func (p Polarity) String() string {
	if p == DefaultAccept {
		return "default-accept"
	}
	return "default-decline"
}

// ForTerminal returns a Form when in is an interactive terminal and a Line
// reading from in otherwise (pipes, command substitution, CI).
func ForTerminal(in *os.File, out io.Writer, theme Theme) Prompter {
	if in != nil && term.IsTerminal(int(in.Fd())) {
		return &Form{Theme: theme, Output: out}
	}
	var r io.Reader = in
	if in == nil {
		r = strings.NewReader("")
	}
	return NewLine(r, out)
}

// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Line asks questions on a writer and reads one line per answer.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a line-based prompter.
func NewLine(in io.Reader, out io.Writer) *Line {
	if out == nil {
		out = io.Discard
	}
	return &Line{in: bufio.NewReader(in), out: out}
}

// Confirm implements Prompter. End of input counts as an empty answer.
func (l *Line) Confirm(q Question) (bool, error) {
	if q.Description != "" {
		fmt.Fprintln(l.out, q.Description)
	}
	fmt.Fprintf(l.out, "%s %s ", q.Text, q.Polarity.Hint())

	answer, err := l.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		// Keep the transcript readable when input was not newline-terminated.
		fmt.Fprintln(l.out)
	}

	return Interpret(answer, q.Polarity), nil
}

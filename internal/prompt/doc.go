// SPDX-License-Identifier: MPL-2.0

// Package prompt asks the user yes/no questions.
//
// Answers are interpreted against a fixed affirmative pattern
// (case-insensitive "y" or "yes") and negative pattern ("n" or "no"). Every
// question carries a Polarity that decides what happens with any other
// input, including an empty line or end of input: DefaultDecline treats it
// as "no", DefaultAccept treats it as "yes". Destructive operations must use
// DefaultDecline.
//
// Line reads answers from any io.Reader and is what scripts and tests use.
// Form renders a charmbracelet/huh confirm when a terminal is attached.
package prompt

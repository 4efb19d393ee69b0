// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"sync"

	"github.com/tidyup/tidyup/internal/action"
	"github.com/tidyup/tidyup/internal/prompt"
	"github.com/tidyup/tidyup/internal/runner"
)

const (
	// ModeRun marks a call made through Runner.Run.
	ModeRun CallMode = "run"
	// ModeCapture marks a call made through Runner.Capture.
	ModeCapture CallMode = "capture"
)

type (
	// CallMode tells whether a recorded call streamed or captured output.
	CallMode string

	// Call is one invocation recorded by FakeRunner.
	Call struct {
		Mode    CallMode
		Program string
		Args    []string
	}

	// FakeRunner records every invocation and answers with canned results.
	// Results are looked up by the action's quoted command line; unknown
	// commands succeed with empty output.
	FakeRunner struct {
		mu      sync.Mutex
		calls   []Call
		results map[string]*runner.Result
	}

	// ScriptedPrompter answers questions from a fixed list and records them.
	// Once the answers run out every further question is treated as an empty
	// answer and interpreted with the question's polarity.
	ScriptedPrompter struct {
		Answers   []string
		Questions []prompt.Question
	}
)

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{results: make(map[string]*runner.Result)}
}

// On registers the result returned for act.
func (f *FakeRunner) On(act action.Action, result *runner.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[act.String()] = result
	return f
}

// Run implements runner.Runner.
func (f *FakeRunner) Run(_ context.Context, act action.Action) *runner.Result {
	return f.record(ModeRun, act)
}

// Capture implements runner.Runner.
func (f *FakeRunner) Capture(_ context.Context, act action.Action) *runner.Result {
	return f.record(ModeCapture, act)
}

// Calls returns a copy of the recorded calls in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsWithMode returns the recorded calls made in mode.
func (f *FakeRunner) CallsWithMode(mode CallMode) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Mode == mode {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeRunner) record(mode CallMode, act action.Action) *runner.Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	args := make([]string, len(act.Args))
	copy(args, act.Args)
	f.calls = append(f.calls, Call{Mode: mode, Program: act.Program, Args: args})

	if r, ok := f.results[act.String()]; ok {
		copied := *r
		return &copied
	}
	return runner.NewSuccessResult()
}

// NewScriptedPrompter creates a prompter that replies with answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Confirm implements prompt.Prompter.
func (s *ScriptedPrompter) Confirm(q prompt.Question) (bool, error) {
	s.Questions = append(s.Questions, q)
	answer := ""
	if len(s.Answers) > 0 {
		answer, s.Answers = s.Answers[0], s.Answers[1:]
	}
	return prompt.Interpret(answer, q.Polarity), nil
}

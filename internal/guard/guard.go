// SPDX-License-Identifier: MPL-2.0

package guard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tidyup/tidyup/internal/action"
	"github.com/tidyup/tidyup/internal/probe"
	"github.com/tidyup/tidyup/internal/prompt"
	"github.com/tidyup/tidyup/internal/runner"
	"github.com/tidyup/tidyup/pkg/platform"
)

type (
	// Options holds the collaborators of a Guard. Nil fields are replaced with
	// safe defaults by New: the host probe, a prompter that declines
	// everything, the exec runner, and a discarding logger.
	Options struct {
		Probe    probe.Probe
		Prompter prompt.Prompter
		Runner   runner.Runner
		// Stdout receives previews and progress messages.
		Stdout io.Writer
		Logger *log.Logger
		Styles Styles
	}

	// Styles controls how the guard decorates its console output.
	Styles struct {
		Heading lipgloss.Style
		Command lipgloss.Style
		Muted   lipgloss.Style
	}

	// Guard runs the confirm-then-execute sequence for one chore.
	Guard struct {
		probe    probe.Probe
		prompter prompt.Prompter
		runner   runner.Runner
		out      io.Writer
		logger   *log.Logger
		styles   Styles
		rc       *RunContext
	}

	// Plan is the linear flow executed by Run.
	Plan struct {
		// Platform is the expected host identifier. Empty skips the check.
		Platform string
		// RequirePrivilege enables the privilege check.
		RequirePrivilege bool
		// RequiredPaths are checked in order after platform and privilege.
		RequiredPaths []RequiredPath
		// Action is previewed, confirmed and executed.
		Action action.Action
		// Prepare, when set, builds the action once the preconditions hold
		// and replaces Action.
		Prepare func() (action.Action, error)
		// Confirm is the question asked before executing. Nil executes
		// without asking.
		Confirm *prompt.Question
	}

	declineAll struct{}
)

// New creates a Guard. Platform and privilege are read from the probe once,
// here, and recorded in the RunContext.
func New(opts Options) *Guard {
	if opts.Probe == nil {
		opts.Probe = probe.NewHost()
	}
	if opts.Prompter == nil {
		opts.Prompter = declineAll{}
	}
	if opts.Runner == nil {
		opts.Runner = runner.NewExec()
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	rc := &RunContext{
		ID:           uuid.NewString(),
		Platform:     opts.Probe.Platform(),
		IsPrivileged: opts.Probe.IsPrivileged(),
	}

	return &Guard{
		probe:    opts.Probe,
		prompter: opts.Prompter,
		runner:   opts.Runner,
		out:      opts.Stdout,
		logger:   opts.Logger.With("run", rc.ID[:8]),
		styles:   opts.Styles,
		rc:       rc,
	}
}

// Context returns the run context. Callers must treat it as read-only.
func (g *Guard) Context() *RunContext {
	return g.rc
}

// CheckPlatform fails with a *PlatformMismatchError unless the detected host
// matches expected. The comparison ignores case; an empty expected value
// accepts any host.
func (g *Guard) CheckPlatform(expected string) error {
	if strings.TrimSpace(expected) == "" {
		return nil
	}
	g.logger.Debug("checking platform", "expected", expected, "actual", g.rc.Platform)
	if !platform.SameHost(expected, g.rc.Platform) {
		return &PlatformMismatchError{Expected: expected, Actual: g.rc.Platform}
	}
	return nil
}

// CheckPrivilege fails with an *InsufficientPrivilegeError when the process
// is not running with elevated rights.
func (g *Guard) CheckPrivilege() error {
	g.logger.Debug("checking privilege", "privileged", g.rc.IsPrivileged)
	if !g.rc.IsPrivileged {
		return &InsufficientPrivilegeError{Platform: g.rc.Platform}
	}
	return nil
}

// CheckPathsExist checks paths in order and fails with a *MissingPathError
// for the first one that does not exist.
func (g *Guard) CheckPathsExist(paths []RequiredPath) error {
	g.rc.RequiredPaths = paths
	for _, p := range paths {
		exists := g.probe.Exists(p.Path)
		g.logger.Debug("checking path", "label", p.Label, "path", p.Path, "exists", exists)
		if !exists {
			code := p.ExitCode
			if code == 0 {
				code = ExitPrecondition
			}
			return &MissingPathError{Path: p.Path, Label: p.Label, Code: code}
		}
	}
	return nil
}

// PreviewAction shows what act would do without doing it. When the action
// has a preview command, that command is run and its output printed;
// otherwise the quoted command line is printed. A failing preview command is
// reported as an *ExternalToolFailureError.
func (g *Guard) PreviewAction(ctx context.Context, act action.Action) error {
	g.rc.PendingAction = &act
	g.rc.PreviewOutput = ""

	if !act.HasPreview() {
		fmt.Fprintf(g.out, "%s %s\n", g.styles.Heading.Render("Would run:"), g.styles.Command.Render(act.String()))
		return nil
	}

	preview := *act.Preview
	fmt.Fprintf(g.out, "%s %s\n", g.styles.Heading.Render("Preview:"), g.styles.Command.Render(preview.String()))
	g.logger.Debug("running preview", "program", preview.Program, "args", preview.Args)

	result := g.runner.Capture(ctx, preview)
	g.rc.PreviewOutput = result.Output
	if result.Output != "" {
		fmt.Fprint(g.out, ensureNewline(result.Output))
	}
	if !result.Success() {
		if result.ErrOutput != "" {
			fmt.Fprint(g.out, g.styles.Muted.Render(ensureNewline(result.ErrOutput)))
		}
		return toolFailure(preview, result)
	}
	return nil
}

// PromptConfirm asks q and records the answer in the run context.
func (g *Guard) PromptConfirm(q prompt.Question) (bool, error) {
	ok, err := g.prompter.Confirm(q)
	if err != nil {
		g.rc.Confirmed = false
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	g.logger.Debug("confirmation answered", "question", q.Text, "polarity", q.Polarity, "confirmed", ok)
	g.rc.Confirmed = ok
	return ok, nil
}

// ExecuteAction runs act once. A non-zero exit surfaces as an
// *ExternalToolFailureError carrying the tool's exit status.
func (g *Guard) ExecuteAction(ctx context.Context, act action.Action) error {
	g.rc.PendingAction = &act
	g.logger.Info("running", "program", act.Program, "args", act.Args)

	result := g.runner.Run(ctx, act)
	g.logger.Debug("finished", "program", act.Program, "exit", result.ExitCode)
	if !result.Success() {
		return toolFailure(act, result)
	}
	return nil
}

// Run executes plan: platform, privilege, paths, preview, confirm, execute.
// It stops at the first failure. A declined confirmation returns
// ErrUserDeclined and the action is never executed.
func (g *Guard) Run(ctx context.Context, plan Plan) error {
	if err := g.CheckPlatform(plan.Platform); err != nil {
		return err
	}
	if plan.RequirePrivilege {
		if err := g.CheckPrivilege(); err != nil {
			return err
		}
	}
	if err := g.CheckPathsExist(plan.RequiredPaths); err != nil {
		return err
	}

	act := plan.Action
	if plan.Prepare != nil {
		var err error
		if act, err = plan.Prepare(); err != nil {
			return err
		}
	}

	if plan.Confirm == nil {
		return g.ExecuteAction(ctx, act)
	}
	return g.ConfirmAndExecute(ctx, act, *plan.Confirm)
}

// ConfirmAndExecute previews act, asks q and executes act only when the
// answer confirms. Preconditions are the caller's responsibility.
func (g *Guard) ConfirmAndExecute(ctx context.Context, act action.Action, q prompt.Question) error {
	if err := g.PreviewAction(ctx, act); err != nil {
		return err
	}
	ok, err := g.PromptConfirm(q)
	if err != nil {
		return err
	}
	if !ok {
		g.logger.Info("declined", "program", act.Program)
		return ErrUserDeclined
	}
	return g.ExecuteAction(ctx, act)
}

// Confirm implements prompt.Prompter.
func (declineAll) Confirm(prompt.Question) (bool, error) { return false, nil }

func toolFailure(act action.Action, result *runner.Result) error {
	return &ExternalToolFailureError{
		Program:  act.Program,
		Command:  act.String(),
		ExitCode: result.ExitCode,
		Err:      result.Error,
	}
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

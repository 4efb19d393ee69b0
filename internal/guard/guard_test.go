// SPDX-License-Identifier: MPL-2.0

package guard

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/tidyup/tidyup/internal/action"
	"github.com/tidyup/tidyup/internal/probe"
	"github.com/tidyup/tidyup/internal/prompt"
	"github.com/tidyup/tidyup/internal/runner"
	"github.com/tidyup/tidyup/internal/testutil"
	"github.com/tidyup/tidyup/pkg/platform"
)

const (
	libraryPath = "/Users/reader/Books"
	devicePath  = "/Volumes/KOBOeReader"
)

func syncAction() action.Action {
	return action.New("mirror library", "rsync",
		"-rtv", "--delete", "--exclude=.kobo", libraryPath+"/", devicePath+"/books",
	).WithDryRunFlag("--dry-run")
}

func syncPlan() Plan {
	return Plan{
		Platform: platform.HostDarwin,
		RequiredPaths: []RequiredPath{
			{Path: libraryPath, Label: "library", ExitCode: ExitPrecondition},
			{Path: devicePath, Label: "e-reader", ExitCode: ExitDeviceMissing},
		},
		Action:  syncAction(),
		Confirm: &prompt.Question{Text: "Sync library to e-reader?"},
	}
}

func newTestGuard(p probe.Probe, answers ...string) (*Guard, *testutil.FakeRunner, *bytes.Buffer) {
	r := testutil.NewFakeRunner()
	var out bytes.Buffer
	g := New(Options{
		Probe:    p,
		Prompter: testutil.NewScriptedPrompter(answers...),
		Runner:   r,
		Stdout:   &out,
	})
	return g, r, &out
}

func TestRun_UnsupportedPlatformNeverInvokesTool(t *testing.T) {
	t.Parallel()

	for _, host := range []string{platform.HostLinux, platform.HostWindows, platform.HostFreeBSD, ""} {
		t.Run("host="+host, func(t *testing.T) {
			t.Parallel()

			g, r, _ := newTestGuard(&probe.Static{
				Host:       host,
				Privileged: true,
				Paths:      []string{libraryPath, devicePath},
			}, "y")

			err := g.Run(context.Background(), syncPlan())
			if !errors.Is(err, ErrPlatformMismatch) {
				t.Fatalf("Run() = %v, want ErrPlatformMismatch", err)
			}
			if code := ExitCode(err); code != 1 {
				t.Errorf("ExitCode = %d, want 1", code)
			}
			if calls := r.Calls(); len(calls) != 0 {
				t.Errorf("expected no tool invocation, got %v", calls)
			}
		})
	}
}

func TestRun_UnprivilegedNeverInvokesTool(t *testing.T) {
	t.Parallel()

	for _, host := range []string{platform.HostDarwin, platform.HostLinux} {
		t.Run("host="+host, func(t *testing.T) {
			t.Parallel()

			g, r, _ := newTestGuard(&probe.Static{Host: host}, "y")
			plan := Plan{
				Platform:         host,
				RequirePrivilege: true,
				Action:           action.New("upgrade", "port", "upgrade", "outdated"),
			}

			err := g.Run(context.Background(), plan)
			if !errors.Is(err, ErrInsufficientPrivilege) {
				t.Fatalf("Run() = %v, want ErrInsufficientPrivilege", err)
			}
			if code := ExitCode(err); code != 1 {
				t.Errorf("ExitCode = %d, want 1", code)
			}
			if calls := r.Calls(); len(calls) != 0 {
				t.Errorf("expected no tool invocation, got %v", calls)
			}
		})
	}
}

func TestRun_MissingPathUsesCategoryExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		present  []string
		wantPath string
		wantCode runner.ExitCode
	}{
		{"library missing", []string{devicePath}, libraryPath, 1},
		{"device missing", []string{libraryPath}, devicePath, 2},
		{"both missing reports first", nil, libraryPath, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, r, _ := newTestGuard(&probe.Static{Host: platform.HostDarwin, Paths: tt.present}, "y")

			err := g.Run(context.Background(), syncPlan())
			var missing *MissingPathError
			if !errors.As(err, &missing) {
				t.Fatalf("Run() = %v, want *MissingPathError", err)
			}
			if missing.Path != tt.wantPath {
				t.Errorf("missing path = %q, want %q", missing.Path, tt.wantPath)
			}
			if code := ExitCode(err); code != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", code, tt.wantCode)
			}
			if calls := r.Calls(); len(calls) != 0 {
				t.Errorf("expected no tool invocation, got %v", calls)
			}
		})
	}
}

func TestRun_DeclinePrintsPreviewAndSkipsLiveSync(t *testing.T) {
	t.Parallel()

	for _, answer := range []string{"n", "N", "no", "", "maybe", "yep"} {
		t.Run("answer="+answer, func(t *testing.T) {
			t.Parallel()

			g, r, out := newTestGuard(&probe.Static{
				Host:  platform.HostDarwin,
				Paths: []string{libraryPath, devicePath},
			}, answer)
			act := syncAction()
			r.On(*act.Preview, &runner.Result{Output: "deleting books/old.epub\nnew.epub\n"})

			err := g.Run(context.Background(), syncPlan())
			if !errors.Is(err, ErrUserDeclined) {
				t.Fatalf("Run() = %v, want ErrUserDeclined", err)
			}
			if code := ExitCode(err); code != 0 {
				t.Errorf("ExitCode = %d, want 0", code)
			}
			if live := r.CallsWithMode(testutil.ModeRun); len(live) != 0 {
				t.Errorf("live sync must not run, got %v", live)
			}
			previews := r.CallsWithMode(testutil.ModeCapture)
			if len(previews) != 1 || !slices.Contains(previews[0].Args, "--dry-run") {
				t.Fatalf("expected exactly one dry-run preview, got %v", previews)
			}
			if !strings.Contains(out.String(), "deleting books/old.epub") {
				t.Errorf("preview output not shown: %q", out.String())
			}
			if g.Context().Confirmed {
				t.Error("RunContext.Confirmed = true after decline")
			}
		})
	}
}

func TestRun_AcceptRunsPreviewedArgumentsOnce(t *testing.T) {
	t.Parallel()

	for _, answer := range []string{"y", "Y", "yes", "YES"} {
		t.Run("answer="+answer, func(t *testing.T) {
			t.Parallel()

			g, r, _ := newTestGuard(&probe.Static{
				Host:  platform.HostDarwin,
				Paths: []string{libraryPath, devicePath},
			}, answer)

			err := g.Run(context.Background(), syncPlan())
			if err != nil {
				t.Fatalf("Run() = %v, want nil", err)
			}

			calls := r.Calls()
			if len(calls) != 2 {
				t.Fatalf("expected preview + live call, got %v", calls)
			}
			preview, live := calls[0], calls[1]
			if preview.Mode != testutil.ModeCapture || live.Mode != testutil.ModeRun {
				t.Fatalf("unexpected call order: %v", calls)
			}
			wantLive := syncAction().Args
			if !slices.Equal(live.Args, wantLive) {
				t.Errorf("live args = %v, want %v", live.Args, wantLive)
			}
			stripped := slices.DeleteFunc(slices.Clone(preview.Args), func(a string) bool { return a == "--dry-run" })
			if !slices.Equal(stripped, live.Args) {
				t.Errorf("live args %v differ from previewed args %v", live.Args, preview.Args)
			}
			if !g.Context().Confirmed {
				t.Error("RunContext.Confirmed = false after accept")
			}
		})
	}
}

func TestRun_ExitStatusMirrorsTool(t *testing.T) {
	t.Parallel()

	for _, code := range []runner.ExitCode{0, 11, 23, 255} {
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()

			g, r, _ := newTestGuard(&probe.Static{
				Host:  platform.HostDarwin,
				Paths: []string{libraryPath, devicePath},
			}, "y")
			r.On(syncAction(), runner.NewExitCodeResult(code))

			err := g.Run(context.Background(), syncPlan())
			if got := ExitCode(err); got != code {
				t.Errorf("ExitCode = %d, want %d (err %v)", got, code, err)
			}
			if code != 0 && !errors.Is(err, ErrExternalToolFailure) {
				t.Errorf("Run() = %v, want ErrExternalToolFailure", err)
			}
		})
	}
}

func TestRun_FailingPreviewIsFatal(t *testing.T) {
	t.Parallel()

	g, r, _ := newTestGuard(&probe.Static{
		Host:  platform.HostDarwin,
		Paths: []string{libraryPath, devicePath},
	}, "y")
	act := syncAction()
	r.On(*act.Preview, &runner.Result{ExitCode: 23, ErrOutput: "rsync: link_stat failed"})

	err := g.Run(context.Background(), syncPlan())
	if got := ExitCode(err); got != 23 {
		t.Errorf("ExitCode = %d, want 23", got)
	}
	if live := r.CallsWithMode(testutil.ModeRun); len(live) != 0 {
		t.Errorf("live sync must not run after a failed preview, got %v", live)
	}
}

func TestRun_WithoutConfirmExecutesDirectly(t *testing.T) {
	t.Parallel()

	prompter := testutil.NewScriptedPrompter()
	r := testutil.NewFakeRunner()
	g := New(Options{
		Probe:    &probe.Static{Host: platform.HostDarwin, Privileged: true},
		Prompter: prompter,
		Runner:   r,
	})

	err := g.Run(context.Background(), Plan{
		Platform:         platform.HostDarwin,
		RequirePrivilege: true,
		Action:           action.New("remove inactive ports", "port", "uninstall", "inactive"),
	})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if len(prompter.Questions) != 0 {
		t.Errorf("expected no prompt, got %v", prompter.Questions)
	}
	if calls := r.CallsWithMode(testutil.ModeRun); len(calls) != 1 {
		t.Errorf("expected one run, got %v", calls)
	}
}

func TestRun_PrepareRunsAfterPreconditions(t *testing.T) {
	t.Parallel()

	errBuild := errors.New("bad mirror")

	t.Run("not called when a precondition fails", func(t *testing.T) {
		t.Parallel()

		g, r, _ := newTestGuard(&probe.Static{Host: platform.HostDarwin, Paths: []string{libraryPath}}, "y")
		plan := syncPlan()
		plan.Prepare = func() (action.Action, error) {
			t.Error("Prepare must not run before the device is found")
			return syncAction(), nil
		}
		if got := ExitCode(g.Run(context.Background(), plan)); got != ExitDeviceMissing {
			t.Errorf("ExitCode = %d, want %d", got, ExitDeviceMissing)
		}
		if len(r.Calls()) != 0 {
			t.Errorf("expected no tool calls, got %v", r.Calls())
		}
	})

	t.Run("error stops the flow", func(t *testing.T) {
		t.Parallel()

		g, r, _ := newTestGuard(&probe.Static{Host: platform.HostDarwin, Paths: []string{libraryPath, devicePath}}, "y")
		plan := syncPlan()
		plan.Prepare = func() (action.Action, error) { return action.Action{}, errBuild }
		if err := g.Run(context.Background(), plan); !errors.Is(err, errBuild) {
			t.Errorf("Run() = %v, want %v", err, errBuild)
		}
		if len(r.Calls()) != 0 {
			t.Errorf("expected no tool calls, got %v", r.Calls())
		}
	})

	t.Run("prepared action replaces Action", func(t *testing.T) {
		t.Parallel()

		g, r, _ := newTestGuard(&probe.Static{Host: platform.HostDarwin, Paths: []string{libraryPath, devicePath}}, "y")
		plan := syncPlan()
		plan.Action = action.Action{}
		plan.Prepare = func() (action.Action, error) { return syncAction(), nil }
		if err := g.Run(context.Background(), plan); err != nil {
			t.Fatalf("Run() = %v", err)
		}
		live := r.CallsWithMode(testutil.ModeRun)
		if len(live) != 1 || !slices.Equal(live[0].Args, syncAction().Args) {
			t.Errorf("live calls = %v, want the prepared sync once", live)
		}
	})
}

func TestCheckPlatform(t *testing.T) {
	t.Parallel()

	g := New(Options{Probe: &probe.Static{Host: platform.HostDarwin}})

	if err := g.CheckPlatform("darwin"); err != nil {
		t.Errorf("CheckPlatform(darwin) = %v, want nil", err)
	}
	if err := g.CheckPlatform(""); err != nil {
		t.Errorf("CheckPlatform(\"\") = %v, want nil", err)
	}

	err := g.CheckPlatform(platform.HostLinux)
	var mismatch *PlatformMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("CheckPlatform(Linux) = %v, want *PlatformMismatchError", err)
	}
	if mismatch.Expected != platform.HostLinux || mismatch.Actual != platform.HostDarwin {
		t.Errorf("unexpected mismatch details: %+v", mismatch)
	}
}

func TestPreviewAction_WithoutPreviewPrintsCommand(t *testing.T) {
	t.Parallel()

	g, r, out := newTestGuard(&probe.Static{Host: platform.HostDarwin})
	act := action.New("upgrade", "port", "upgrade", "outdated")

	if err := g.PreviewAction(context.Background(), act); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "port upgrade outdated") {
		t.Errorf("expected command line in preview, got %q", out.String())
	}
	if len(r.Calls()) != 0 {
		t.Error("printing a preview must not run anything")
	}
	if g.Context().PendingAction == nil || g.Context().PendingAction.Program != "port" {
		t.Error("PendingAction not recorded")
	}
}

type brokenPrompter struct{}

func (brokenPrompter) Confirm(prompt.Question) (bool, error) { return true, errors.New("stdin closed") }

func TestPromptConfirm_ErrorNeverConfirms(t *testing.T) {
	t.Parallel()

	g := New(Options{Probe: &probe.Static{}, Prompter: brokenPrompter{}})
	ok, err := g.PromptConfirm(prompt.Question{Text: "Sync?"})
	if err == nil {
		t.Fatal("expected error")
	}
	if ok || g.Context().Confirmed {
		t.Error("a failed prompt must not confirm")
	}
}

func TestNew_DefaultPrompterDeclines(t *testing.T) {
	t.Parallel()

	g := New(Options{Probe: &probe.Static{}, Runner: testutil.NewFakeRunner()})
	ok, err := g.PromptConfirm(prompt.Question{Text: "Sync?", Polarity: prompt.DefaultAccept})
	if err != nil || ok {
		t.Errorf("PromptConfirm() = %v, %v; want false, nil", ok, err)
	}
	if g.Context().ID == "" {
		t.Error("expected a run ID")
	}
}

func TestExecuteAction_NotFound(t *testing.T) {
	t.Parallel()

	g, r, _ := newTestGuard(&probe.Static{})
	act := action.New("upgrade", "port", "upgrade", "outdated")
	r.On(act, runner.NewErrorResult(runner.ExitNotFound, errors.New("port: command not found")))

	err := g.ExecuteAction(context.Background(), act)
	var tool *ExternalToolFailureError
	if !errors.As(err, &tool) {
		t.Fatalf("ExecuteAction() = %v, want *ExternalToolFailureError", err)
	}
	if tool.ExitCode != runner.ExitNotFound || ExitCode(err) != runner.ExitNotFound {
		t.Errorf("exit = %d / %d, want 127", tool.ExitCode, ExitCode(err))
	}
	if !strings.Contains(err.Error(), "command not found") {
		t.Errorf("error should carry cause, got %q", err)
	}
}

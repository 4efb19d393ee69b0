// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tidyup/tidyup/internal/config"
	"github.com/tidyup/tidyup/internal/guard"
	"github.com/tidyup/tidyup/internal/probe"
	"github.com/tidyup/tidyup/internal/prompt"
	"github.com/tidyup/tidyup/internal/runner"
	"github.com/tidyup/tidyup/pkg/platform"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and build
	// their guard from it.
	App struct {
		Config   ConfigProvider
		Probe    probe.Probe
		Prompter prompt.Prompter
		// Runner is fixed when injected. When nil a runner is chosen per
		// invocation: a PTY runner in interactive mode, the exec runner otherwise.
		Runner runner.Runner
		Env    func(string) string
		stdin  *os.File
		stdout io.Writer
		stderr io.Writer
		flags  globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests supply fakes to keep
	// the host and external tools out of the picture.
	Dependencies struct {
		Config   ConfigProvider
		Probe    probe.Probe
		Prompter prompt.Prompter
		Runner   runner.Runner
		Env      func(string) string
		Stdin    *os.File
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags are the persistent root flags.
	globalFlags struct {
		configPath  string
		verbose     bool
		interactive bool
	}

	// session is the per-invocation state shared by the chore commands.
	session struct {
		cfg        *config.Config
		guard      *guard.Guard
		logger     *log.Logger
		stdout     io.Writer
		stderr     io.Writer
		env        func(string) string
		verbose    bool
		issueStyle string
	}
)

// NewApp creates the CLI composition root with defaults for missing dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Probe == nil {
		deps.Probe = probe.NewHost()
	}
	if deps.Env == nil {
		deps.Env = os.Getenv
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		Config:   deps.Config,
		Probe:    deps.Probe,
		Prompter: deps.Prompter,
		Runner:   deps.Runner,
		Env:      deps.Env,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}

// loadConfig loads the configuration selected by --config. Failures are
// rendered and returned as an *ExitError.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, configFailure(a.stderr, err, a.flags.verbose)
	}
	return cfg, nil
}

// newSession loads configuration, applies config-level UI defaults the
// flags did not override, and builds the guard for one chore.
func (a *App) newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := a.loadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}

	verbose := a.flags.verbose || cfg.UI.Verbose
	interactive := a.flags.interactive || cfg.UI.Interactive

	logger := newLogger(a.stderr, verbose)
	logger.Debug("configuration loaded", "manager", cfg.Packages.Manager, "interactive", interactive)
	if sandbox := platform.DetectSandbox(); sandbox != platform.SandboxNone {
		logger.Debug("running inside a sandbox", "sandbox", sandbox, "host_prefix", sandbox.HostPrefix())
	}

	g := guard.New(guard.Options{
		Probe:    a.Probe,
		Prompter: a.prompter(),
		Runner:   a.runner(interactive),
		Stdout:   a.stdout,
		Logger:   logger,
		Styles:   guardStyles(),
	})

	return &session{
		cfg:        cfg,
		guard:      g,
		logger:     logger,
		stdout:     a.stdout,
		stderr:     a.stderr,
		env:        a.Env,
		verbose:    verbose,
		issueStyle: issueStyleFor(cfg.UI.ColorScheme, a.stderr),
	}, nil
}

func (a *App) prompter() prompt.Prompter {
	if a.Prompter != nil {
		return a.Prompter
	}
	return prompt.ForTerminal(a.stdin, a.stdout, prompt.ThemeCharm)
}

func (a *App) runner(interactive bool) runner.Runner {
	if a.Runner != nil {
		return a.Runner
	}
	exec := &runner.Exec{
		Stdout:     a.stdout,
		Stderr:     a.stderr,
		Stdin:      a.stdin,
		HostPrefix: platform.DetectSandbox().HostPrefix(),
	}
	if interactive {
		return &runner.PTY{Stdout: a.stdout, Stdin: a.stdin, Fallback: exec}
	}
	return exec
}

// newLogger creates the process logger: debug level with --verbose, warnings
// only otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "tidyup",
		Level:  level,
	})
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/tidyup/tidyup/internal/guard"
	"github.com/tidyup/tidyup/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the tidyup command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tidyup",
		Short: "Guarded housekeeping chores for your workstation",
		Long: TitleStyle.Render("tidyup") + SubtitleStyle.Render(" - Guarded housekeeping chores for your workstation") + `

tidyup wraps package-manager maintenance and e-reader library syncing in
the same guard: check the platform, privileges and required paths, show a
preview of what will change, ask, and only then run the real command.

` + SubtitleStyle.Render("Examples:") + `
  sudo tidyup upgrade       Upgrade outdated MacPorts ports
  sudo tidyup cleanup       Remove caches and inactive ports
  tidyup ereader-sync       Mirror ~/Books onto the mounted e-reader
  tidyup config show        Show the effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/tidyup/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&app.flags.interactive, "interactive", "i", false, "attach external tools to a pseudo-terminal")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(
		newUpgradeCommand(app),
		newCleanupCommand(app),
		newEReaderSyncCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs tidyup with the process arguments and returns the exit status.
func Main() int {
	return run(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

// Execute runs tidyup and exits the process with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

func run(ctx context.Context, app *App, args []string) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	return exitCode(err)
}

// handleError prints errors that no command rendered itself (usage errors,
// unknown flags) with fang's default formatting.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// exitCode maps the error returned by the command tree to a process status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	if errors.Is(err, guard.ErrUserDeclined) {
		return 0
	}
	return int(guard.ExitPrecondition)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

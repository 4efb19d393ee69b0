// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tidyup/tidyup/internal/chore"
	"github.com/tidyup/tidyup/internal/config"
	"github.com/tidyup/tidyup/internal/pkgmgr"
	"github.com/tidyup/tidyup/internal/rsync"
)

func newUpgradeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade outdated packages after a preview and confirmation",
		Long: `Upgrade outdated packages with the configured package manager.

tidyup optionally refreshes the package metadata, lists the outdated
packages and asks before upgrading them. MacPorts requires root.`,
		Example: `  # Upgrade MacPorts ports
  sudo tidyup upgrade

  # Use Homebrew instead
  TIDYUP_PACKAGES_MANAGER=homebrew tidyup upgrade`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			profile, err := s.profile()
			if err != nil {
				return configFailure(s.stderr, err, s.verbose)
			}

			return s.choreFailure(chore.Upgrade(cmd.Context(), s.guard, chore.UpgradeOptions{
				Profile:       profile,
				RefreshPrompt: s.cfg.Packages.RefreshPrompt,
				Out:           s.stdout,
			}))
		},
	}
}

func newCleanupCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove package caches and inactive packages",
		Long: `Remove build caches and inactive packages with the configured package
manager. Cleanup does not ask for confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			profile, err := s.profile()
			if err != nil {
				return configFailure(s.stderr, err, s.verbose)
			}

			return s.choreFailure(chore.Cleanup(cmd.Context(), s.guard, chore.CleanupOptions{Profile: profile}))
		},
	}
}

func newEReaderSyncCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ereader-sync",
		Short: "Mirror the local library onto a mounted e-reader",
		Long: `Mirror the local library onto a mounted e-reader with rsync.

A dry run is shown first. Files on the device that are not in the library
are deleted once you confirm. Exits with status 2 when the e-reader is not
mounted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			expanded, err := s.cfg.Expanded(s.env)
			if err != nil {
				return configFailure(s.stderr, err, s.verbose)
			}

			return s.choreFailure(chore.EReaderSync(cmd.Context(), s.guard, chore.SyncOptions{
				Platform: expanded.EReader.Platform,
				Mirror:   mirrorFromConfig(expanded.EReader),
			}))
		},
	}
}

// profile resolves the configured package manager and executable.
func (s *session) profile() (pkgmgr.Profile, error) {
	profile, err := pkgmgr.Lookup(pkgmgr.Name(s.cfg.Packages.Manager))
	if err != nil {
		return pkgmgr.Profile{}, err
	}
	program, err := config.ExpandPath(string(s.cfg.Packages.Program), s.env)
	if err != nil {
		return pkgmgr.Profile{}, err
	}
	return profile.WithProgram(program), nil
}

func mirrorFromConfig(c config.EReaderConfig) rsync.Mirror {
	return rsync.Mirror{
		Program:   string(c.Rsync),
		Source:    c.Source,
		Mount:     c.Mount,
		TargetDir: c.TargetDir,
		Excludes:  c.Excludes,
	}
}

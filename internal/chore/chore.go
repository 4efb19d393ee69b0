// SPDX-License-Identifier: MPL-2.0

package chore

import (
	"context"
	"fmt"
	"io"

	"github.com/tidyup/tidyup/internal/action"
	"github.com/tidyup/tidyup/internal/guard"
	"github.com/tidyup/tidyup/internal/pkgmgr"
	"github.com/tidyup/tidyup/internal/prompt"
	"github.com/tidyup/tidyup/internal/rsync"
)

// NothingToUpgrade is printed when the package manager reports no outdated packages.
const NothingToUpgrade = "Nothing to upgrade."

type (
	// UpgradeOptions configures Upgrade.
	UpgradeOptions struct {
		Profile pkgmgr.Profile
		// RefreshPrompt asks before fetching package metadata. When false
		// the metadata is always refreshed.
		RefreshPrompt bool
		// Out receives flow messages such as NothingToUpgrade.
		Out io.Writer
	}

	// CleanupOptions configures Cleanup.
	CleanupOptions struct {
		Profile pkgmgr.Profile
	}

	// SyncOptions configures EReaderSync.
	SyncOptions struct {
		// Platform is the expected host. Empty accepts any host.
		Platform string
		Mirror   rsync.Mirror
	}
)

// Upgrade refreshes package metadata, previews the outdated packages and
// upgrades them once the user confirms.
func Upgrade(ctx context.Context, g *guard.Guard, opts UpgradeOptions) error {
	if err := checkManager(g, opts.Profile); err != nil {
		return err
	}

	refresh := true
	if opts.RefreshPrompt {
		var err error
		refresh, err = g.PromptConfirm(prompt.Question{
			Text:     "Fetch the latest package metadata first?",
			Polarity: prompt.DefaultAccept,
		})
		if err != nil {
			return err
		}
	}
	if refresh {
		if err := g.ExecuteAction(ctx, opts.Profile.UpdateMetadata()); err != nil {
			return err
		}
	}

	upgrade := opts.Profile.Upgrade()
	if err := g.PreviewAction(ctx, upgrade); err != nil {
		return err
	}
	if opts.Profile.NothingOutdated(g.Context().PreviewOutput) {
		if opts.Out != nil {
			fmt.Fprintln(opts.Out, NothingToUpgrade)
		}
		return nil
	}

	ok, err := g.PromptConfirm(prompt.Question{
		Text:        "Upgrade the outdated packages?",
		Description: "Packages listed above will be rebuilt or replaced.",
		Polarity:    prompt.DefaultDecline,
	})
	if err != nil {
		return err
	}
	if !ok {
		return guard.ErrUserDeclined
	}
	return g.ExecuteAction(ctx, upgrade)
}

// Cleanup removes caches and inactive packages. It does not ask for
// confirmation.
func Cleanup(ctx context.Context, g *guard.Guard, opts CleanupOptions) error {
	p := opts.Profile
	for _, act := range []action.Action{p.Clean(), p.Uninstall()} {
		err := g.Run(ctx, guard.Plan{
			Platform:         p.Platform,
			RequirePrivilege: p.RequiresPrivilege,
			Action:           act,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// EReaderSync mirrors the library onto the e-reader after a dry-run preview
// and an explicit confirmation. A missing library fails with status 1, a
// missing device with status 2.
func EReaderSync(ctx context.Context, g *guard.Guard, opts SyncOptions) error {
	return g.Run(ctx, guard.Plan{
		Platform:      opts.Platform,
		RequiredPaths: SyncPaths(opts.Mirror),
		Prepare:       opts.Mirror.Action,
		Confirm: &prompt.Question{
			Text:        "Sync the library to the e-reader?",
			Description: "Files missing from the library are deleted from the device.",
			Polarity:    prompt.DefaultDecline,
		},
	})
}

// SyncPaths returns the paths EReaderSync requires, in check order.
func SyncPaths(m rsync.Mirror) []guard.RequiredPath {
	return []guard.RequiredPath{
		{Path: m.Source, Label: "library", ExitCode: guard.ExitPrecondition},
		{Path: m.Mount, Label: "e-reader", ExitCode: guard.ExitDeviceMissing},
	}
}

func checkManager(g *guard.Guard, p pkgmgr.Profile) error {
	if err := g.CheckPlatform(p.Platform); err != nil {
		return err
	}
	if p.RequiresPrivilege {
		return g.CheckPrivilege()
	}
	return nil
}

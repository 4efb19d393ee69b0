// SPDX-License-Identifier: MPL-2.0

package pkgmgr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidyup/tidyup/internal/action"
	"github.com/tidyup/tidyup/pkg/platform"
)

const (
	// MacPorts drives the `port` command. It is the default.
	MacPorts Name = "macports"
	// Homebrew drives the `brew` command.
	Homebrew Name = "homebrew"

	// Default is used when no manager is configured.
	Default = MacPorts

	// portNothingOutdated is what `port outdated` prints when the list is empty.
	portNothingOutdated = "No installed ports are outdated"
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid package manager")

	profiles = map[Name]Profile{
		MacPorts: {
			Name:              MacPorts,
			Program:           "port",
			Platform:          platform.HostDarwin,
			RequiresPrivilege: true,
			updateArgs:        []string{"selfupdate"},
			outdatedArgs:      []string{"outdated"},
			upgradeArgs:       []string{"upgrade", "outdated"},
			cleanArgs:         []string{"clean", "--all", "installed"},
			uninstallArgs:     []string{"uninstall", "inactive"},
		},
		Homebrew: {
			Name:          Homebrew,
			Program:       "brew",
			Platform:      platform.HostDarwin,
			updateArgs:    []string{"update"},
			outdatedArgs:  []string{"outdated"},
			upgradeArgs:   []string{"upgrade"},
			cleanArgs:     []string{"cleanup", "--prune=all"},
			uninstallArgs: []string{"autoremove"},
		},
	}
)

type (
	// Name identifies a supported package manager.
	Name string

	// InvalidNameError is returned when a Name value is not recognized.
	// It wraps ErrInvalidName for errors.Is() compatibility.
	InvalidNameError struct {
		Value Name
	}

	// Profile holds the platform requirements and command set of one
	// package manager.
	Profile struct {
		Name Name
		// Program is the executable invoked for every step.
		Program string
		// Platform is the host identifier the manager runs on.
		Platform string
		// RequiresPrivilege is true when maintenance steps must run as root.
		RequiresPrivilege bool

		updateArgs    []string
		outdatedArgs  []string
		upgradeArgs   []string
		cleanArgs     []string
		uninstallArgs []string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	valid := make([]string, 0, len(profiles))
	for _, n := range Names() {
		valid = append(valid, n.String())
	}
	return fmt.Sprintf("invalid package manager %q (valid: %s)", e.Value, strings.Join(valid, ", "))
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// IsValid returns whether the Name is one of the supported managers,
// and a list of validation errors if it is not.
func (n Name) IsValid() (bool, []error) {
	if _, ok := profiles[n]; ok {
		return true, nil
	}
	return false, []error{&InvalidNameError{Value: n}}
}

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// Names returns the supported manager names in a stable order.
func Names() []Name {
	return []Name{MacPorts, Homebrew}
}

// Lookup returns the profile for name. An empty name selects Default.
// Matching ignores case and surrounding whitespace.
func Lookup(name Name) (Profile, error) {
	normalized := Name(strings.ToLower(strings.TrimSpace(string(name))))
	if normalized == "" {
		normalized = Default
	}
	if isValid, errs := normalized.IsValid(); !isValid {
		return Profile{}, errs[0]
	}
	return profiles[normalized], nil
}

// WithProgram returns a copy of p that invokes program instead of the
// default executable. An empty program leaves p unchanged.
func (p Profile) WithProgram(program string) Profile {
	if strings.TrimSpace(program) != "" {
		p.Program = program
	}
	return p
}

// UpdateMetadata fetches the latest package index.
func (p Profile) UpdateMetadata() action.Action {
	return p.action("fetch latest package metadata", p.updateArgs)
}

// ListOutdated lists installed packages with newer versions available.
func (p Profile) ListOutdated() action.Action {
	return p.action("list outdated packages", p.outdatedArgs)
}

// Upgrade upgrades every outdated package. Its preview is ListOutdated.
func (p Profile) Upgrade() action.Action {
	return p.action("upgrade outdated packages", p.upgradeArgs).WithPreview(p.ListOutdated())
}

// Clean removes build files, archives and caches.
func (p Profile) Clean() action.Action {
	return p.action("remove build files and caches", p.cleanArgs)
}

// Uninstall removes inactive or orphaned packages.
func (p Profile) Uninstall() action.Action {
	return p.action("remove inactive packages", p.uninstallArgs)
}

// NothingOutdated reports whether the output of ListOutdated means there is
// nothing to upgrade.
func (p Profile) NothingOutdated(output string) bool {
	trimmed := strings.TrimSpace(output)
	return trimmed == "" || strings.HasPrefix(trimmed, portNothingOutdated)
}

func (p Profile) action(description string, args []string) action.Action {
	return action.New(description, p.Program, append([]string(nil), args...)...)
}

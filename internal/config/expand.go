// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ExpandPath expands a leading "~" to the user's home directory and then
// $VAR and ${VAR} references using env. A nil env uses os.Getenv.
// Expansion follows double-quote rules, so there is no globbing or word
// splitting; command substitutions are rejected.
func ExpandPath(p string, env func(string) string) (string, error) {
	if env == nil {
		env = os.Getenv
	}

	if p == "~" || strings.HasPrefix(p, "~/") {
		home := env("HOME")
		if home == "" {
			var err error
			if home, err = os.UserHomeDir(); err != nil {
				return "", fmt.Errorf("expand %q: %w", p, err)
			}
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}

	expanded, err := shell.Expand(p, env)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	return expanded, nil
}

// Expanded returns a copy of cfg with e-reader paths and executables expanded.
func (c *Config) Expanded(env func(string) string) (*Config, error) {
	out := *c
	out.EReader.Excludes = append([]string(nil), c.EReader.Excludes...)

	fields := []*string{&out.EReader.Source, &out.EReader.Mount}
	for _, f := range fields {
		expanded, err := ExpandPath(*f, env)
		if err != nil {
			return nil, err
		}
		*f = expanded
	}

	for _, bin := range []*BinaryFilePath{&out.EReader.Rsync, &out.Packages.Program} {
		if *bin == "" {
			continue
		}
		expanded, err := ExpandPath(string(*bin), env)
		if err != nil {
			return nil, err
		}
		*bin = BinaryFilePath(expanded)
	}

	return &out, nil
}

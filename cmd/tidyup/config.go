// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tidyup/tidyup/internal/config"
)

// newConfigCommand creates the `tidyup config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tidyup configuration",
		Long: `Manage tidyup configuration.

Configuration is stored in:
  - Linux: ~/.config/tidyup/config.cue
  - macOS: ~/Library/Application Support/tidyup/config.cue
  - Windows: %APPDATA%\tidyup\config.cue

Every key can be overridden with a TIDYUP_* environment variable, for
example TIDYUP_EREADER_MOUNT=/media/kobo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout())
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE, TOML or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			out, err := config.Dump(cfg, config.DumpFormat(strings.ToLower(format)))
			if err != nil {
				return configFailure(app.stderr, err, app.flags.verbose)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", string(config.DumpFormatCUE), "output format (cue, toml, yaml)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfgPath := activeConfigPath(app.flags.configPath); cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("packages"))
	fmt.Fprintf(w, "  manager: %s\n", valueStyle.Render(string(cfg.Packages.Manager)))
	fmt.Fprintf(w, "  refresh_prompt: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Packages.RefreshPrompt)))
	if cfg.Packages.Program != "" {
		fmt.Fprintf(w, "  program: %s\n", valueStyle.Render(string(cfg.Packages.Program)))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ereader"))
	platform := cfg.EReader.Platform
	if platform == "" {
		platform = SubtitleStyle.Render("(any)")
	}
	fmt.Fprintf(w, "  platform: %s\n", valueStyle.Render(platform))
	fmt.Fprintf(w, "  source: %s\n", valueStyle.Render(cfg.EReader.Source))
	fmt.Fprintf(w, "  mount: %s\n", valueStyle.Render(cfg.EReader.Mount))
	fmt.Fprintf(w, "  target_dir: %s\n", valueStyle.Render(cfg.EReader.TargetDir))
	fmt.Fprintf(w, "  rsync: %s\n", valueStyle.Render(string(cfg.EReader.Rsync)))
	if len(cfg.EReader.Excludes) == 0 {
		fmt.Fprintf(w, "  excludes: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintln(w, "  excludes:")
		for _, ex := range cfg.EReader.Excludes {
			fmt.Fprintf(w, "    - %s\n", valueStyle.Render(ex))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  interactive: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Interactive)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(w io.Writer) error {
	cfgPath, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(w io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(w, "Config file: %s\n", cfgPath)
	return nil
}

// activeConfigPath returns the file configuration is read from, or "" when
// only defaults apply.
func activeConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil || !fileExistsCheck(cfgPath) {
		return ""
	}
	return cfgPath
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

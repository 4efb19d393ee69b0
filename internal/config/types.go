// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PackageManagerMacPorts drives MacPorts (`port`).
	PackageManagerMacPorts PackageManager = "macports"
	// PackageManagerHomebrew drives Homebrew (`brew`).
	// Defined locally to avoid coupling config to internal/pkgmgr;
	// the command layer casts to pkgmgr.Name at the boundary.
	PackageManagerHomebrew PackageManager = "homebrew"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DumpFormatCUE renders the configuration as a CUE config file.
	DumpFormatCUE DumpFormat = "cue"
	// DumpFormatTOML renders the configuration as TOML.
	DumpFormatTOML DumpFormat = "toml"
	// DumpFormatYAML renders the configuration as YAML.
	DumpFormatYAML DumpFormat = "yaml"
)

var (
	// ErrInvalidPackageManager is returned when a PackageManager value is not recognized.
	ErrInvalidPackageManager = errors.New("invalid package manager")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDumpFormat is returned when a DumpFormat value is not recognized.
	ErrInvalidDumpFormat = errors.New("invalid dump format")
	// ErrInvalidBinaryFilePath is returned when a BinaryFilePath value is whitespace-only.
	ErrInvalidBinaryFilePath = errors.New("invalid binary file path")
	// ErrInvalidEReaderConfig is the sentinel error wrapped by InvalidEReaderConfigError.
	ErrInvalidEReaderConfig = errors.New("invalid e-reader config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// PackageManager selects the package manager profile.
	PackageManager string

	// InvalidPackageManagerError is returned when a PackageManager value is not recognized.
	// It wraps ErrInvalidPackageManager for errors.Is() compatibility.
	InvalidPackageManagerError struct {
		Value PackageManager
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// DumpFormat selects the output format of `tidyup config dump`.
	DumpFormat string

	// InvalidDumpFormatError is returned when a DumpFormat value is not recognized.
	InvalidDumpFormatError struct {
		Value DumpFormat
	}

	// BinaryFilePath represents a filesystem path or name of an executable.
	// The zero value ("") is valid and means "use the default executable".
	BinaryFilePath string

	// InvalidBinaryFilePathError is returned when a BinaryFilePath value is
	// non-empty but whitespace-only.
	InvalidBinaryFilePathError struct {
		Value BinaryFilePath
	}

	// InvalidEReaderConfigError is returned when an EReaderConfig has invalid fields.
	// It wraps ErrInvalidEReaderConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidEReaderConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Packages configures `tidyup upgrade` and `tidyup cleanup`
		Packages PackagesConfig `json:"packages" mapstructure:"packages" toml:"packages" yaml:"packages"`
		// EReader configures `tidyup ereader-sync`
		EReader EReaderConfig `json:"ereader" mapstructure:"ereader" toml:"ereader" yaml:"ereader"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui" yaml:"ui"`
	}

	// PackagesConfig selects and tunes the package manager.
	PackagesConfig struct {
		// Manager is "macports" (default) or "homebrew"
		Manager PackageManager `json:"manager" mapstructure:"manager" toml:"manager" yaml:"manager"`
		// RefreshPrompt asks before fetching package metadata (default: true).
		// When false the metadata is refreshed without asking.
		RefreshPrompt bool `json:"refresh_prompt" mapstructure:"refresh_prompt" toml:"refresh_prompt" yaml:"refresh_prompt"`
		// Program overrides the package manager executable
		Program BinaryFilePath `json:"program,omitempty" mapstructure:"program" toml:"program,omitempty" yaml:"program,omitempty"`
	}

	// EReaderConfig describes the library mirror.
	EReaderConfig struct {
		// Platform is the host the sync is allowed on. Empty disables the check.
		Platform string `json:"platform" mapstructure:"platform" toml:"platform" yaml:"platform"`
		// Source is the local library directory. "~" and $VARS are expanded.
		Source string `json:"source" mapstructure:"source" toml:"source" yaml:"source"`
		// Mount is the e-reader mount point. "~" and $VARS are expanded.
		Mount string `json:"mount" mapstructure:"mount" toml:"mount" yaml:"mount"`
		// TargetDir is the directory under Mount that receives the library
		TargetDir string `json:"target_dir" mapstructure:"target_dir" toml:"target_dir" yaml:"target_dir"`
		// Excludes are rsync exclude patterns
		Excludes []string `json:"excludes" mapstructure:"excludes" toml:"excludes" yaml:"excludes"`
		// Rsync is the rsync executable
		Rsync BinaryFilePath `json:"rsync" mapstructure:"rsync" toml:"rsync" yaml:"rsync"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme" yaml:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
		// Interactive attaches external tools to a pseudo-terminal
		Interactive bool `json:"interactive" mapstructure:"interactive" toml:"interactive" yaml:"interactive"`
	}
)

// Error implements the error interface for InvalidPackageManagerError.
func (e *InvalidPackageManagerError) Error() string {
	return fmt.Sprintf("invalid package manager %q (valid: macports, homebrew)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidPackageManagerError) Unwrap() error {
	return ErrInvalidPackageManager
}

// String returns the string representation of the PackageManager.
func (m PackageManager) String() string { return string(m) }

// IsValid returns whether the PackageManager is one of the supported managers,
// and a list of validation errors if it is not.
func (m PackageManager) IsValid() (bool, []error) {
	switch m {
	case PackageManagerMacPorts, PackageManagerHomebrew:
		return true, nil
	default:
		return false, []error{&InvalidPackageManagerError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidDumpFormatError.
func (e *InvalidDumpFormatError) Error() string {
	return fmt.Sprintf("invalid dump format %q (valid: cue, toml, yaml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidDumpFormatError) Unwrap() error {
	return ErrInvalidDumpFormat
}

// String returns the string representation of the DumpFormat.
func (f DumpFormat) String() string { return string(f) }

// IsValid returns whether the DumpFormat is supported.
func (f DumpFormat) IsValid() (bool, []error) {
	switch f {
	case DumpFormatCUE, DumpFormatTOML, DumpFormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidDumpFormatError{Value: f}}
	}
}

// String returns the string representation of the BinaryFilePath.
func (p BinaryFilePath) String() string { return string(p) }

// IsValid returns whether the BinaryFilePath is valid.
// The zero value ("") is valid (means "use the default executable").
// Non-zero values must not be whitespace-only.
func (p BinaryFilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidBinaryFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBinaryFilePathError.
func (e *InvalidBinaryFilePathError) Error() string {
	return fmt.Sprintf("invalid binary file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidBinaryFilePath for errors.Is() compatibility.
func (e *InvalidBinaryFilePathError) Unwrap() error { return ErrInvalidBinaryFilePath }

// IsValid returns whether the EReaderConfig has valid fields.
func (c EReaderConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.Source) == "" {
		errs = append(errs, errors.New("ereader.source must not be empty"))
	}
	if strings.TrimSpace(c.Mount) == "" {
		errs = append(errs, errors.New("ereader.mount must not be empty"))
	}
	if strings.Contains(c.TargetDir, "..") {
		errs = append(errs, fmt.Errorf("ereader.target_dir %q must not contain '..'", c.TargetDir))
	}
	for i, ex := range c.Excludes {
		if strings.TrimSpace(ex) == "" {
			errs = append(errs, fmt.Errorf("ereader.excludes[%d] must not be empty", i))
		}
	}
	if valid, fieldErrs := c.Rsync.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidEReaderConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidEReaderConfigError.
func (e *InvalidEReaderConfigError) Error() string {
	return fmt.Sprintf("invalid e-reader config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidEReaderConfig for errors.Is() compatibility.
func (e *InvalidEReaderConfigError) Unwrap() error { return ErrInvalidEReaderConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Packages.Manager, Packages.Program, EReader and UI.ColorScheme.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Packages.Manager.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Packages.Program.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.EReader.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Packages: PackagesConfig{
			Manager:       PackageManagerMacPorts,
			RefreshPrompt: true,
		},
		EReader: EReaderConfig{
			Platform:  "Darwin",
			Source:    "~/Books",
			Mount:     "/Volumes/KOBOeReader",
			TargetDir: "Books",
			Excludes:  []string{".DS_Store", "._*"},
			Rsync:     "rsync",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Interactive: false,
		},
	}
}

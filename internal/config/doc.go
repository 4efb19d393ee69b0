// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/tidyup/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/tidyup/config.cue on macOS, %APPDATA%\tidyup\config.cue
// on Windows). It selects the package manager, describes the e-reader library mirror and
// holds UI preferences. Every key can be overridden through a TIDYUP_* environment variable
// (for example TIDYUP_EREADER_MOUNT).
//
// Configuration files are validated against an embedded CUE schema (config_schema.cue) so
// typos and invalid values are reported with the offending path.
package config

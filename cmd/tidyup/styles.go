// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tidyup/tidyup/internal/guard"
)

// Color palette shared by all CLI output.
// Tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, used for checkmarks and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, used for errors and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for command lines and keys.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray, used for tool stderr and debug details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command lines, config keys and other literal text.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for verbose output and supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)
)

// guardStyles decorates previews printed by the guard.
func guardStyles() guard.Styles {
	return guard.Styles{
		Heading: TitleStyle,
		Command: CmdStyle,
		Muted:   VerboseStyle,
	}
}

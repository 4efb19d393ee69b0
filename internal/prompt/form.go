// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// Theme names a huh theme.
type Theme string

const (
	// ThemeDefault uses the base huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

// Form asks questions with an interactive huh confirm field.
type Form struct {
	// Theme selects the huh theme.
	Theme Theme
	// Accessible switches huh to its screen-reader friendly line mode.
	Accessible bool
	// Output receives the rendered form; nil means huh's default (stdout).
	Output io.Writer
}

// Confirm implements Prompter. Aborting the form (ctrl+c, esc) is a decline.
func (f *Form) Confirm(q Question) (bool, error) {
	confirmed := q.Polarity == DefaultAccept

	field := huh.NewConfirm().
		Title(q.Text).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if q.Description != "" {
		field = field.Description(q.Description)
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huhTheme(f.Theme)).
		WithAccessible(f.Accessible)
	if f.Output != nil {
		form = form.WithOutput(f.Output)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// huhTheme converts a Theme to a huh.Theme.
func huhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

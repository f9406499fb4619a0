package main

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// -- Colors ---------------------------------------------------------------
// Every color is picked once per session through lipgloss.LightDark, based
// on the background detected at startup.
// Light values: ANSI 0-15 for accents (palette-adaptive), 256-color for grays
// (predictable). ANSI 7/15 (white) are invisible on light backgrounds, so
// never use them for Light values.
// Dark values: ANSI 256-color codes tuned for dark backgrounds.
//
// | Name           | Light | Dark  | Light desc    | Dark desc      |
// |----------------|-------|-------|---------------|----------------|
// | textPrimary    |   "0" | "252" | black         | light gray     |
// | textSecondary  |   "8" | "245" | ANSI dk gray  | gray           |
// | textDim        | "242" | "243" | medium gray   | gray           |
// | textMuted      | "245" | "240" | med-lt gray   | dark gray      |
// | accent         |   "4" |  "75" | blue          | blue           |
// | errorColor     |   "1" | "196" | red           | red            |
// | border         | "250" |  "60" | subtle gray   | muted blue     |
// | kindText       |   "0" | "252" | black         | light gray     |
// | kindURL        |   "4" |  "75" | blue          | blue           |
// | kindImage      |   "2" | "114" | green         | green          |
// | kindFile       |   "3" | "214" | gold          | amber          |

// theme holds the resolved palette and the styles built from it.
type theme struct {
	textPrimary   color.Color
	textSecondary color.Color
	textDim       color.Color
	textMuted     color.Color
	accent        color.Color
	errorColor    color.Color
	border        color.Color

	kindText  color.Color
	kindURL   color.Color
	kindImage color.Color
	kindFile  color.Color

	// Semantic text styles. lipgloss styles are values, so callers may chain
	// .Width(), .Padding() and friends on these without mutating the theme.
	primary       lipgloss.Style
	primaryBold   lipgloss.Style
	secondary     lipgloss.Style
	dim           lipgloss.Style
	muted         lipgloss.Style
	accentBold    lipgloss.Style
	errorBold     lipgloss.Style
	urlText       lipgloss.Style
}

func newTheme(hasDarkBg bool) theme {
	ld := lipgloss.LightDark(hasDarkBg)
	c := func(light, dark string) color.Color {
		return ld(lipgloss.Color(light), lipgloss.Color(dark))
	}

	t := theme{
		textPrimary:   c("0", "252"),
		textSecondary: c("8", "245"),
		textDim:       c("242", "243"),
		textMuted:     c("245", "240"),
		accent:        c("4", "75"),
		errorColor:    c("1", "196"),
		border:        c("250", "60"),

		kindText:  c("0", "252"),
		kindURL:   c("4", "75"),
		kindImage: c("2", "114"),
		kindFile:  c("3", "214"),
	}

	t.primary = lipgloss.NewStyle().Foreground(t.textPrimary)
	t.primaryBold = t.primary.Bold(true)
	t.secondary = lipgloss.NewStyle().Foreground(t.textSecondary)
	t.dim = lipgloss.NewStyle().Foreground(t.textDim)
	t.muted = lipgloss.NewStyle().Foreground(t.textMuted)
	t.accentBold = lipgloss.NewStyle().Bold(true).Foreground(t.accent)
	t.errorBold = lipgloss.NewStyle().Bold(true).Foreground(t.errorColor)
	t.urlText = lipgloss.NewStyle().Foreground(t.kindURL).Underline(true)
	return t
}

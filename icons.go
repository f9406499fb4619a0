package main

import (
	"image/color"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// Icons used throughout the TUI.
// Using standard Unicode symbols for maximum terminal compatibility.
const (
	IconText     = "≡" // plain text item
	IconURL      = "↗" // link item
	IconImage    = "▣" // bitmap item
	IconFile     = "▤" // file reference
	IconEmpty    = "○" // empty history
	IconDot      = "·" // separator dot
	IconSelected = "│" // selected card sidebar
	IconMore     = "…" // truncated content
)

// kindIcon returns the glyph for an item kind.
func kindIcon(k pasteboard.Kind) string {
	switch k {
	case pasteboard.KindURL:
		return IconURL
	case pasteboard.KindImage:
		return IconImage
	case pasteboard.KindFile:
		return IconFile
	default:
		return IconText
	}
}

// kindColor returns the accent color for an item kind.
func (t theme) kindColor(k pasteboard.Kind) color.Color {
	switch k {
	case pasteboard.KindURL:
		return t.kindURL
	case pasteboard.KindImage:
		return t.kindImage
	case pasteboard.KindFile:
		return t.kindFile
	default:
		return t.kindText
	}
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// formatCount formats a count for display: 1234 -> "1.2k", 123456 -> "123.5k", 1234567 -> "1.2M"
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatSize formats a byte count: 512 -> "512 B", 2048 -> "2.0 KB", 3<<20 -> "3.0 MB"
func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// plural returns "1 line", "2 lines".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return formatCount(n) + " " + noun + "s"
}

// shortPath abbreviates a file path to its last component.
// Returns the path unchanged when it has none.
func shortPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return path
	}
	return base
}

// itemMeta is the right-hand footer summary of an item: size facts that
// the card itself doesn't show.
func itemMeta(item pasteboard.Item) string {
	var parts []string
	if f, ok := item.(pasteboard.LocalFile); ok {
		parts = append(parts, shortPath(f.Path))
	}
	switch g := pasteboard.Ground(item).(type) {
	case pasteboard.Image:
		parts = append(parts, fmt.Sprintf("%d×%d", g.Width, g.Height))
		if len(g.Data) > 0 {
			parts = append(parts, formatSize(len(g.Data)))
		}
	case pasteboard.Text:
		parts = append(parts,
			plural(strings.Count(g.Value, "\n")+1, "line"),
			plural(len([]rune(g.Value)), "char"),
		)
	}
	return strings.Join(parts, " "+IconDot+" ")
}

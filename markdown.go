package main

import (
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/term"
)

// mdRenderer caches a glamour terminal renderer at a specific width.
// Recreates the renderer when the width changes.
type mdRenderer struct {
	hasDarkBg bool
	renderer  *glamour.TermRenderer
	width     int
}

func newMdRenderer(hasDarkBg bool) *mdRenderer {
	return &mdRenderer{hasDarkBg: hasDarkBg}
}

// style returns the glamour style config with Document.Margin zeroed out so
// the preview pane handles its own padding.
func (r *mdRenderer) style() ansi.StyleConfig {
	var style ansi.StyleConfig
	switch {
	case !term.IsTerminal(int(os.Stdout.Fd())):
		style = styles.NoTTYStyleConfig
	case r.hasDarkBg:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	return style
}

func uintPtr(v uint) *uint { return &v }

// render renders markdown content for terminal display.
// Returns the original content on error.
func (r *mdRenderer) render(content string, width int) string {
	if width <= 0 {
		return content
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.style()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

var markdownLine = regexp.MustCompile(`^(#{1,6} |[-*+] |\d+\. |> |` + "```" + `)`)

var markdownLink = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)

// looksLikeMarkdown reports whether s has enough markdown structure to be
// worth rendering: at least two structural lines, or a heading, or a link.
func looksLikeMarkdown(s string) bool {
	if markdownLink.MatchString(s) {
		return true
	}
	hits := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimLeft(line, " ")
		if !markdownLine.MatchString(line) {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") {
			return true
		}
		hits++
		if hits >= 2 {
			return true
		}
	}
	return false
}

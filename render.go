package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// -- Layout constants ---------------------------------------------------------

// maxContentWidth is the maximum width for content rendering.
const maxContentWidth = 120

// indicatorWidth is the left margin holding the selection sidebar.
const indicatorWidth = 2

// minCardWidth keeps at least a few text columns on very narrow terminals.
const minCardWidth = 12

// cardChromeRows is the rows a card spends on its rounded border.
const cardChromeRows = 2

// cardPaddingX is the horizontal padding inside a card's border.
const cardPaddingX = 1

// statusBarHeight is the number of rendered lines the status bar occupies.
// Rounded border: top + content + bottom = 3 lines.
const statusBarHeight = 3

// footerHeight is the one-line summary of the selected card.
const footerHeight = 1

// previewHeaderHeight is the title line above preview content.
const previewHeaderHeight = 1

// -- Helpers ------------------------------------------------------------------

// contentWidth returns the text columns inside a card of the given width.
// Subtracts border (2) + padding (2) and floors at 1.
func contentWidth(cardWidth int) int {
	return max(cardWidth-2-2*cardPaddingX, 1)
}

// selectionIndicator returns a left-margin marker for the selected card.
func (m model) selectionIndicator(selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(m.theme.accent).Render(IconSelected) + " "
	}
	return "  "
}

// spaceBetween lays out left and right strings with gap-fill spacing to span width.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// indentBlock adds a prefix to every line of a block of text.
func indentBlock(text string, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// firstLine returns s up to its first newline.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// fitBlock shapes lines into exactly rows lines of exactly cols cells.
// Overflowing blocks end in an ellipsis on the last row.
func fitBlock(lines []string, cols, rows int, more string) []string {
	overflow := len(lines) > rows
	if overflow {
		lines = lines[:rows]
	}
	out := make([]string, rows)
	for i := range out {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], cols, "")
		}
		if overflow && i == rows-1 {
			line = ansi.Truncate(line, cols-1, "") + more
		}
		out[i] = line + strings.Repeat(" ", max(cols-ansi.StringWidth(line), 0))
	}
	return out
}

// centerLines pads each line on the left so the block sits centered in cols.
func centerLines(lines []string, blockWidth, cols int) []string {
	pad := strings.Repeat(" ", max((cols-blockWidth)/2, 0))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = pad + l
	}
	return out
}

// -- Cards --------------------------------------------------------------------

// renderCard draws card i at the given width. The result has exactly the
// height sizeFor reports; failed lookups render nothing.
func (m model) renderCard(i, width int, selected bool) string {
	c, err := m.contentAt(i)
	if err != nil {
		return ""
	}
	size, err := m.sizeFor(i, width)
	if err != nil {
		return ""
	}
	rows := size.height - cardChromeRows
	cols := contentWidth(width)

	var body []string
	switch c.template {
	case templateImage:
		body = m.imageBody(c, cols, rows)
	default:
		body = m.textBody(c, cols, rows)
	}

	border := m.theme.border
	if selected {
		border = m.theme.accent
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, cardPaddingX).
		Render(strings.Join(body, "\n"))

	return indentBlock(card, m.selectionIndicator(selected))
}

// textBody lays out text-like content: JSON is highlighted, everything else
// is word-wrapped the same way the layout engine measured it.
func (m model) textBody(c cardContent, cols, rows int) []string {
	more := m.theme.muted.Render(IconMore)

	if c.kind != pasteboard.KindURL {
		if out, ok := m.hl.highlightJSON(c.text); ok {
			return fitBlock(strings.Split(out, "\n"), cols, rows, more)
		}
	}

	style := m.theme.primary
	if c.kind == pasteboard.KindURL {
		style = m.theme.urlText
	}
	wrapped := strings.Split(ansi.Wrap(pasteboard.Normalize(c.text), cols, ""), "\n")
	for i, l := range wrapped {
		wrapped[i] = style.Render(l)
	}
	return fitBlock(wrapped, cols, rows, more)
}

// imageBody draws a centered thumbnail, or a placeholder when the bitmap
// cannot be decoded.
func (m model) imageBody(c cardContent, cols, rows int) []string {
	t, err := m.thumbs.get(c.image, cols, rows)
	if err != nil {
		label := m.theme.dim.Render(IconImage + " " + c.tooltip)
		lines := make([]string, rows/2+1)
		lines[rows/2] = label
		return fitBlock(centerLines(lines, lipgloss.Width(label), cols), cols, rows, "")
	}
	return fitBlock(centerLines(t.lines, t.cols, cols), cols, rows, "")
}

// -- List view ----------------------------------------------------------------

func (m model) viewList() string {
	width := m.clampWidth()
	viewHeight := m.listViewHeight()

	var lines []string
	if m.itemCount() == 0 {
		lines = m.emptyState()
	} else {
		lines = m.visibleCardLines(viewHeight)
	}
	for len(lines) < viewHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n") + "\n" +
		m.renderFooter(width) + "\n" +
		m.renderStatusBar(
			"j/k", "move",
			"enter", "copy",
			"space", "preview",
			"q", "quit",
		)
}

// visibleCardLines renders only the cards that intersect the viewport and
// returns the lines inside it.
func (m model) visibleCardLines(viewHeight int) []string {
	width := m.cardWidth()
	top, bottom := m.scroll, m.scroll+viewHeight

	var out []string
	emit := func(line int, s string) {
		if line >= top && line < bottom {
			out = append(out, s)
		}
	}
	for i := range m.lineOffsets {
		start := m.lineOffsets[i]
		end := start + m.cardLines[i]
		if start >= bottom {
			break
		}
		if end > top {
			for j, l := range strings.Split(m.renderCard(i, width, i == m.cursor), "\n") {
				if j < m.cardLines[i] {
					emit(start+j, l)
				}
			}
		}
		if i < len(m.lineOffsets)-1 {
			emit(end, "")
		}
	}
	return out
}

func (m model) emptyState() []string {
	return []string{
		"",
		"  " + m.theme.secondary.Render(IconEmpty+" Clipboard history is empty"),
		"  " + m.theme.dim.Render("Copy something and it will show up here."),
	}
}

// renderFooter summarizes the selected card: kind and tooltip.
func (m model) renderFooter(width int) string {
	c, err := m.contentAt(m.cursor)
	if err != nil {
		return ""
	}
	label := lipgloss.NewStyle().
		Foreground(m.theme.kindColor(c.kind)).
		Bold(true).
		Render(kindIcon(c.kind) + " " + c.kind.String())
	tip := strings.TrimSpace(firstLine(pasteboard.Normalize(c.tooltip)))
	left := label + " " + m.theme.muted.Render(IconDot) + " " + m.theme.dim.Render(tip)

	var right string
	if item, err := m.snap.ItemAt(m.cursor); err == nil {
		right = m.theme.muted.Render(itemMeta(item))
	}
	left = ansi.Truncate(left, max(width-lipgloss.Width(right)-2, 1), IconMore)
	return ansi.Truncate(spaceBetween(left, right, width), width, "")
}

// -- Preview view -------------------------------------------------------------

func (m model) viewPreview() string {
	width := m.clampWidth()
	viewHeight := m.previewViewHeight()

	lines := strings.Split(strings.TrimRight(m.previewContent(width), "\n"), "\n")
	start := min(m.previewScroll, len(lines))
	end := min(start+viewHeight, len(lines))
	visible := append([]string(nil), lines[start:end]...)
	for len(visible) < viewHeight {
		visible = append(visible, "")
	}

	return m.renderPreviewHeader(width) + "\n" +
		strings.Join(visible, "\n") + "\n" +
		m.renderStatusBar(
			"j/k", "scroll",
			"enter", "copy",
			"esc", "back",
		)
}

func (m model) renderPreviewHeader(width int) string {
	item, err := m.snap.ItemAt(m.cursor)
	if err != nil {
		return ""
	}
	kind := pasteboard.KindOf(item)
	left := lipgloss.NewStyle().
		Foreground(m.theme.kindColor(kind)).
		Bold(true).
		Render(kindIcon(kind)+" ") +
		m.theme.primaryBold.Render(ansi.Truncate(pasteboard.Describe(item), max(width-12, 1), IconMore))
	right := m.theme.dim.Render(fmt.Sprintf("%d/%d", m.cursor+1, m.itemCount()))
	return spaceBetween(left, right, width)
}

// previewContent renders the selected item in full at width: JSON and
// recognised code are highlighted, markdown goes through glamour, images
// get the largest thumbnail that fits.
func (m model) previewContent(width int) string {
	item, err := m.snap.ItemAt(m.cursor)
	if err != nil {
		return ""
	}

	switch g := pasteboard.Ground(item).(type) {
	case pasteboard.Image:
		t, err := m.thumbs.get(g, width, m.previewViewHeight())
		if err != nil {
			return m.theme.dim.Render(IconImage + " " + err.Error())
		}
		return strings.Join(centerLines(t.lines, t.cols, width), "\n")
	case pasteboard.Text:
		if out, ok := m.hl.highlightJSON(g.Value); ok {
			return ansi.Wrap(out, width, "")
		}
		if looksLikeMarkdown(g.Value) {
			return m.md.render(g.Value, width)
		}
		if out, _, ok := m.hl.highlightCode(g.Value); ok {
			return ansi.Wrap(out, width, "")
		}
		return ansi.Wrap(pasteboard.Normalize(g.Value), width, "")
	default:
		return m.theme.urlText.Render(ansi.Wrap(pasteboard.DisplayText(g), width, ""))
	}
}

// -- Status bar ---------------------------------------------------------------

// renderStatusBar renders key hints in a rounded-border box, with the item
// count (or the polling error) on the right.
func (m model) renderStatusBar(pairs ...string) string {
	sep := " " + m.theme.muted.Render(IconDot) + " "

	var hints []string
	for i := 0; i+1 < len(pairs); i += 2 {
		hints = append(hints, m.theme.accentBold.Render(pairs[i])+" "+m.theme.dim.Render(pairs[i+1]))
	}

	var right string
	switch {
	case m.pollErr != nil:
		right = m.theme.errorBold.Render("clipboard unavailable")
	case m.itemCount() == 1:
		right = m.theme.muted.Render("1 item")
	default:
		right = m.theme.muted.Render(fmt.Sprintf("%d items", m.itemCount()))
	}

	inner := max(m.width-2-2, 1) // border + padding
	line := ansi.Truncate(spaceBetween(strings.Join(hints, sep), right, inner), inner, "")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.border).
		Padding(0, 1).
		Render(line)
}

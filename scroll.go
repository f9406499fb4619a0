package main

import "strings"

// clampWidth returns m.width capped at maxContentWidth.
func (m model) clampWidth() int {
	if m.width > maxContentWidth {
		return maxContentWidth
	}
	return m.width
}

// cardWidth returns the width available to a card once the selection
// indicator column is taken.
func (m model) cardWidth() int {
	return max(m.clampWidth()-indicatorWidth, minCardWidth)
}

// listViewHeight returns the number of rows available to cards.
func (m model) listViewHeight() int {
	return max(m.height-statusBarHeight-footerHeight, 1)
}

// previewViewHeight returns the number of rows available to preview content.
func (m model) previewViewHeight() int {
	return max(m.height-statusBarHeight-previewHeaderHeight, 1)
}

// computeLineOffsets calculates the starting line of each card in the
// rendered output from sizeFor. Must mirror viewList's layout to keep
// scroll accurate.
func (m *model) computeLineOffsets() {
	n := m.itemCount()
	m.lineOffsets = make([]int, n)
	m.cardLines = make([]int, n)
	m.totalRenderedLines = 0
	if m.width == 0 || n == 0 {
		return
	}
	width := m.cardWidth()

	currentLine := 0
	for i := 0; i < n; i++ {
		m.lineOffsets[i] = currentLine
		if size, err := m.sizeFor(i, width); err == nil {
			m.cardLines[i] = size.height
		}
		currentLine += m.cardLines[i]
		if i < n-1 {
			currentLine++ // blank line between cards
		}
	}
	m.totalRenderedLines = currentLine
}

// ensureCursorVisible adjusts scroll so the cursor's card is within the
// visible viewport. A card taller than the viewport shows its top.
func (m *model) ensureCursorVisible() {
	if len(m.lineOffsets) == 0 || m.height == 0 || m.cursor >= len(m.lineOffsets) {
		return
	}
	viewHeight := m.listViewHeight()

	cursorStart := m.lineOffsets[m.cursor]
	cursorEnd := cursorStart + m.cardLines[m.cursor] - 1

	if cursorEnd >= m.scroll+viewHeight {
		m.scroll = cursorEnd - viewHeight + 1
	}
	if cursorStart < m.scroll {
		m.scroll = cursorStart
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// clampListScroll caps the list scroll offset so it can't exceed the content.
func (m *model) clampListScroll() {
	maxScroll := max(m.totalRenderedLines-m.listViewHeight(), 0)
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// cardAtLine returns the card covering rendered line, or -1 for the gaps
// between cards and lines past the end.
func (m model) cardAtLine(line int) int {
	for i, start := range m.lineOffsets {
		if line < start {
			break
		}
		if line < start+m.cardLines[i] {
			return i
		}
	}
	return -1
}

// computePreviewMaxScroll caches the maximum scroll offset for the preview.
// Called when entering the preview, on resize and on every snapshot.
func (m *model) computePreviewMaxScroll() {
	if m.width == 0 || m.height == 0 {
		m.previewMaxScroll = 0
		return
	}
	content := strings.TrimRight(m.previewContent(m.clampWidth()), "\n")
	totalLines := strings.Count(content, "\n") + 1

	m.previewMaxScroll = max(totalLines-m.previewViewHeight(), 0)
	if m.previewScroll > m.previewMaxScroll {
		m.previewScroll = m.previewMaxScroll
	}
}

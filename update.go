package main

import tea "charm.land/bubbletea/v2"

// wheelStep is how many lines one mouse wheel notch scrolls.
const wheelStep = 3

// updateList handles key events in the card list view.
func (m model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
	case "G", "end":
		if m.itemCount() > 0 {
			m.cursor = m.itemCount() - 1
			m.ensureCursorVisible()
		}
	case "g", "home":
		m.cursor = 0
		m.scroll = 0
	case "ctrl+d", "pgdown":
		// Scroll viewport down (half page)
		m.scroll += m.listViewHeight() / 2
		m.clampListScroll()
	case "ctrl+u", "pgup":
		// Scroll viewport up (half page)
		m.scroll -= m.listViewHeight() / 2
		m.clampListScroll()
	case "enter":
		return m, m.onSelect(m.cursor)
	case "space", " ", "p":
		if m.itemCount() > 0 {
			m.view = viewPreview
			m.previewScroll = 0
			m.computePreviewMaxScroll()
		}
	}
	return m, nil
}

// updatePreview handles key events in the preview view.
func (m model) updatePreview(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "space", " ", "p", "backspace":
		m.view = viewList
		m.ensureCursorVisible()
	case "j", "down":
		m.previewScroll = min(m.previewScroll+1, m.previewMaxScroll)
	case "k", "up":
		m.previewScroll = max(m.previewScroll-1, 0)
	case "ctrl+d", "pgdown":
		m.previewScroll = min(m.previewScroll+m.previewViewHeight()/2, m.previewMaxScroll)
	case "ctrl+u", "pgup":
		m.previewScroll = max(m.previewScroll-m.previewViewHeight()/2, 0)
	case "G", "end":
		m.previewScroll = m.previewMaxScroll
	case "g", "home":
		m.previewScroll = 0
	case "enter":
		m.view = viewList
		return m, m.onSelect(m.cursor)
	}
	return m, nil
}

// updateListWheel scrolls the list viewport without moving the cursor.
func (m model) updateListWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseWheelUp:
		m.scroll -= wheelStep
		m.clampListScroll()
	case tea.MouseWheelDown:
		m.scroll += wheelStep
		m.clampListScroll()
	}
	return m, nil
}

// updatePreviewWheel scrolls the preview.
func (m model) updatePreviewWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseWheelUp:
		m.previewScroll = max(m.previewScroll-wheelStep, 0)
	case tea.MouseWheelDown:
		m.previewScroll = min(m.previewScroll+wheelStep, m.previewMaxScroll)
	}
	return m, nil
}

// updateListClick selects the card under a left click.
func (m model) updateListClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft || msg.Y >= m.listViewHeight() {
		return m, nil
	}
	i := m.cardAtLine(m.scroll + msg.Y)
	if i < 0 {
		return m, nil
	}
	m.cursor = i
	return m, m.onSelect(i)
}

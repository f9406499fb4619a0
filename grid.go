package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// View states
type viewState int

const (
	viewList    viewState = iota // card list (main view)
	viewPreview                  // full-screen single item
)

// snapshotMsg delivers a new pasteboard snapshot from the presenter.
type snapshotMsg struct {
	snap pasteboard.Snapshot
}

// pollStartedMsg reports whether the presenter started polling.
type pollStartedMsg struct {
	err error
}

// template selects how a card body is drawn.
type template int

const (
	templateText template = iota
	templateImage
)

// cardContent is the typed content of one card.
type cardContent struct {
	template template
	kind     pasteboard.Kind // kind of the stored item, before file resolution
	text     string
	tooltip  string
	image    pasteboard.Image
}

// cardSize is the extent of one card in cells.
type cardSize struct {
	width, height int
}

type model struct {
	ctx       context.Context
	presenter *pasteboard.Presenter
	heights   *pasteboard.HeightCache
	snap      pasteboard.Snapshot // last snapshot applied; everything renders from it
	renders   int                 // snapshots applied, one full reload each
	pollErr   error

	cursor             int // selected card index
	width              int
	height             int
	scroll             int
	lineOffsets        []int // starting line of each card in rendered output
	cardLines          []int // number of rendered lines per card
	totalRenderedLines int   // total lines in list view, updated by computeLineOffsets

	// Key of the item onSelect activated. The cursor follows it to index 0
	// if the next snapshot leads with it; either way the next snapshot
	// clears it.
	pendingKey string

	// Preview view state
	view             viewState
	previewScroll    int
	previewMaxScroll int

	theme  theme
	md     *mdRenderer
	hl     *codeHL
	thumbs *thumbCache
}

func newModel(ctx context.Context, p *pasteboard.Presenter, hasDarkBg bool) model {
	return model{
		ctx:       ctx,
		presenter: p,
		heights:   pasteboard.NewHeightCache(pasteboard.NewEngine()),
		theme:     newTheme(hasDarkBg),
		md:        newMdRenderer(hasDarkBg),
		hl:        newCodeHL(hasDarkBg),
		thumbs:    newThumbCache(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		startPolling(m.ctx, m.presenter),
		waitForChange(m.presenter.Changes()),
	)
}

// startPolling returns a Cmd that starts the presenter's source.
func startPolling(ctx context.Context, p *pasteboard.Presenter) tea.Cmd {
	return func() tea.Msg {
		return pollStartedMsg{err: p.StartPolling(ctx)}
	}
}

// waitForChange returns a Cmd that waits for the next snapshot. The model
// re-issues it after every snapshot it applies.
func waitForChange(ch <-chan pasteboard.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.thumbs.reset()
		m.computeLineOffsets()
		m.ensureCursorVisible()
		if m.view == viewPreview {
			m.computePreviewMaxScroll()
		}
		return m, nil

	case pollStartedMsg:
		if msg.err != nil {
			slog.Error("clipboard polling unavailable", "err", msg.err)
			m.pollErr = msg.err
		}
		return m, nil

	case snapshotMsg:
		m.applySnapshot(msg.snap)
		return m, waitForChange(m.presenter.Changes())

	case tea.KeyPressMsg:
		if m.view == viewPreview {
			return m.updatePreview(msg)
		}
		return m.updateList(msg)

	case tea.MouseWheelMsg:
		if m.view == viewPreview {
			return m.updatePreviewWheel(msg)
		}
		return m.updateListWheel(msg)

	case tea.MouseClickMsg:
		if m.view == viewList {
			return m.updateListClick(msg)
		}
	}
	return m, nil
}

// applySnapshot replaces the whole list with snap. There is no diffing:
// every card is re-measured from the new snapshot.
func (m *model) applySnapshot(snap pasteboard.Snapshot) {
	if snap.Seq != 0 && snap.Seq <= m.snap.Seq {
		return
	}
	m.snap = snap
	m.renders++
	m.heights.Retain(snap.Items)
	m.thumbs.retain(snap.Items)

	if m.pendingKey != "" {
		if snap.Len() > 0 && pasteboard.Key(snap.Items[0]) == m.pendingKey {
			m.cursor = 0
			m.scroll = 0
		}
		m.pendingKey = ""
	}
	if m.cursor >= snap.Len() {
		m.cursor = max(snap.Len()-1, 0)
	}

	m.computeLineOffsets()
	m.ensureCursorVisible()
	m.clampListScroll()

	if m.view == viewPreview {
		if snap.Len() == 0 {
			m.view = viewList
		} else {
			m.computePreviewMaxScroll()
		}
	}
}

func (m model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render returns the frame as a string.
func (m model) render() string {
	if m.width == 0 {
		return ""
	}
	if m.view == viewPreview {
		return m.viewPreview()
	}
	return m.viewList()
}

// -- Grid contract ------------------------------------------------------------
// The list is driven entirely by these four queries over the current
// snapshot.

// itemCount returns the number of cards.
func (m model) itemCount() int {
	return m.snap.Len()
}

// contentAt returns the typed content for the card at i. File references
// render with their content's template and show the path as the tooltip.
func (m model) contentAt(i int) (cardContent, error) {
	item, err := m.snap.ItemAt(i)
	if err != nil {
		return cardContent{}, err
	}

	c := cardContent{kind: pasteboard.KindOf(item)}
	switch g := pasteboard.Ground(item).(type) {
	case pasteboard.Image:
		c.template = templateImage
		c.image = g
		c.tooltip = strings.TrimSpace(fmt.Sprintf("%d×%d %s", g.Width, g.Height, g.Format))
	default:
		c.template = templateText
		c.text = pasteboard.DisplayText(g)
		c.tooltip = c.text
	}
	if f, ok := item.(pasteboard.LocalFile); ok {
		c.tooltip = f.Path
	}
	return c, nil
}

// sizeFor returns the extent of card i when laid out in availableWidth
// columns. The body height comes from the layout engine, measured at the
// width of the card's text area.
func (m model) sizeFor(i, availableWidth int) (cardSize, error) {
	item, err := m.snap.ItemAt(i)
	if err != nil {
		return cardSize{}, err
	}
	return cardSize{
		width:  availableWidth,
		height: cardChromeRows + m.bodyRows(item, availableWidth),
	}, nil
}

// bodyRows converts an item's display height into terminal rows for a card
// of the given width.
func (m model) bodyRows(item pasteboard.Item, cardWidth int) int {
	font := m.heights.Engine().Font
	h := m.heights.DisplayHeight(item, font.Width(contentWidth(cardWidth)))
	return font.Rows(h)
}

// onSelect activates the first of indices; the rest are ignored. Activation
// runs off the update loop and its effect arrives as a later snapshot.
func (m *model) onSelect(indices ...int) tea.Cmd {
	if len(indices) == 0 {
		return nil
	}
	i := indices[0]
	item, err := m.snap.ItemAt(i)
	if err != nil {
		return nil
	}
	m.pendingKey = pasteboard.Key(item)
	p := m.presenter
	return func() tea.Msg {
		p.Activate(i)
		return nil
	}
}

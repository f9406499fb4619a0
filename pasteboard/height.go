package pasteboard

import (
	"errors"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Length is a layout distance in points.
type Length float64

// Card height bounds and the reference font every text block is measured at.
const (
	MinHeight Length = 85
	MaxHeight Length = 185

	ReferenceFontSize Length = 13

	// TabWidth is how many spaces a tab expands to.
	TabWidth = 4
)

// ErrUnmeasurable is returned when text cannot be laid out at the requested
// width.
var ErrUnmeasurable = errors.New("text cannot be measured")

// Font carries the fixed metrics of a monospaced terminal font at a point
// size. Advance is the width of one column, LineHeight the height of one row.
type Font struct {
	Size Length
}

// Advance returns the horizontal size of one cell.
func (f Font) Advance() Length {
	return f.Size * 0.6
}

// LineHeight returns the vertical size of one row, rounded up to whole points.
func (f Font) LineHeight() Length {
	return Length(math.Ceil(float64(f.Size) * 1.2))
}

// Columns returns how many cells fit in width. Widths produced by Width
// round-trip exactly despite float rounding.
func (f Font) Columns(width Length) int {
	if f.Advance() <= 0 {
		return 0
	}
	return int(math.Floor(float64(width/f.Advance()) + 1e-9))
}

// Width returns the length spanned by cols cells.
func (f Font) Width(cols int) Length {
	return Length(cols) * f.Advance()
}

// Rows converts a length into whole terminal rows, rounding up.
func (f Font) Rows(h Length) int {
	lh := f.LineHeight()
	if lh <= 0 {
		return 0
	}
	return int(math.Ceil(float64(h / lh)))
}

// Measure returns the height of text word-wrapped to maxWidth.
func (f Font) Measure(text string, maxWidth Length) (Length, error) {
	cols := f.Columns(maxWidth)
	if cols < 1 || !utf8.ValidString(text) {
		return 0, ErrUnmeasurable
	}
	wrapped := ansi.Wrap(Normalize(text), cols, "")
	lines := strings.Count(wrapped, "\n") + 1
	return Length(lines) * f.LineHeight(), nil
}

// Normalize returns text in the form it is laid out in: line endings folded
// to "\n", tabs expanded and escape sequences removed. Measure wraps this form,
// so renderers must wrap it too or drawn rows drift from measured ones.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", TabWidth))
	return ansi.Strip(text)
}

// Engine maps items to card heights.
type Engine struct {
	Font Font
}

// NewEngine returns an engine measuring at the reference font size.
func NewEngine() *Engine {
	return &Engine{Font: Font{Size: ReferenceFontSize}}
}

// DisplayHeight returns the card height for item at maxWidth, clamped to
// [MinHeight, MaxHeight]. File references measure as their content.
// Unmeasurable text falls back to MinHeight.
func (e *Engine) DisplayHeight(item Item, maxWidth Length) Length {
	return Clamp(e.naturalHeight(Ground(item), maxWidth))
}

func (e *Engine) naturalHeight(item Item, maxWidth Length) Length {
	switch v := item.(type) {
	case Text:
		return e.measure(v.Value, maxWidth)
	case URL:
		return e.measure(urlString(v), maxWidth)
	case Image:
		return Length(v.Height)
	default:
		return MinHeight
	}
}

func (e *Engine) measure(text string, maxWidth Length) Length {
	h, err := e.Font.Measure(text, maxWidth)
	if err != nil {
		return MinHeight
	}
	return h
}

// Clamp bounds h to [MinHeight, MaxHeight].
func Clamp(h Length) Length {
	if h < MinHeight {
		return MinHeight
	}
	if h > MaxHeight {
		return MaxHeight
	}
	return h
}

// HeightCache memoizes DisplayHeight per item at a single width. Asking for
// a different width drops every cached entry.
type HeightCache struct {
	engine *Engine

	mu      sync.Mutex
	width   Length
	entries map[string]Length
}

// NewHeightCache returns an empty cache over engine.
func NewHeightCache(engine *Engine) *HeightCache {
	return &HeightCache{
		engine:  engine,
		entries: make(map[string]Length),
	}
}

// DisplayHeight returns the cached height for item at width, measuring on a
// miss.
func (c *HeightCache) DisplayHeight(item Item, width Length) Length {
	key := Key(item)

	c.mu.Lock()
	defer c.mu.Unlock()

	if width != c.width {
		c.width = width
		clear(c.entries)
	}
	if h, ok := c.entries[key]; ok {
		return h
	}
	h := c.engine.DisplayHeight(item, width)
	c.entries[key] = h
	return h
}

// Retain drops cached heights for items not in items, so entries for items
// that left the history do not outlive them.
func (c *HeightCache) Retain(items []Item) {
	live := make(map[string]bool, len(items))
	for _, it := range items {
		live[Key(it)] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if !live[k] {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of cached entries.
func (c *HeightCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Engine returns the engine the cache measures with.
func (c *HeightCache) Engine() *Engine {
	return c.engine
}

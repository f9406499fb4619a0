package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// Half blocks paint two vertically stacked pixels in one cell: the
// foreground colors the glyph half, the background the other half.
const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// thumbnail is a decoded image scaled into terminal cells.
type thumbnail struct {
	lines []string
	cols  int
}

// renderThumbnail decodes data and scales it to fit within maxCols x maxRows
// cells, keeping the aspect ratio. A cell is treated as one pixel wide and
// two pixels tall. Fully transparent pixels are left unpainted.
func renderThumbnail(data []byte, maxCols, maxRows int) (thumbnail, error) {
	if maxCols < 1 || maxRows < 1 {
		return thumbnail{}, fmt.Errorf("thumbnail area %dx%d is empty", maxCols, maxRows)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return thumbnail{}, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return thumbnail{}, fmt.Errorf("image has no pixels")
	}

	cols, pxRows := fitCells(b.Dx(), b.Dy(), maxCols, maxRows)

	lines := make([]string, 0, (pxRows+1)/2)
	for py := 0; py < pxRows; py += 2 {
		var sb strings.Builder
		for x := 0; x < cols; x++ {
			sx := b.Min.X + x*b.Dx()/cols
			top := img.At(sx, b.Min.Y+py*b.Dy()/pxRows)
			var bottom color.Color = color.Transparent
			if py+1 < pxRows {
				bottom = img.At(sx, b.Min.Y+(py+1)*b.Dy()/pxRows)
			}
			sb.WriteString(cell(top, bottom))
		}
		lines = append(lines, sb.String())
	}
	return thumbnail{lines: lines, cols: cols}, nil
}

// fitCells returns the cell width and pixel-row count that fit a w x h image
// into maxCols x maxRows cells.
func fitCells(w, h, maxCols, maxRows int) (cols, pxRows int) {
	pxRows = maxRows * 2
	cols = (w*pxRows + h/2) / h
	if cols > maxCols {
		cols = maxCols
		pxRows = (h*cols + w/2) / w
	}
	if cols < 1 {
		cols = 1
	}
	if pxRows < 1 {
		pxRows = 1
	}
	return cols, pxRows
}

// cell renders one terminal cell holding a top and a bottom pixel.
func cell(top, bottom color.Color) string {
	switch {
	case transparent(top) && transparent(bottom):
		return " "
	case transparent(top):
		return lipgloss.NewStyle().Foreground(bottom).Render(lowerHalf)
	case transparent(bottom):
		return lipgloss.NewStyle().Foreground(top).Render(upperHalf)
	default:
		return lipgloss.NewStyle().Foreground(top).Background(bottom).Render(upperHalf)
	}
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}

// thumbKey identifies one rendering of one image. Images are keyed by their
// backing array, which every snapshot shares, so a lookup never hashes the
// bitmap.
type thumbKey struct {
	data       *byte
	size       int
	cols, rows int
}

type thumbEntry struct {
	t   thumbnail
	err error
}

// thumbCache memoizes thumbnails so a frame only decodes images it has not
// drawn at that size before. Held by pointer on the model, like mdRenderer.
type thumbCache struct {
	entries map[thumbKey]thumbEntry
	decodes int
}

func newThumbCache() *thumbCache {
	return &thumbCache{entries: make(map[thumbKey]thumbEntry)}
}

// dataID returns the identity of an image's bytes.
func dataID(img pasteboard.Image) *byte {
	if len(img.Data) == 0 {
		return nil
	}
	return &img.Data[0]
}

// get returns the thumbnail of img within maxCols x maxRows cells, decoding
// on a miss. Failures are cached too.
func (c *thumbCache) get(img pasteboard.Image, maxCols, maxRows int) (thumbnail, error) {
	k := thumbKey{data: dataID(img), size: len(img.Data), cols: maxCols, rows: maxRows}
	if e, ok := c.entries[k]; ok {
		return e.t, e.err
	}
	t, err := renderThumbnail(img.Data, maxCols, maxRows)
	c.decodes++
	c.entries[k] = thumbEntry{t: t, err: err}
	return t, err
}

// reset drops every entry.
func (c *thumbCache) reset() {
	clear(c.entries)
}

// retain drops entries for images that are not among items.
func (c *thumbCache) retain(items []pasteboard.Item) {
	live := make(map[*byte]bool)
	for _, it := range items {
		if img, ok := pasteboard.Ground(it).(pasteboard.Image); ok {
			live[dataID(img)] = true
		}
	}
	for k := range c.entries {
		if !live[k.data] {
			delete(c.entries, k)
		}
	}
}

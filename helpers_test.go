package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// key constructs a tea.KeyPressMsg from a string like "j", "enter", "ctrl+c".
// Single-character strings become printable keys; named keys get their
// corresponding key code.
func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "ctrl+c", "ctrl+d", "ctrl+u":
		return tea.KeyPressMsg{Code: rune(s[len(s)-1]), Mod: tea.ModCtrl}
	default:
		return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
	}
}

// wheel constructs a mouse wheel event.
func wheel(button tea.MouseButton) tea.MouseWheelMsg {
	return tea.MouseWheelMsg{Button: button}
}

// click constructs a left click at row y.
func click(y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: 10, Y: y, Button: tea.MouseLeft}
}

// asModel extracts the model from an Update return value.
// Panics when the type assertion fails, which is a test bug.
func asModel(t tea.Model) model {
	return t.(model)
}

// isQuit returns true when cmd is the Quit command.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// fakeSource is an in-memory pasteboard.Source whose Promote reorders like
// the real history.
type fakeSource struct {
	mu       sync.Mutex
	items    []pasteboard.Item
	promoted []int
	changes  chan struct{}
}

func newFakeSource(items ...pasteboard.Item) *fakeSource {
	return &fakeSource{items: items, changes: make(chan struct{}, 1)}
}

func (s *fakeSource) Start(context.Context) error { return nil }

func (s *fakeSource) Items() []pasteboard.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *fakeSource) Changes() <-chan struct{} { return s.changes }

func (s *fakeSource) Promote(index int) error {
	s.mu.Lock()
	s.promoted = append(s.promoted, index)
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		return pasteboard.ErrOutOfRange
	}
	next := []pasteboard.Item{s.items[index]}
	for i, it := range s.items {
		if i != index {
			next = append(next, it)
		}
	}
	s.items = next
	s.mu.Unlock()
	s.signal()
	return nil
}

func (s *fakeSource) set(items ...pasteboard.Item) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.signal()
}

func (s *fakeSource) signal() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *fakeSource) promotions() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.promoted...)
}

// testModel returns a model showing items, width=80, height=40, with a
// dark-background theme. The presenter is not polling; use startedModel
// when a test needs activation to reach a source.
func testModel(items ...pasteboard.Item) model {
	m := newModel(context.Background(), pasteboard.NewPresenter(newFakeSource(items...)), true)
	m.width = 80
	m.height = 40
	m.applySnapshot(pasteboard.Snapshot{Seq: 1, Items: items})
	return m
}

// startedModel returns a model bound to a polling presenter over src, with
// the initial snapshot already applied.
func startedModel(t *testing.T, src *fakeSource) (model, *pasteboard.Presenter) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	p := pasteboard.NewPresenter(src)
	m := newModel(ctx, p, true)
	m.width = 80
	m.height = 40

	if msg := startPolling(ctx, p)(); msg.(pollStartedMsg).err != nil {
		t.Fatalf("start polling: %v", msg.(pollStartedMsg).err)
	}
	result, _ := m.Update(waitForChange(p.Changes())())
	return asModel(result), p
}

// waitFor polls cond until it holds or two seconds pass.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func text(s string) pasteboard.Text { return pasteboard.Text{Value: s} }

func mustURL(t *testing.T, s string) pasteboard.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return pasteboard.URL{Value: u}
}

// pngBytes encodes a solid w x h image.
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// pngImage wraps pngBytes in an Image item.
func pngImage(t *testing.T, w, h int) pasteboard.Image {
	t.Helper()
	return pasteboard.Image{
		Width:  w,
		Height: h,
		Format: "png",
		Data:   pngBytes(t, w, h, color.RGBA{R: 200, A: 255}),
	}
}

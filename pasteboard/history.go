package pasteboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultHistoryLimit is how many distinct items are kept.
	DefaultHistoryLimit = 100

	// DefaultPollInterval matches the slowest platform backend's change
	// detection while staying responsive to rapid copies.
	DefaultPollInterval = 250 * time.Millisecond
)

// HistoryConfig tunes the polling engine.
type HistoryConfig struct {
	Limit        int
	PollInterval time.Duration
	WatchFiles   bool  // re-classify file references when the file changes
	MaxFileSize  int64 // see Classifier.MaxFileSize
}

// History is the polling engine: it watches a Clipboard and keeps the
// distinct items it has seen, most recent first. It implements Source.
type History struct {
	clip       Clipboard
	classifier *Classifier
	cfg        HistoryConfig
	changes    chan struct{} // capacity 1; coalesces notifications

	// Serializes clipboard reads against promote writes so a poll never
	// sees the pre-write payload after last has moved on.
	ioMu sync.Mutex

	mu      sync.Mutex
	items   []Item
	last    Payload // last payload read or written; guards against re-capture
	started bool
	files   *fileWatcher
}

// NewHistory returns an empty history over clip. Zero config fields take
// their defaults.
func NewHistory(clip Clipboard, cfg HistoryConfig) *History {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultHistoryLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &History{
		clip:       clip,
		classifier: &Classifier{MaxFileSize: cfg.MaxFileSize},
		cfg:        cfg,
		changes:    make(chan struct{}, 1),
	}
}

// Start launches the poll loop (and the file watcher when enabled). Calling
// it again is a no-op.
func (h *History) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = true
	h.mu.Unlock()

	if h.cfg.WatchFiles {
		fw, err := newFileWatcher(h)
		if err != nil {
			// Non-fatal: file references just won't refresh.
			slog.Warn("file watcher unavailable", "err", err)
		} else {
			h.mu.Lock()
			h.files = fw
			paths := h.filePathsLocked()
			h.mu.Unlock()
			fw.sync(paths)
			go fw.run(ctx)
		}
	}

	slog.Info("pasteboard polling started",
		"backend", h.clip.Name(),
		"interval", h.cfg.PollInterval,
		"limit", h.cfg.Limit,
	)
	go h.poll(ctx)
	return nil
}

func (h *History) poll(ctx context.Context) {
	t := time.NewTicker(h.cfg.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := h.Poll(); err != nil {
				slog.Debug("clipboard poll failed", "err", err)
			}
		}
	}
}

// Poll reads the clipboard once and records its contents if they changed
// since the last read or write. Reports whether the list changed.
func (h *History) Poll() (bool, error) {
	h.ioMu.Lock()
	p, err := h.clip.Read()
	if err != nil {
		h.ioMu.Unlock()
		return false, fmt.Errorf("reading %s: %w", h.clip.Name(), err)
	}
	h.mu.Lock()
	same := p.Equal(h.last)
	h.last = p
	h.mu.Unlock()
	h.ioMu.Unlock()

	if same {
		return false, nil
	}

	item, err := h.classifier.Classify(p)
	if errors.Is(err, ErrEmptyPayload) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return h.Add(item), nil
}

// Add records item as the newest entry. An item already in the list moves
// to the front instead of being duplicated. Reports whether the list changed.
func (h *History) Add(item Item) bool {
	key := identity(item)

	h.mu.Lock()
	idx := h.indexLocked(key)
	if idx == 0 && Key(h.items[0]) == Key(item) {
		h.mu.Unlock()
		return false
	}
	if idx >= 0 {
		h.items = append(h.items[:idx], h.items[idx+1:]...)
	}
	h.items = append([]Item{item}, h.items...)
	if len(h.items) > h.cfg.Limit {
		h.items = h.items[:h.cfg.Limit]
	}
	paths := h.filePathsLocked()
	fw := h.files
	h.mu.Unlock()

	slog.Debug("clipboard captured", "item", Describe(item), "moved", idx > 0)
	if fw != nil {
		fw.sync(paths)
	}
	h.notify()
	return true
}

// Items returns a copy of the current list, most recent first.
func (h *History) Items() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Item, len(h.items))
	copy(out, h.items)
	return out
}

// Changes receives after every list change.
func (h *History) Changes() <-chan struct{} {
	return h.changes
}

// Promote writes the item at index back to the clipboard and, once the
// write succeeds, moves it to the front. A failed write leaves the list as
// it was.
func (h *History) Promote(index int) error {
	h.mu.Lock()
	if index < 0 || index >= len(h.items) {
		n := len(h.items)
		h.mu.Unlock()
		return fmt.Errorf("promote %d of %d: %w", index, n, ErrOutOfRange)
	}
	item := h.items[index]
	h.mu.Unlock()

	p := h.classifier.Payload(item)
	h.ioMu.Lock()
	if err := h.clip.Write(p); err != nil {
		h.ioMu.Unlock()
		return fmt.Errorf("writing %s: %w", h.clip.Name(), err)
	}

	// The list may have changed while writing; find the item again.
	h.mu.Lock()
	h.last = p
	if i := h.indexLocked(identity(item)); i > 0 {
		moved := h.items[i]
		copy(h.items[1:i+1], h.items[:i])
		h.items[0] = moved
	}
	h.mu.Unlock()
	h.ioMu.Unlock()

	h.notify()
	slog.Info("clipboard item promoted", "index", index, "item", Describe(item))
	return nil
}

// refreshFile replaces the content of every file reference to path.
func (h *History) refreshFile(path string, content Item) {
	changed := false

	h.mu.Lock()
	for i, it := range h.items {
		f, ok := it.(LocalFile)
		if !ok || f.Path != path {
			continue
		}
		if Key(f.Content) == Key(content) {
			continue
		}
		h.items[i] = LocalFile{Path: path, Content: content}
		changed = true
	}
	h.mu.Unlock()

	if changed {
		slog.Debug("file reference refreshed", "path", path)
		h.notify()
	}
}

func (h *History) indexLocked(key string) int {
	for i, it := range h.items {
		if identity(it) == key {
			return i
		}
	}
	return -1
}

// identity is the distinctness key within the history. File references are
// the same entry whenever they name the same path, whatever the file holds.
func identity(item Item) string {
	if f, ok := item.(LocalFile); ok {
		return "file:" + hashString(f.Path)
	}
	return Key(item)
}

func (h *History) filePathsLocked() []string {
	var paths []string
	for _, it := range h.items {
		if f, ok := it.(LocalFile); ok {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// notify does a non-blocking send: a pending notification already covers
// this change.
func (h *History) notify() {
	select {
	case h.changes <- struct{}{}:
	default:
	}
}
